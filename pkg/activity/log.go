package activity

// Log is a read-only view over every activity collection.
type Log struct {
	Todos     Todos
	Habits    Habits
	Journal   Journal
	Moods     Moods
	Energy    EnergyLog
	Gratitude Gratitudes
}

// ActiveOn reports whether day had a completed todo created that day, a
// habit completed that day, a journal entry or a mood log.
func (l Log) ActiveOn(day string) bool {
	for _, t := range l.Todos {
		if t.Completed && t.Day() == day {
			return true
		}
	}
	if l.Habits.DoneOn(day) > 0 {
		return true
	}
	for _, j := range l.Journal {
		if j.Day() == day {
			return true
		}
	}
	_, ok := l.Moods.On(day)
	return ok
}
