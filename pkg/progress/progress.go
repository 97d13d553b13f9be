// Package progress defines the user's experience and streak counters.
package progress

// UserProgress is mutated only by the gamify and streak packages.
// LastActiveDate is a calendar day, empty until the first active day.
type UserProgress struct {
	XP             int    `json:"xp"`
	Level          int    `json:"level"`
	CurrentStreak  int    `json:"currentStreak"`
	LongestStreak  int    `json:"longestStreak"`
	LastActiveDate string `json:"lastActiveDate"`
}

// New returns the fresh-install defaults.
func New() UserProgress {
	return UserProgress{Level: 1}
}
