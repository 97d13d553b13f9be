// Package gamify turns activity into experience points and levels.
package gamify

import "sort"

// Level is one tier of the level table.
type Level struct {
	Number     int    `json:"level"`
	Title      string `json:"title"`
	XPRequired int    `json:"xpRequired"`
}

// Levels is sorted by strictly increasing XPRequired.
var Levels = []Level{
	{1, "Novice", 0},
	{2, "Beginner", 100},
	{3, "Apprentice", 250},
	{4, "Skilled", 500},
	{5, "Disciplined", 1000},
	{6, "Focused", 2000},
	{7, "Dedicated", 3500},
	{8, "Consistent", 5500},
	{9, "Master", 8000},
	{10, "Legendary", 12000},
}

// LevelFor returns the highest level whose threshold is at most xp.
func LevelFor(xp int) Level {
	i := sort.Search(len(Levels), func(i int) bool { return Levels[i].XPRequired > xp })
	if i == 0 {
		return Levels[0]
	}
	return Levels[i-1]
}

// LevelByNumber looks up a level; out of range numbers clamp to the table.
func LevelByNumber(n int) Level {
	switch {
	case n <= Levels[0].Number:
		return Levels[0]
	case n >= Levels[len(Levels)-1].Number:
		return Levels[len(Levels)-1]
	}
	return Levels[n-1]
}

// LevelProgress describes how far xp is into its level.
type LevelProgress struct {
	Level    Level   `json:"level"`
	Next     *Level  `json:"next,omitempty"`
	XP       int     `json:"xp"`
	XPToNext int     `json:"xpToNext"`
	Percent  float64 `json:"percent"`
}

// Progress reports progress toward the next level. At the top level the
// percentage is 100 and Next is nil.
func Progress(xp int) LevelProgress {
	cur := LevelFor(xp)
	lp := LevelProgress{Level: cur, XP: xp, Percent: 100}
	if cur.Number >= Levels[len(Levels)-1].Number {
		return lp
	}
	next := Levels[cur.Number]
	lp.Next = &next
	lp.XPToNext = next.XPRequired - xp
	lp.Percent = float64(xp-cur.XPRequired) / float64(next.XPRequired-cur.XPRequired) * 100
	return lp
}
