// Package timeutil contains calendar-day helpers. Days are "YYYY-MM-DD"
// strings in local time so they compare lexically.
package timeutil

import (
	"fmt"
	"time"
)

// DayLayout is the calendar-day format used for every day key.
const DayLayout = "2006-01-02"

// Day returns the local calendar day of t.
func Day(t time.Time) string {
	return t.Local().Format(DayLayout)
}

// Yesterday returns the calendar day before t.
func Yesterday(t time.Time) string {
	return Day(t.AddDate(0, 0, -1))
}

// DaysAgo returns the calendar day n days before t.
func DaysAgo(t time.Time, n int) string {
	return Day(t.AddDate(0, 0, -n))
}

// ParseDay parses a calendar day at local midnight.
func ParseDay(day string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, day, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("timeutil: parse day %q: %w", day, err)
	}
	return t, nil
}

// AddDays shifts a calendar day by n days. Unparseable input is returned as is.
func AddDays(day string, n int) string {
	t, err := ParseDay(day)
	if err != nil {
		return day
	}
	return Day(t.AddDate(0, 0, n))
}

// StartOfDay is local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	l := t.Local()
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.Local)
}

// StartOfWeek is the most recent Sunday 00:00 local time, t's own day included.
func StartOfWeek(t time.Time) time.Time {
	d := StartOfDay(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// LastDays returns the n calendar days ending at t, oldest first.
func LastDays(t time.Time, n int) []string {
	days := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, DaysAgo(t, i))
	}
	return days
}

// Weekday returns the English weekday name of t in local time.
func Weekday(t time.Time) string {
	return t.Local().Weekday().String()
}

// StampID returns a millisecond id for now that is strictly greater than
// every id in taken when now would collide.
func StampID(now time.Time, taken ...int64) int64 {
	id := now.UnixMilli()
	for _, t := range taken {
		if t >= id {
			id = t + 1
		}
	}
	return id
}
