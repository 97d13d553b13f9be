// Package goal owns goals and their per-type progress state machine.
package goal

import (
	"fmt"
	"strings"

	"tableflip.dev/lyfocus/pkg/apperr"
)

// Type selects how a goal measures progress.
type Type string

const (
	// TypeNumeric counts toward a numeric target in free-text units.
	TypeNumeric Type = "numeric"
	// TypeHabit counts days of practice.
	TypeHabit Type = "habit"
	// TypeDeadline is a single deliverable due on a date.
	TypeDeadline Type = "deadline"
	// TypeWeekly is practiced a number of times per week.
	TypeWeekly Type = "weekly"
	// TypeYesNo counts days the thing was done.
	TypeYesNo Type = "yes-no"
	// TypePercentage moves from 0 to 100.
	TypePercentage Type = "percentage"
	// TypeMilestone completes a checklist of named steps.
	TypeMilestone Type = "milestone"
)

// AllTypes returns the supported goal types.
func AllTypes() []Type {
	return []Type{
		TypeNumeric,
		TypeHabit,
		TypeDeadline,
		TypeWeekly,
		TypeYesNo,
		TypePercentage,
		TypeMilestone,
	}
}

// ParseType converts user input to a Type. Empty input means numeric.
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if t == "" {
		return TypeNumeric, nil
	}
	if t == "yesno" {
		t = TypeYesNo
	}
	if t.Valid() {
		return t, nil
	}
	return "", apperr.Invalid("type", fmt.Sprintf("unknown goal type %q", raw))
}

// Valid reports whether t is one of AllTypes.
func (t Type) Valid() bool {
	for _, candidate := range AllTypes() {
		if candidate == t {
			return true
		}
	}
	return false
}

// Label is the human name of the type.
func (t Type) Label() string {
	switch t {
	case TypeNumeric:
		return "Numeric"
	case TypeHabit:
		return "Habit"
	case TypeDeadline:
		return "Deadline"
	case TypeWeekly:
		return "Weekly"
	case TypeYesNo:
		return "Yes/No"
	case TypePercentage:
		return "Percentage"
	case TypeMilestone:
		return "Milestone"
	}
	panic(fmt.Sprintf("goal: unhandled type %q", string(t)))
}

// Category is display-only grouping.
type Category string

const (
	CategoryHealth        Category = "health"
	CategoryLearning      Category = "learning"
	CategoryCareer        Category = "career"
	CategoryRelationships Category = "relationships"
	CategoryCreativity    Category = "creativity"
	CategoryPersonal      Category = "personal"
	CategoryOther         Category = "other"
)

// AllCategories returns the supported categories.
func AllCategories() []Category {
	return []Category{
		CategoryHealth,
		CategoryLearning,
		CategoryCareer,
		CategoryRelationships,
		CategoryCreativity,
		CategoryPersonal,
		CategoryOther,
	}
}

// Valid reports whether c is one of AllCategories.
func (c Category) Valid() bool {
	for _, candidate := range AllCategories() {
		if candidate == c {
			return true
		}
	}
	return false
}
