package goal

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/lyfocus/pkg/apperr"
)

// DefaultYesNoTarget is the number of days a yes-no goal tracks when no
// target is given.
const DefaultYesNoTarget = 30

// Spec is the user-editable part of a goal.
type Spec struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	Type         Type     `json:"type" validate:"required,goaltype"`
	Target       int      `json:"target" validate:"gte=0"`
	Unit         string   `json:"unit"`
	Deadline     string   `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	Category     Category `json:"category" validate:"omitempty,goalcategory"`
	WeeklyTarget int      `json:"weeklyTarget" validate:"gte=0"`
	Milestones   []string `json:"milestones"`
}

var (
	validate *validator.Validate
	once     sync.Once
)

func validatorInstance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("goaltype", func(fl validator.FieldLevel) bool {
			return Type(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("goalcategory", func(fl validator.FieldLevel) bool {
			return Category(fl.Field().String()).Valid()
		})
		validate.RegisterStructValidation(validateTypeRules, Spec{})
	})
	return validate
}

// validateTypeRules checks the fields each type requires.
func validateTypeRules(sl validator.StructLevel) {
	s := sl.Current().Interface().(Spec)
	switch s.Type {
	case TypeNumeric, TypeHabit:
		if s.Target <= 0 {
			sl.ReportError(s.Target, "target", "Target", "positive", "")
		}
	case TypeWeekly:
		if s.WeeklyTarget <= 0 {
			sl.ReportError(s.WeeklyTarget, "weeklyTarget", "WeeklyTarget", "positive", "")
		}
	case TypeMilestone:
		if len(s.Milestones) == 0 {
			sl.ReportError(s.Milestones, "milestones", "Milestones", "required", "")
		}
	case TypeDeadline, TypeYesNo, TypePercentage:
	}
}

// Normalize trims input and drops blank milestones.
func (s Spec) Normalize() Spec {
	s.Title = strings.TrimSpace(s.Title)
	s.Description = strings.TrimSpace(s.Description)
	s.Unit = strings.TrimSpace(s.Unit)
	s.Deadline = strings.TrimSpace(s.Deadline)
	s.Category = Category(strings.ToLower(strings.TrimSpace(string(s.Category))))
	var ms []string
	for _, m := range s.Milestones {
		if m = strings.TrimSpace(m); m != "" {
			ms = append(ms, m)
		}
	}
	s.Milestones = ms
	return s
}

// Validate reports the first missing or malformed field as a ValidationError.
func (s Spec) Validate() error {
	err := validatorInstance().Struct(s.Normalize())
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.Invalid(fe.Field(), reason(fe))
	}
	return apperr.Invalid("goal", err.Error())
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "positive":
		return "must be greater than zero"
	case "gte":
		return "must not be negative"
	case "datetime":
		return "must be a date like 2006-01-02"
	case "goaltype":
		return "unknown goal type"
	case "goalcategory":
		return "unknown category"
	}
	return fe.Tag()
}

// resolveTarget applies the per-type target rules to a valid spec.
func resolveTarget(s Spec) int {
	switch s.Type {
	case TypeNumeric, TypeHabit:
		return s.Target
	case TypeDeadline:
		return 1
	case TypeMilestone:
		return len(s.Milestones)
	case TypeYesNo:
		if s.Target > 0 {
			return s.Target
		}
		return DefaultYesNoTarget
	case TypePercentage:
		return 100
	case TypeWeekly:
		if s.Target > 0 {
			return s.Target
		}
		return s.WeeklyTarget
	}
	panic("goal: unhandled type " + string(s.Type))
}
