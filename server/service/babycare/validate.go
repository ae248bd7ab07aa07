package babycare

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Payloads are validated before they reach the ActivityStore.

type feedingPayload struct {
	Child  int32     `json:"child" validate:"gt=0"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required,gtefield=Start"`
	Type   string    `json:"type" validate:"oneof='breast milk' 'formula' 'fortified breast milk' 'solid food'"`
	Method string    `json:"method" validate:"oneof='bottle' 'left breast' 'right breast' 'both breasts' 'parent fed' 'self fed'"`
	Amount *float64  `json:"amount" validate:"omitempty,gte=0"`
}

type spanPayload struct {
	Child int32     `json:"child" validate:"gt=0"`
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required,gtefield=Start"`
}

type diaperPayload struct {
	Child    int32          `json:"child" validate:"gt=0"`
	Time     time.Time      `json:"time" validate:"required"`
	Contents DiaperContents `json:"contents"`
	Color    string         `json:"color" validate:"omitempty,oneof=black brown green yellow"`
	Amount   *float64       `json:"amount" validate:"omitempty,gte=0"`
}

type amountPayload struct {
	Amount *float64 `json:"amount" validate:"omitempty,gte=0"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		c := sl.Current().Interface().(DiaperContents)
		if !c.Wet && !c.Solid {
			sl.ReportError(c.Wet, "wet", "Wet", "wet_or_solid", "")
		}
	}, DiaperContents{})
	return v
}

// check validates payload and converts failures into a KindValidation error.
func (s *service) check(payload any) error {
	err := s.validate.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Kind: KindInternal, Message: "Failed to validate payload", Cause: err}
	}

	fields := make(map[string][]string)
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(fields[k], " "))
	}
	return &Error{Kind: KindValidation, Message: strings.Join(parts, ", "), Fields: fields, Cause: err}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "gt":
		if fe.Field() == "child" {
			return "A child is required."
		}
		return fmt.Sprintf("Must be greater than %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be at least %s.", fe.Param())
	case "gtefield":
		return "End must not be before start."
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fe.Value())
	case "wet_or_solid":
		return "Wet and/or solid is required."
	default:
		return fmt.Sprintf("Failed %s validation.", fe.Tag())
	}
}

// checkContents validates wet/solid on their own, before any network call.
func (s *service) checkContents(c DiaperContents) error {
	return s.check(c)
}

func (s *service) checkAmount(amount *float64) error {
	return s.check(&amountPayload{Amount: amount})
}
