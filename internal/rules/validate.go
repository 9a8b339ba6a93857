package rules

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/nextorder/promo-engine/pkg/errors"
	"go.uber.org/multierr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Validate checks a rule is structurally sound before it is persisted.
// The read path never calls this; malformed stored rules degrade there.
func Validate(rule Rule) error {
	if err := validate.Struct(rule); err != nil {
		return formatValidationErrors(err)
	}
	if rule.Priority < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rule priority must not be negative")
	}
	return nil
}

// ValidateSet validates every rule in the set and aggregates the failures,
// so a caller sees all broken entries at once.
func ValidateSet(ruleSet []Rule) error {
	var combined error
	for _, rule := range ruleSet {
		if err := Validate(rule); err != nil {
			combined = multierr.Append(combined, fmt.Errorf("rule %d (%s): %w", rule.ID, rule.Name, err))
		}
	}
	return combined
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Namespace()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "rule validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "rule validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}
