package sheet

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Shared validator instance. All entity types validate through this helper so
// that construction, assignment and patch-edits enforce the same constraints.
var vld = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs the struct tag validation for v and converts the first
// violation into a *ValidationError.
func ValidateStruct(v any) error {
	err := vld.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return &ValidationError{
			Field:      f.Field(),
			Constraint: f.Tag(),
			Value:      f.Value(),
		}
	}
	return &ValidationError{Reason: err.Error()}
}
