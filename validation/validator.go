package validation

import (
	"slices"
	"strings"

	"github.com/kbukum/foldkit/errors"
)

const detailFields = "fields"

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// String renders the error as "field: message".
func (e FieldError) String() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{errors: make([]FieldError, 0)}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// Check adds an error for field when ok is false.
func (v *Validator) Check(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}

// Required checks that value is not blank.
func (v *Validator) Required(field, value string) *Validator {
	return v.Check(strings.TrimSpace(value) != "", field, "is required")
}

// OneOf checks that value is one of allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	return v.Check(slices.Contains(allowed, value), field, "must be one of: "+strings.Join(allowed, " "))
}

// Include adds err, if any, under field. Field errors reported by another
// Validator's Err are nested below field, so "level" becomes "log.level".
func (v *Validator) Include(field string, err error) *Validator {
	if err == nil {
		return v
	}
	if appErr, ok := errors.AsAppError(err); ok {
		if nested, ok := appErr.Details[detailFields].([]FieldError); ok {
			for _, fe := range nested {
				v.AddError(joinField(field, fe.Field), fe.Message)
			}
			return v
		}
	}
	v.AddError(field, err.Error())
	return v
}

func joinField(parent, child string) string {
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	default:
		return parent + "." + child
	}
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Err returns an INVALID_CONFIG AppError listing every field error, or nil.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}

	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = e.String()
	}

	return errors.InvalidConfig(strings.Join(messages, "; ")).
		WithDetail(detailFields, v.errors)
}
