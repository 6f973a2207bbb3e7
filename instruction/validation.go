package instruction

import (
	"strings"

	errorslib "github.com/goliatone/go-errors"
)

// DefaultRequiredFields are the fields a delivery front-end insists on.
var DefaultRequiredFields = RequiredFields{FieldCategory, FieldWorkArea, FieldTitle}

// RequiredFields validates that the named record fields are present.
type RequiredFields []string

// RequiredFieldsFor returns the fields to insist on under policy. A
// FallbackPolicy resolves a missing category, so kategorie is dropped.
func RequiredFieldsFor(policy CategoryPolicy) RequiredFields {
	switch policy.(type) {
	case FallbackPolicy, *FallbackPolicy:
		return DefaultRequiredFields.Without(FieldCategory)
	}
	return DefaultRequiredFields
}

// Without returns a copy of r without name.
func (r RequiredFields) Without(name string) RequiredFields {
	out := make(RequiredFields, 0, len(r))
	for _, field := range r {
		if field != name {
			out = append(out, field)
		}
	}
	return out
}

// Validate returns an invalid_input error listing every missing field.
func (r RequiredFields) Validate(record Record) error {
	var missing []errorslib.FieldError
	for _, name := range r {
		value, ok := record.Field(name)
		if !ok {
			continue
		}
		if strings.TrimSpace(value) == "" {
			missing = append(missing, errorslib.FieldError{
				Field:   name,
				Message: "is required",
			})
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return NewInvalidInput("required fields missing", missing...)
}
