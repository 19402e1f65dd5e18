// Package validator wraps go-playground struct validation behind a single
// call returning a field-to-failed-tag map, the shape services treat as a
// validation failure.
package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks v against its `validate` tags. It returns nil when v is
// valid, otherwise a map of field name to the tag that failed.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		errors[err.Field()] = err.Tag()
	}
	return errors
}
