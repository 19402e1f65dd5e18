package feedback

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrMatchNotFound = errors.New("match not found")
	ErrForbidden     = errors.New("forbidden")
)
