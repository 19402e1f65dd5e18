package donation

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("donation not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
)
