package request

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("request not found")
	ErrForbidden           = errors.New("forbidden")
	ErrDonationUnavailable = errors.New("donation is not available")
	ErrAlreadyResolved     = errors.New("request already resolved")
)
