package match

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("match not found")
	ErrDonationNotFound = errors.New("associated donation not found")
	ErrForbidden        = errors.New("forbidden")
	ErrAlreadyResolved  = errors.New("match already resolved")
)
