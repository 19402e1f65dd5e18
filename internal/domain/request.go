package domain

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestRejected:
		return true
	}
	return false
}

// Terminal reports whether the status ends the request lifecycle.
// Only pending requests may still change.
func (s RequestStatus) Terminal() bool {
	return s == RequestAccepted || s == RequestRejected
}

type Request struct {
	ID                   int64         `json:"id"`
	RequesterID          int64         `json:"requester_id"`
	DonationID           int64         `json:"donation_id" validate:"required"`
	PickupTimePreference string        `json:"pickup_time_preference,omitempty"`
	Notes                string        `json:"notes,omitempty"`
	Status               RequestStatus `json:"status"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}
