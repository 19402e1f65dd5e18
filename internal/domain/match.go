package domain

import "time"

type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchCompleted MatchStatus = "completed"
	MatchCanceled  MatchStatus = "canceled"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchScheduled, MatchCompleted, MatchCanceled:
		return true
	}
	return false
}

func (s MatchStatus) Terminal() bool {
	return s == MatchCompleted || s == MatchCanceled
}

// Match is the canonical record of an accepted request. It binds one donor
// and one recipient to a pickup; exactly one match exists per donation.
type Match struct {
	ID          int64       `json:"id"`
	DonationID  int64       `json:"donation_id"`
	RequestID   int64       `json:"request_id"`
	DonorID     int64       `json:"donor_id"`
	RecipientID int64       `json:"recipient_id"`
	PickupDate  time.Time   `json:"pickup_date"`
	Status      MatchStatus `json:"status"`
	MatchDate   time.Time   `json:"match_date"`
}
