package domain

import "time"

type DonationStatus string

const (
	DonationAvailable DonationStatus = "available"
	DonationClaimed   DonationStatus = "claimed"
	DonationCompleted DonationStatus = "completed"
)

// donationTransitions is the full set of legal status moves:
// available -> claimed (request accepted), claimed -> completed (match done),
// claimed -> available (match canceled, donation reopens).
var donationTransitions = map[DonationStatus][]DonationStatus{
	DonationAvailable: {DonationClaimed},
	DonationClaimed:   {DonationCompleted, DonationAvailable},
	DonationCompleted: {},
}

func (s DonationStatus) Valid() bool {
	_, ok := donationTransitions[s]
	return ok
}

func (s DonationStatus) CanTransitionTo(next DonationStatus) bool {
	for _, allowed := range donationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Donation struct {
	ID            int64          `json:"id"`
	DonorID       int64          `json:"donor_id"`
	CategoryID    int64          `json:"category_id" validate:"required"`
	Title         string         `json:"title" validate:"required"`
	Description   string         `json:"description,omitempty"`
	Quantity      string         `json:"quantity,omitempty"`
	ExpiryDate    time.Time      `json:"expiry_date"`
	PhotoURL      string         `json:"photo_url,omitempty"`
	PickupAddress string         `json:"pickup_address,omitempty"`
	Latitude      float64        `json:"latitude"`
	Longitude     float64        `json:"longitude"`
	Status        DonationStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
