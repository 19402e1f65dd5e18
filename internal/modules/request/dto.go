package request

type CreateRequest struct {
	RequesterID          int64  `json:"-"`
	DonationID           int64  `json:"donation_id" binding:"required"`
	PickupTimePreference string `json:"pickup_time_preference"`
	Notes                string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
