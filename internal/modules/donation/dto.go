package donation

import "time"

type CreateDonationRequest struct {
	DonorID       int64     `json:"-"`
	CategoryID    int64     `json:"category_id" binding:"required"`
	Title         string    `json:"title" binding:"required"`
	Description   string    `json:"description"`
	Quantity      string    `json:"quantity"`
	ExpiryDate    time.Time `json:"expiry_date" binding:"required"`
	PhotoURL      string    `json:"photo_url"`
	PickupAddress string    `json:"pickup_address"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
