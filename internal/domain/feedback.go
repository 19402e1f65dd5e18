package domain

import "time"

type Feedback struct {
	ID          int64     `json:"id"`
	MatchID     int64     `json:"match_id" validate:"required"`
	DonorID     int64     `json:"donor_id"`
	RecipientID int64     `json:"recipient_id"`
	Rating      int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
