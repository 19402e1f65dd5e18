package repository

import (
	"context"
	"time"

	"foodshare/internal/domain"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

type feedbackModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	MatchID     int64     `gorm:"column:match_id;index"`
	DonorID     int64     `gorm:"column:donor_id"`
	RecipientID int64     `gorm:"column:recipient_id"`
	Rating      int       `gorm:"column:rating"`
	Comment     *string   `gorm:"column:comment"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (feedbackModel) TableName() string { return "feedback" }

func toDomainFeedback(m feedbackModel) *domain.Feedback {
	var comment string
	if m.Comment != nil {
		comment = *m.Comment
	}

	return &domain.Feedback{
		ID:          m.ID,
		MatchID:     m.MatchID,
		DonorID:     m.DonorID,
		RecipientID: m.RecipientID,
		Rating:      m.Rating,
		Comment:     comment,
		CreatedAt:   m.CreatedAt,
	}
}

// FeedbackDetails is a feedback row joined with the match, donation title
// and both party names.
type FeedbackDetails struct {
	ID            int64     `gorm:"column:id"`
	Rating        int       `gorm:"column:rating"`
	Comment       string    `gorm:"column:comment"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	MatchID       int64     `gorm:"column:match_id"`
	DonationTitle string    `gorm:"column:donation_title"`
	DonorID       int64     `gorm:"column:donor_id"`
	DonorName     string    `gorm:"column:donor_name"`
	RecipientID   int64     `gorm:"column:recipient_id"`
	RecipientName string    `gorm:"column:recipient_name"`
}

func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	var comment *string
	if f.Comment != "" {
		v := f.Comment
		comment = &v
	}
	m := feedbackModel{
		MatchID:     f.MatchID,
		DonorID:     f.DonorID,
		RecipientID: f.RecipientID,
		Rating:      f.Rating,
		Comment:     comment,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*f = *toDomainFeedback(m)
	return nil
}

func (r *FeedbackRepository) ListForUser(ctx context.Context, userID int64) ([]FeedbackDetails, error) {
	var rows []FeedbackDetails
	tx := r.db.WithContext(ctx).Table("feedback f").
		Select(`f.id, f.rating, COALESCE(f.comment, '') AS comment, f.created_at,
m.id AS match_id, d.title AS donation_title,
ud.id AS donor_id, ud.name AS donor_name,
ur.id AS recipient_id, ur.name AS recipient_name`).
		Joins("JOIN matches m ON f.match_id = m.id").
		Joins("JOIN donations d ON m.donation_id = d.id").
		Joins("JOIN users ud ON f.donor_id = ud.id").
		Joins("JOIN users ur ON f.recipient_id = ur.id").
		Where("f.donor_id = ? OR f.recipient_id = ?", userID, userID).
		Order("f.created_at DESC").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
