package repository

import (
	"context"
	"time"

	"foodshare/internal/domain"

	"gorm.io/gorm"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

type matchModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	DonationID  int64     `gorm:"column:donation_id;index"`
	RequestID   int64     `gorm:"column:request_id"`
	DonorID     int64     `gorm:"column:donor_id;index"`
	RecipientID int64     `gorm:"column:recipient_id;index"`
	PickupDate  time.Time `gorm:"column:pickup_date"`
	Status      string    `gorm:"column:status"`
	MatchDate   time.Time `gorm:"column:match_date"`
}

func (matchModel) TableName() string { return "matches" }

func toDomainMatch(m matchModel) *domain.Match {
	return &domain.Match{
		ID:          m.ID,
		DonationID:  m.DonationID,
		RequestID:   m.RequestID,
		DonorID:     m.DonorID,
		RecipientID: m.RecipientID,
		PickupDate:  m.PickupDate,
		Status:      domain.MatchStatus(m.Status),
		MatchDate:   m.MatchDate,
	}
}

// MatchDetails is a match row joined with its donation and both parties.
type MatchDetails struct {
	ID                    int64     `gorm:"column:id"`
	MatchDate             time.Time `gorm:"column:match_date"`
	PickupDate            time.Time `gorm:"column:pickup_date"`
	Status                string    `gorm:"column:status"`
	DonationID            int64     `gorm:"column:donation_id"`
	DonationTitle         string    `gorm:"column:donation_title"`
	DonationQuantity      string    `gorm:"column:donation_quantity"`
	DonationPickupAddress string    `gorm:"column:donation_pickup_address"`
	DonorID               int64     `gorm:"column:donor_id"`
	DonorName             string    `gorm:"column:donor_name"`
	DonorPhone            string    `gorm:"column:donor_phone"`
	DonorEmail            string    `gorm:"column:donor_email"`
	RecipientID           int64     `gorm:"column:recipient_id"`
	RecipientName         string    `gorm:"column:recipient_name"`
	RecipientPhone        string    `gorm:"column:recipient_phone"`
	RecipientEmail        string    `gorm:"column:recipient_email"`
}

func (r *MatchRepository) GetByID(ctx context.Context, id int64) (*domain.Match, error) {
	var m matchModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainMatch(m), nil
}

func (r *MatchRepository) GetByDonationID(ctx context.Context, donationID int64) (*domain.Match, error) {
	var m matchModel
	tx := r.db.WithContext(ctx).Where("donation_id = ?", donationID).Order("match_date DESC").First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainMatch(m), nil
}

func (r *MatchRepository) ListForUser(ctx context.Context, userID int64) ([]MatchDetails, error) {
	var rows []MatchDetails
	tx := r.db.WithContext(ctx).Table("matches m").
		Select(`m.id, m.match_date, m.pickup_date, m.status,
d.id AS donation_id, d.title AS donation_title,
COALESCE(d.quantity, '') AS donation_quantity,
COALESCE(d.pickup_address, '') AS donation_pickup_address,
ud.id AS donor_id, ud.name AS donor_name, COALESCE(ud.phone, '') AS donor_phone, ud.email AS donor_email,
ur.id AS recipient_id, ur.name AS recipient_name, COALESCE(ur.phone, '') AS recipient_phone, ur.email AS recipient_email`).
		Joins("JOIN donations d ON m.donation_id = d.id").
		Joins("JOIN users ud ON m.donor_id = ud.id").
		Joins("JOIN users ur ON m.recipient_id = ur.id").
		Where("m.donor_id = ? OR m.recipient_id = ?", userID, userID).
		Order("m.match_date DESC").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// CreateTx inserts a match inside an ongoing transaction so the accept path
// stays all-or-nothing.
func (r *MatchRepository) CreateTx(tx *gorm.DB, m *domain.Match) error {
	row := matchModel{
		DonationID:  m.DonationID,
		RequestID:   m.RequestID,
		DonorID:     m.DonorID,
		RecipientID: m.RecipientID,
		PickupDate:  m.PickupDate,
		Status:      string(m.Status),
		MatchDate:   m.MatchDate,
	}
	if err := tx.Create(&row).Error; err != nil {
		return err
	}
	m.ID = row.ID
	return nil
}

// GetForUpdateTx reloads the match inside a transaction, row-locked where
// the dialect supports it.
func (r *MatchRepository) GetForUpdateTx(tx *gorm.DB, id int64) (*domain.Match, error) {
	var m matchModel
	if err := lockForUpdate(tx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainMatch(m), nil
}

func (r *MatchRepository) UpdateStatusTx(tx *gorm.DB, id int64, status domain.MatchStatus) error {
	return tx.Model(&matchModel{}).Where("id = ?", id).
		Update("status", string(status)).Error
}

func (r *MatchRepository) DB() *gorm.DB {
	return r.db
}
