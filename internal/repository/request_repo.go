package repository

import (
	"context"
	"time"

	"foodshare/internal/domain"

	"gorm.io/gorm"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

type requestModel struct {
	ID                   int64     `gorm:"column:id;primaryKey"`
	UserID               int64     `gorm:"column:user_id;index"`
	DonationID           int64     `gorm:"column:donation_id;index"`
	PickupTimePreference *string   `gorm:"column:pickup_time_preference"`
	Notes                *string   `gorm:"column:notes"`
	Status               string    `gorm:"column:status"`
	CreatedAt            time.Time `gorm:"column:created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

func (requestModel) TableName() string { return "requests" }

func toDomainRequest(m requestModel) *domain.Request {
	var pickup, notes string
	if m.PickupTimePreference != nil {
		pickup = *m.PickupTimePreference
	}
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Request{
		ID:                   m.ID,
		RequesterID:          m.UserID,
		DonationID:           m.DonationID,
		PickupTimePreference: pickup,
		Notes:                notes,
		Status:               domain.RequestStatus(m.Status),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func toRequestModel(r *domain.Request) requestModel {
	var pickup, notes *string
	if r.PickupTimePreference != "" {
		v := r.PickupTimePreference
		pickup = &v
	}
	if r.Notes != "" {
		v := r.Notes
		notes = &v
	}

	return requestModel{
		ID:                   r.ID,
		UserID:               r.RequesterID,
		DonationID:           r.DonationID,
		PickupTimePreference: pickup,
		Notes:                notes,
		Status:               string(r.Status),
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

// RequestDetails is a request row joined with its donation and both parties,
// as shown in the "my requests" listing.
type RequestDetails struct {
	ID                   int64     `gorm:"column:id"`
	PickupTimePreference string    `gorm:"column:pickup_time_preference"`
	Notes                string    `gorm:"column:notes"`
	Status               string    `gorm:"column:status"`
	CreatedAt            time.Time `gorm:"column:created_at"`
	DonationID           int64     `gorm:"column:donation_id"`
	DonationTitle        string    `gorm:"column:donation_title"`
	DonationQuantity     string    `gorm:"column:donation_quantity"`
	DonationExpiryDate   time.Time `gorm:"column:donation_expiry_date"`
	DonorID              int64     `gorm:"column:donor_id"`
	DonorName            string    `gorm:"column:donor_name"`
	DonorPhone           string    `gorm:"column:donor_phone"`
	DonorEmail           string    `gorm:"column:donor_email"`
	RequesterID          int64     `gorm:"column:requester_id"`
	RequesterName        string    `gorm:"column:requester_name"`
	RequesterPhone       string    `gorm:"column:requester_phone"`
	RequesterEmail       string    `gorm:"column:requester_email"`
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.Request) error {
	m := toRequestModel(req)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*req = *toDomainRequest(m)
	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	var m requestModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRequest(m), nil
}

// DonorForRequest resolves the owner of the donation a request points at.
// Ownership is derived by join, not stored on the request.
func (r *RequestRepository) DonorForRequest(ctx context.Context, requestID int64) (int64, error) {
	var donorID int64
	tx := r.db.WithContext(ctx).Table("requests r").
		Select("d.user_id").
		Joins("JOIN donations d ON r.donation_id = d.id").
		Where("r.id = ?", requestID).
		Scan(&donorID)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return donorID, nil
}

// ListForUser returns requests the user made plus requests on their donations.
func (r *RequestRepository) ListForUser(ctx context.Context, userID int64) ([]RequestDetails, error) {
	var rows []RequestDetails
	tx := r.db.WithContext(ctx).Table("requests r").
		Select(`r.id, COALESCE(r.pickup_time_preference, '') AS pickup_time_preference,
COALESCE(r.notes, '') AS notes, r.status, r.created_at,
d.id AS donation_id, d.title AS donation_title,
COALESCE(d.quantity, '') AS donation_quantity, d.expiry_date AS donation_expiry_date,
ud.id AS donor_id, ud.name AS donor_name, COALESCE(ud.phone, '') AS donor_phone, ud.email AS donor_email,
ur.id AS requester_id, ur.name AS requester_name, COALESCE(ur.phone, '') AS requester_phone, ur.email AS requester_email`).
		Joins("JOIN donations d ON r.donation_id = d.id").
		Joins("JOIN users ud ON d.user_id = ud.id").
		Joins("JOIN users ur ON r.user_id = ur.id").
		Where("r.user_id = ? OR d.user_id = ?", userID, userID).
		Order("r.created_at DESC").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func (r *RequestRepository) UpdateStatusTx(tx *gorm.DB, id int64, status domain.RequestStatus) error {
	return tx.Model(&requestModel{}).Where("id = ?", id).Updates(map[string]any{
		"status":     string(status),
		"updated_at": time.Now(),
	}).Error
}

// RejectSiblingsTx marks every other pending request on the donation rejected.
// Exclusion is by request id: first accepted wins.
func (r *RequestRepository) RejectSiblingsTx(tx *gorm.DB, donationID, exceptRequestID int64) error {
	return tx.Model(&requestModel{}).
		Where("donation_id = ? AND id != ? AND status = ?",
			donationID, exceptRequestID, string(domain.RequestPending)).
		Updates(map[string]any{
			"status":     string(domain.RequestRejected),
			"updated_at": time.Now(),
		}).Error
}

// PendingForDonation lists ids of still-pending requests on a donation.
func (r *RequestRepository) PendingForDonation(ctx context.Context, donationID int64) ([]int64, error) {
	var ids []int64
	tx := r.db.WithContext(ctx).Model(&requestModel{}).
		Where("donation_id = ? AND status = ?", donationID, string(domain.RequestPending)).
		Pluck("id", &ids)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return ids, nil
}

func (r *RequestRepository) DB() *gorm.DB {
	return r.db
}
