package repository

import (
	"context"
	"strings"
	"time"

	"foodshare/internal/domain"
	"foodshare/internal/pkg/geo"

	"gorm.io/gorm"
)

type DonationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

type donationModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	UserID        int64     `gorm:"column:user_id;index"`
	CategoryID    int64     `gorm:"column:category_id"`
	Title         string    `gorm:"column:title"`
	Description   *string   `gorm:"column:description"`
	Quantity      *string   `gorm:"column:quantity"`
	ExpiryDate    time.Time `gorm:"column:expiry_date"`
	PhotoURL      *string   `gorm:"column:photo_url"`
	PickupAddress *string   `gorm:"column:pickup_address"`
	Latitude      float64   `gorm:"column:latitude"`
	Longitude     float64   `gorm:"column:longitude"`
	Status        string    `gorm:"column:status;index"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (donationModel) TableName() string { return "donations" }

func toDomainDonation(m donationModel) *domain.Donation {
	var description, quantity, photoURL, pickupAddress string
	if m.Description != nil {
		description = *m.Description
	}
	if m.Quantity != nil {
		quantity = *m.Quantity
	}
	if m.PhotoURL != nil {
		photoURL = *m.PhotoURL
	}
	if m.PickupAddress != nil {
		pickupAddress = *m.PickupAddress
	}

	return &domain.Donation{
		ID:            m.ID,
		DonorID:       m.UserID,
		CategoryID:    m.CategoryID,
		Title:         m.Title,
		Description:   description,
		Quantity:      quantity,
		ExpiryDate:    m.ExpiryDate,
		PhotoURL:      photoURL,
		PickupAddress: pickupAddress,
		Latitude:      m.Latitude,
		Longitude:     m.Longitude,
		Status:        domain.DonationStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toDonationModel(d *domain.Donation) donationModel {
	var description, quantity, photoURL, pickupAddress *string
	if d.Description != "" {
		v := d.Description
		description = &v
	}
	if d.Quantity != "" {
		v := d.Quantity
		quantity = &v
	}
	if d.PhotoURL != "" {
		v := d.PhotoURL
		photoURL = &v
	}
	if d.PickupAddress != "" {
		v := d.PickupAddress
		pickupAddress = &v
	}

	return donationModel{
		ID:            d.ID,
		UserID:        d.DonorID,
		CategoryID:    d.CategoryID,
		Title:         d.Title,
		Description:   description,
		Quantity:      quantity,
		ExpiryDate:    d.ExpiryDate,
		PhotoURL:      photoURL,
		PickupAddress: pickupAddress,
		Latitude:      d.Latitude,
		Longitude:     d.Longitude,
		Status:        string(d.Status),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// DonationListItem is a donation row joined with its donor and category.
type DonationListItem struct {
	ID            int64     `gorm:"column:id"`
	Title         string    `gorm:"column:title"`
	Description   string    `gorm:"column:description"`
	Quantity      string    `gorm:"column:quantity"`
	ExpiryDate    time.Time `gorm:"column:expiry_date"`
	PhotoURL      string    `gorm:"column:photo_url"`
	PickupAddress string    `gorm:"column:pickup_address"`
	Latitude      float64   `gorm:"column:latitude"`
	Longitude     float64   `gorm:"column:longitude"`
	Status        string    `gorm:"column:status"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	DonorID       int64     `gorm:"column:donor_id"`
	DonorName     string    `gorm:"column:donor_name"`
	CategoryName  string    `gorm:"column:category_name"`
	CategoryIcon  string    `gorm:"column:category_icon"`
}

// DonationDetails adds the donor contact fields shown on the detail page.
type DonationDetails struct {
	DonationListItem
	DonorEmail string `gorm:"column:donor_email"`
	DonorPhone string `gorm:"column:donor_phone"`
}

// SearchFilter narrows the public donation listing. All fields are optional;
// proximity applies only when Lat, Lng and RadiusMeters are all set.
type SearchFilter struct {
	Lat          *float64
	Lng          *float64
	RadiusMeters *float64
	CategoryID   *int64
	Term         string
}

func (f SearchFilter) hasProximity() bool {
	return f.Lat != nil && f.Lng != nil && f.RadiusMeters != nil
}

func (r *DonationRepository) Create(ctx context.Context, d *domain.Donation) error {
	m := toDonationModel(d)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*d = *toDomainDonation(m)
	return nil
}

func (r *DonationRepository) GetByID(ctx context.Context, id int64) (*domain.Donation, error) {
	var m donationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainDonation(m), nil
}

func (r *DonationRepository) GetDetails(ctx context.Context, id int64) (*DonationDetails, error) {
	var row DonationDetails
	tx := r.db.WithContext(ctx).Table("donations d").
		Select(`d.id, d.title, COALESCE(d.description, '') AS description,
COALESCE(d.quantity, '') AS quantity, d.expiry_date, COALESCE(d.photo_url, '') AS photo_url,
COALESCE(d.pickup_address, '') AS pickup_address, d.latitude, d.longitude, d.status, d.created_at,
u.id AS donor_id, u.name AS donor_name, u.email AS donor_email, COALESCE(u.phone, '') AS donor_phone,
c.name AS category_name, COALESCE(c.icon, '') AS category_icon`).
		Joins("JOIN users u ON d.user_id = u.id").
		Joins("JOIN categories c ON d.category_id = c.id").
		Where("d.id = ?", id).
		Scan(&row)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *DonationRepository) ListByDonor(ctx context.Context, donorID int64) ([]domain.Donation, error) {
	var rows []donationModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", donorID).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Donation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainDonation(m))
	}
	return out, nil
}

// Search returns available donations newest-first. On postgres the proximity
// filter runs in the store via PostGIS; otherwise rows are post-filtered with
// a haversine distance check.
func (r *DonationRepository) Search(ctx context.Context, f SearchFilter) ([]DonationListItem, error) {
	q := r.db.WithContext(ctx).Table("donations d").
		Select(`d.id, d.title, COALESCE(d.description, '') AS description,
COALESCE(d.quantity, '') AS quantity, d.expiry_date, COALESCE(d.photo_url, '') AS photo_url,
COALESCE(d.pickup_address, '') AS pickup_address, d.latitude, d.longitude, d.status, d.created_at,
u.id AS donor_id, u.name AS donor_name, c.name AS category_name, COALESCE(c.icon, '') AS category_icon`).
		Joins("JOIN users u ON d.user_id = u.id").
		Joins("JOIN categories c ON d.category_id = c.id").
		Where("d.status = ?", string(domain.DonationAvailable))

	if f.CategoryID != nil {
		q = q.Where("d.category_id = ?", *f.CategoryID)
	}
	if f.Term != "" {
		like := "%" + strings.ToLower(f.Term) + "%"
		q = q.Where("LOWER(d.title) LIKE ? OR LOWER(d.description) LIKE ?", like, like)
	}

	usePostGIS := f.hasProximity() && r.db.Dialector.Name() == "postgres"
	if usePostGIS {
		q = q.Where(`ST_DWithin(
ST_SetSRID(ST_MakePoint(d.longitude, d.latitude), 4326)::geography,
ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?)`,
			*f.Lng, *f.Lat, *f.RadiusMeters)
	}

	var rows []DonationListItem
	if err := q.Order("d.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	if f.hasProximity() && !usePostGIS {
		filtered := rows[:0]
		for _, row := range rows {
			if geo.Distance(*f.Lat, *f.Lng, row.Latitude, row.Longitude) <= *f.RadiusMeters {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	return rows, nil
}

// GetForUpdateTx reloads the donation inside a transaction, row-locked where
// the dialect supports it. Used by the accept path to re-check availability.
func (r *DonationRepository) GetForUpdateTx(tx *gorm.DB, id int64) (*domain.Donation, error) {
	var m donationModel
	if err := lockForUpdate(tx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainDonation(m), nil
}

func (r *DonationRepository) UpdateStatusTx(tx *gorm.DB, id int64, status domain.DonationStatus) error {
	return tx.Model(&donationModel{}).Where("id = ?", id).Updates(map[string]any{
		"status":     string(status),
		"updated_at": time.Now(),
	}).Error
}

func (r *DonationRepository) UpdateStatus(ctx context.Context, id int64, status domain.DonationStatus) error {
	return r.UpdateStatusTx(r.db.WithContext(ctx), id, status)
}

func (r *DonationRepository) DB() *gorm.DB {
	return r.db
}
