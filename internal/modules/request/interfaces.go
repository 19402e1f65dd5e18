package request

import (
	"context"

	"foodshare/internal/domain"
	"foodshare/internal/repository"

	"gorm.io/gorm"
)

type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id int64) (*domain.Request, error)
	DonorForRequest(ctx context.Context, requestID int64) (int64, error)
	ListForUser(ctx context.Context, userID int64) ([]repository.RequestDetails, error)
	UpdateStatusTx(tx *gorm.DB, id int64, status domain.RequestStatus) error
	RejectSiblingsTx(tx *gorm.DB, donationID, exceptRequestID int64) error
	DB() *gorm.DB
}

type DonationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Donation, error)
	GetForUpdateTx(tx *gorm.DB, id int64) (*domain.Donation, error)
	UpdateStatusTx(tx *gorm.DB, id int64, status domain.DonationStatus) error
}

type MatchRepository interface {
	CreateTx(tx *gorm.DB, m *domain.Match) error
}

type NotificationRepository interface {
	CreateTx(tx *gorm.DB, n *domain.Notification) error
}
