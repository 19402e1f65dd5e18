package match

import (
	"context"

	"foodshare/internal/domain"
	"foodshare/internal/repository"

	"gorm.io/gorm"
)

type MatchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Match, error)
	ListForUser(ctx context.Context, userID int64) ([]repository.MatchDetails, error)
	GetForUpdateTx(tx *gorm.DB, id int64) (*domain.Match, error)
	UpdateStatusTx(tx *gorm.DB, id int64, status domain.MatchStatus) error
	DB() *gorm.DB
}

type DonationRepository interface {
	GetForUpdateTx(tx *gorm.DB, id int64) (*domain.Donation, error)
	UpdateStatusTx(tx *gorm.DB, id int64, status domain.DonationStatus) error
}

type NotificationRepository interface {
	CreateTx(tx *gorm.DB, n *domain.Notification) error
}
