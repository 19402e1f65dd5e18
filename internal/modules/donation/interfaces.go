package donation

import (
	"context"

	"foodshare/internal/domain"
	"foodshare/internal/repository"
)

// DonationRepository defines the store operations the lifecycle manager needs.
type DonationRepository interface {
	Create(ctx context.Context, d *domain.Donation) error
	GetByID(ctx context.Context, id int64) (*domain.Donation, error)
	GetDetails(ctx context.Context, id int64) (*repository.DonationDetails, error)
	ListByDonor(ctx context.Context, donorID int64) ([]domain.Donation, error)
	Search(ctx context.Context, f repository.SearchFilter) ([]repository.DonationListItem, error)
	UpdateStatus(ctx context.Context, id int64, status domain.DonationStatus) error
}

// CategoryRepository is used to validate the category reference on create.
type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
}
