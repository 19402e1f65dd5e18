package donation

import (
	"context"
	"errors"
	"strings"
	"time"

	"foodshare/internal/domain"
	"foodshare/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	donations  DonationRepository
	categories CategoryRepository
}

func NewService(donations DonationRepository, categories CategoryRepository) *Service {
	return &Service{donations: donations, categories: categories}
}

func (s *Service) Create(ctx context.Context, req CreateDonationRequest) (*domain.Donation, error) {
	if strings.TrimSpace(req.Title) == "" || req.CategoryID == 0 {
		return nil, ErrValidation
	}
	if req.ExpiryDate.Before(time.Now()) {
		return nil, ErrValidation
	}

	if _, err := s.categories.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}

	d := &domain.Donation{
		DonorID:       req.DonorID,
		CategoryID:    req.CategoryID,
		Title:         req.Title,
		Description:   req.Description,
		Quantity:      req.Quantity,
		ExpiryDate:    req.ExpiryDate,
		PhotoURL:      req.PhotoURL,
		PickupAddress: req.PickupAddress,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Status:        domain.DonationAvailable,
	}

	if err := s.donations.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*repository.DonationDetails, error) {
	details, err := s.donations.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return details, nil
}

func (s *Service) ListByDonor(ctx context.Context, donorID int64) ([]domain.Donation, error) {
	return s.donations.ListByDonor(ctx, donorID)
}

// Search returns available donations only, newest-first.
func (s *Service) Search(ctx context.Context, f repository.SearchFilter) ([]repository.DonationListItem, error) {
	return s.donations.Search(ctx, f)
}

// UpdateStatus applies a donor-initiated status change, checked against the
// transition table. Lifecycle moves driven by requests and matches go through
// their own managers, not here.
func (s *Service) UpdateStatus(ctx context.Context, donationID, actingUserID int64, newStatus string) (*domain.Donation, error) {
	status := domain.DonationStatus(newStatus)
	if !status.Valid() {
		return nil, ErrValidation
	}

	d, err := s.donations.GetByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if d.DonorID != actingUserID {
		return nil, ErrForbidden
	}
	if !d.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	if err := s.donations.UpdateStatus(ctx, donationID, status); err != nil {
		return nil, err
	}

	d.Status = status
	return d, nil
}
