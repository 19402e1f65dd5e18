package match

import (
	"context"
	"errors"
	"fmt"

	"foodshare/internal/domain"
	"foodshare/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	matches       MatchRepository
	donations     DonationRepository
	notifications NotificationRepository
}

func NewService(matches MatchRepository, donations DonationRepository, notifications NotificationRepository) *Service {
	return &Service{matches: matches, donations: donations, notifications: notifications}
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]repository.MatchDetails, error) {
	return s.matches.ListForUser(ctx, userID)
}

// UpdateStatus updates a scheduled match. Either participant may call it.
// Completing the match completes the donation; canceling releases it back to
// available; re-asserting scheduled leaves the donation untouched. Both
// parties are notified. All of it commits in one transaction.
func (s *Service) UpdateStatus(ctx context.Context, matchID, actingUserID int64, newStatus string) (*domain.Match, error) {
	status := domain.MatchStatus(newStatus)
	if !status.Valid() {
		return nil, ErrValidation
	}

	var m *domain.Match
	err := s.matches.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		m, err = s.matches.GetForUpdateTx(tx, matchID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if actingUserID != m.DonorID && actingUserID != m.RecipientID {
			return ErrForbidden
		}
		if m.Status.Terminal() {
			return ErrAlreadyResolved
		}

		d, err := s.donations.GetForUpdateTx(tx, m.DonationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDonationNotFound
			}
			return err
		}

		if err := s.matches.UpdateStatusTx(tx, m.ID, status); err != nil {
			return err
		}

		var message string
		switch status {
		case domain.MatchCompleted:
			if err := s.donations.UpdateStatusTx(tx, d.ID, domain.DonationCompleted); err != nil {
				return err
			}
			message = fmt.Sprintf("Match for donation %q marked as completed", d.Title)
		case domain.MatchCanceled:
			if err := s.donations.UpdateStatusTx(tx, d.ID, domain.DonationAvailable); err != nil {
				return err
			}
			message = fmt.Sprintf("Match for donation %q canceled", d.Title)
		default:
			message = fmt.Sprintf("Match for donation %q updated", d.Title)
		}
		for _, userID := range []int64{m.DonorID, m.RecipientID} {
			n := &domain.Notification{
				UserID:  userID,
				Type:    domain.NotifMatch,
				Message: message,
			}
			if err := s.notifications.CreateTx(tx, n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.Status = status
	return m, nil
}
