package request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodshare/internal/domain"
	"foodshare/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	requests      RequestRepository
	donations     DonationRepository
	matches       MatchRepository
	notifications NotificationRepository
}

func NewService(requests RequestRepository, donations DonationRepository, matches MatchRepository, notifications NotificationRepository) *Service {
	return &Service{
		requests:      requests,
		donations:     donations,
		matches:       matches,
		notifications: notifications,
	}
}

// AcceptResult carries both rows touched by a successful accept.
type AcceptResult struct {
	Request *domain.Request
	Match   *domain.Match
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Request, error) {
	d, err := s.donations.GetByID(ctx, req.DonationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if d.Status != domain.DonationAvailable {
		return nil, ErrDonationUnavailable
	}
	if d.DonorID == req.RequesterID {
		return nil, ErrValidation
	}

	r := &domain.Request{
		RequesterID:          req.RequesterID,
		DonationID:           req.DonationID,
		PickupTimePreference: req.PickupTimePreference,
		Notes:                req.Notes,
		Status:               domain.RequestPending,
	}
	if err := s.requests.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]repository.RequestDetails, error) {
	return s.requests.ListForUser(ctx, userID)
}

// UpdateStatus resolves a pending request. Only the donor of the underlying
// donation may call it. Accepting claims the donation, creates the match,
// rejects sibling requests and notifies both parties in one transaction.
func (s *Service) UpdateStatus(ctx context.Context, requestID, actingUserID int64, newStatus string) (*AcceptResult, error) {
	status := domain.RequestStatus(newStatus)
	if status != domain.RequestAccepted && status != domain.RequestRejected {
		return nil, ErrValidation
	}

	r, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	donorID, err := s.requests.DonorForRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if donorID != actingUserID {
		return nil, ErrForbidden
	}
	if r.Status != domain.RequestPending {
		return nil, ErrAlreadyResolved
	}

	if status == domain.RequestRejected {
		return s.reject(ctx, r)
	}
	return s.accept(ctx, r, donorID)
}

func (s *Service) accept(ctx context.Context, r *domain.Request, donorID int64) (*AcceptResult, error) {
	var match *domain.Match

	err := s.requests.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		d, err := s.donations.GetForUpdateTx(tx, r.DonationID)
		if err != nil {
			return err
		}
		if d.Status != domain.DonationAvailable {
			return ErrDonationUnavailable
		}

		if err := s.requests.UpdateStatusTx(tx, r.ID, domain.RequestAccepted); err != nil {
			return err
		}

		now := time.Now()
		match = &domain.Match{
			DonationID:  d.ID,
			RequestID:   r.ID,
			DonorID:     donorID,
			RecipientID: r.RequesterID,
			PickupDate:  now,
			Status:      domain.MatchScheduled,
			MatchDate:   now,
		}
		if err := s.matches.CreateTx(tx, match); err != nil {
			return err
		}

		if err := s.donations.UpdateStatusTx(tx, d.ID, domain.DonationClaimed); err != nil {
			return err
		}
		if err := s.requests.RejectSiblingsTx(tx, d.ID, r.ID); err != nil {
			return err
		}

		accepted := &domain.Notification{
			UserID: r.RequesterID,
			Type:   domain.NotifRequestAccepted,
			Message: fmt.Sprintf(
				"Your request for %q has been accepted! A match has been created.", d.Title),
		}
		if err := s.notifications.CreateTx(tx, accepted); err != nil {
			return err
		}

		matched := &domain.Notification{
			UserID: donorID,
			Type:   domain.NotifMatch,
			Message: fmt.Sprintf(
				"A new match has been created for your donation %q.", d.Title),
		}
		return s.notifications.CreateTx(tx, matched)
	})
	if err != nil {
		return nil, err
	}

	r.Status = domain.RequestAccepted
	return &AcceptResult{Request: r, Match: match}, nil
}

func (s *Service) reject(ctx context.Context, r *domain.Request) (*AcceptResult, error) {
	err := s.requests.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		d, err := s.donations.GetForUpdateTx(tx, r.DonationID)
		if err != nil {
			return err
		}

		if err := s.requests.UpdateStatusTx(tx, r.ID, domain.RequestRejected); err != nil {
			return err
		}

		n := &domain.Notification{
			UserID: r.RequesterID,
			Type:   domain.NotifRequestRejected,
			Message: fmt.Sprintf(
				"Your request for %q was declined.", d.Title),
		}
		return s.notifications.CreateTx(tx, n)
	})
	if err != nil {
		return nil, err
	}

	r.Status = domain.RequestRejected
	return &AcceptResult{Request: r}, nil
}
