package notification

import (
	"context"

	"foodshare/internal/domain"
)

type Service struct {
	repo NotificationRepository
}

func NewService(repo NotificationRepository) *Service {
	return &Service{repo: repo}
}

// ListForUser returns the user's notifications newest-first plus the unread
// count clients use for badges.
func (s *Service) ListForUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	list, err := s.repo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		unread = 0
	}

	return list, unread, nil
}

// MarkRead flips the read flag. Marking an already-read notification again
// is a no-op success.
func (s *Service) MarkRead(ctx context.Context, id int64) (*domain.Notification, error) {
	return s.repo.MarkAsRead(ctx, id)
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
