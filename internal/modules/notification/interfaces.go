package notification

import (
	"context"

	"foodshare/internal/domain"
)

// NotificationRepository defines the store operations the service needs.
type NotificationRepository interface {
	GetByUserID(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkAsRead(ctx context.Context, id int64) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, userID int64) error
}
