package domain

import "time"

type NotificationType string

const (
	NotifRequestAccepted NotificationType = "request_accepted"
	NotifRequestRejected NotificationType = "request_rejected"
	NotifMatch           NotificationType = "match"
)

// Notification rows are append-only side effects of lifecycle transitions.
// Clients poll them and may only flip the read flag.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
