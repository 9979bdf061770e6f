package ports

import (
	"context"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
)

// NotificationView is a notification augmented with its navigation path.
type NotificationView struct {
	domain.Notification
	Path string `json:"path"`
}

// NotificationService reads and delivers per-user notifications.
type NotificationService interface {
	// ListForUser returns the user's notifications, newest first.
	ListForUser(ctx context.Context, userID string) ([]NotificationView, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	// Deliver persists the notification on the target user and emits it live
	// when the user has an active connection.
	Deliver(ctx context.Context, userID string, n domain.Notification) error
}

// NotificationDelivery is one unit of fan-out work: a notification bound for
// one recipient.
type NotificationDelivery struct {
	UserID       string
	Notification domain.Notification
}

// NotificationDispatcher queues deliveries for asynchronous fan-out,
// preserving per-recipient ordering.
type NotificationDispatcher interface {
	Enqueue(d NotificationDelivery)
	EnqueueBatch(ds []NotificationDelivery)
}
