package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/ports"
)

// NotificationService reads the per-user notification log and delivers new
// entries (persist + live emit).
type NotificationService struct {
	users       ports.UserRepository
	broadcaster ports.Broadcaster
	log         zerolog.Logger
}

func NewNotificationService(users ports.UserRepository, broadcaster ports.Broadcaster, log zerolog.Logger) *NotificationService {
	return &NotificationService{users: users, broadcaster: broadcaster, log: log}
}

// ListForUser returns the user's notifications newest first, each with its
// derived navigation path.
func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]ports.NotificationView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	notifications := make([]domain.Notification, len(user.Notifications))
	copy(notifications, user.Notifications)
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	views := make([]ports.NotificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, ports.NotificationView{Notification: n, Path: n.NavigationPath()})
	}
	return views, nil
}

// MarkRead flips the read flag. Marking an already-read notification again is
// a no-op, not an error.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.users.MarkNotificationRead(ctx, userID, notificationID)
}

// Deliver appends the notification to the target user's log and emits it to
// the user's live connection, if any. The live emit is fire-and-forget; the
// append is the delivery guarantee.
func (s *NotificationService) Deliver(ctx context.Context, userID string, n domain.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	if err := s.users.AppendNotification(ctx, userID, n); err != nil {
		return err
	}

	s.broadcaster.EmitToUser(userID, ports.EventNotification, ports.NotificationPayload{
		Type:      n.Type,
		Message:   n.Message,
		RoomID:    n.RoomID,
		FromUser:  n.FromUserID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
		Path:      n.NavigationPath(),
	})
	return nil
}
