package ports

import (
	"context"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
)

// UserRepository persists users and their embedded notification logs.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByIDs resolves a set of ids; unknown ids are silently skipped.
	FindByIDs(ctx context.Context, ids []string) ([]domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error

	UpdatePasswordHash(ctx context.Context, email, hash string) error
	UpdateTheme(ctx context.Context, id string, theme domain.ThemePreference) error

	// AppendNotification pushes onto the end of the user's notification log.
	AppendNotification(ctx context.Context, userID string, n domain.Notification) error
	// MarkNotificationRead flips the read flag of one notification. It is
	// idempotent for already-read notifications and fails with
	// domain.ErrNotificationNotFound when the id is not in the user's log.
	MarkNotificationRead(ctx context.Context, userID, notificationID string) error
}
