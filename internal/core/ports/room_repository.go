package ports

import (
	"context"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
)

// RoomRepository persists rooms. Membership and join-request mutations are
// single atomic document updates so concurrent approve/leave operations on
// the same room cannot lose each other's writes.
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	FindByID(ctx context.Context, id string) (*domain.Room, error)
	// ListVisible returns all public rooms plus private rooms userID belongs to.
	ListVisible(ctx context.Context, userID string) ([]domain.Room, error)
	ListByMember(ctx context.Context, userID string) ([]domain.Room, error)
	// Search matches a case-insensitive substring against name, description
	// and tags.
	Search(ctx context.Context, query string) ([]domain.Room, error)
	Delete(ctx context.Context, id string) error

	// AddJoinRequest records a pending request; idempotent for repeats.
	AddJoinRequest(ctx context.Context, roomID, userID string) error
	// ApproveJoinRequest atomically moves userID from joinRequests to members.
	// Fails with domain.ErrNotRequested when no pending request exists.
	ApproveJoinRequest(ctx context.Context, roomID, userID string) error
	AddMember(ctx context.Context, roomID, userID string) error
	RemoveMember(ctx context.Context, roomID, userID string) error

	Rename(ctx context.Context, roomID, name string) error
	SetTheme(ctx context.Context, roomID string, theme domain.RoomTheme) error
}
