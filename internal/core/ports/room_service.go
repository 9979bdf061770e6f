package ports

import (
	"context"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
)

// CreateRoomInput carries the details for a new room.
type CreateRoomInput struct {
	Name        string
	Description string
	Tags        []string
	IsPrivate   bool
}

// UserSummary is the slim user shape embedded in room views.
type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// RoomView is a room with its member and join-request ids resolved to
// user summaries.
type RoomView struct {
	domain.Room
	Members      []UserSummary `json:"members"`
	JoinRequests []UserSummary `json:"joinRequests,omitempty"`
}

// RoomService is the room membership engine.
type RoomService interface {
	// Create makes ownerID the sole member and immutable admin.
	Create(ctx context.Context, ownerID string, in CreateRoomInput) (*domain.Room, error)
	// List returns public rooms plus private rooms userID belongs to.
	List(ctx context.Context, userID string) ([]RoomView, error)
	ListMine(ctx context.Context, userID string) ([]domain.Room, error)
	Search(ctx context.Context, query string) ([]RoomView, error)
	// Get is member-only.
	Get(ctx context.Context, userID, roomID string) (*RoomView, error)

	// RequestJoin records a pending request on a private room and notifies
	// the admin. Re-requesting is idempotent, not an error.
	RequestJoin(ctx context.Context, userID, roomID string) error
	// Approve moves userID from the request list to the member list.
	Approve(ctx context.Context, adminID, roomID, userID string) error
	// JoinPublic adds userID to a public room; idempotent.
	JoinPublic(ctx context.Context, userID, roomID string) error
	// Leave removes userID from the member list unconditionally. The admin
	// is never reassigned.
	Leave(ctx context.Context, userID, roomID string) error

	Rename(ctx context.Context, adminID, roomID, name string) (*domain.Room, error)
	Delete(ctx context.Context, adminID, roomID string) error
	AddMemberByEmail(ctx context.Context, adminID, roomID, email string) error
	RemoveMemberByEmail(ctx context.Context, adminID, roomID, email string) error

	// SetTheme changes the room-wide theme (any member) and broadcasts
	// theme_updated on the room topic.
	SetTheme(ctx context.Context, userID, roomID string, theme domain.RoomTheme) error
}
