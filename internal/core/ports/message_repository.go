package ports

import (
	"context"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
)

// MessageRepository persists chat messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	// ListByRoom returns all messages for a room, oldest first.
	ListByRoom(ctx context.Context, roomID string) ([]domain.Message, error)
	Delete(ctx context.Context, id string) error
	// DeleteByRoom removes every message in the room and returns the count.
	DeleteByRoom(ctx context.Context, roomID string) (int64, error)
}
