package ports

import (
	"context"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
)

// MessageService sends, lists and deletes chat messages. Send also drives the
// realtime broadcast and the per-member notification fan-out.
type MessageService interface {
	Send(ctx context.Context, senderID, roomID, body string) (*domain.Message, error)
	ListForRoom(ctx context.Context, roomID string) ([]domain.Message, error)
	// ClearRoom deletes every message in the room; member-only.
	ClearRoom(ctx context.Context, userID, roomID string) (int64, error)
	// DeleteOne deletes a single message; sender-only.
	DeleteOne(ctx context.Context, userID, messageID string) error
}
