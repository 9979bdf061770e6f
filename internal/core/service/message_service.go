package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/api/metrics"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/ports"
)

// MessageService persists messages, broadcasts them on the room topic and
// hands the per-member notification fan-out to the dispatcher.
type MessageService struct {
	messages    ports.MessageRepository
	rooms       ports.RoomRepository
	users       ports.UserRepository
	broadcaster ports.Broadcaster
	dispatcher  ports.NotificationDispatcher
	log         zerolog.Logger
}

func NewMessageService(
	messages ports.MessageRepository,
	rooms ports.RoomRepository,
	users ports.UserRepository,
	broadcaster ports.Broadcaster,
	dispatcher ports.NotificationDispatcher,
	log zerolog.Logger,
) *MessageService {
	return &MessageService{
		messages:    messages,
		rooms:       rooms,
		users:       users,
		broadcaster: broadcaster,
		dispatcher:  dispatcher,
		log:         log,
	}
}

// Send persists exactly one message and emits exactly one receive_message
// event on the room topic. Every member except the sender is then queued for
// a notification (persisted + live). Both the HTTP endpoint and the socket
// send_message event go through here; this is the single authoritative path.
func (s *MessageService) Send(ctx context.Context, senderID, roomID, body string) (*domain.Message, error) {
	msg := &domain.Message{
		SenderID:  senderID,
		RoomID:    roomID,
		Body:      body,
		Timestamp: time.Now().UTC(),
	}

	created, err := s.messages.Create(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	metrics.MessagesSentTotal.Inc()

	sender, err := s.users.FindByID(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("resolve sender: %w", err)
	}

	s.broadcaster.EmitToRoom(roomID, ports.EventReceiveMessage, ports.MessagePayload{
		ID:         created.ID,
		SenderID:   senderID,
		SenderName: sender.FirstName,
		RoomID:     roomID,
		Message:    created.Body,
		Timestamp:  created.Timestamp.Format(time.RFC3339),
	})

	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		// The message is stored and broadcast; without the room there is no
		// member list to notify.
		s.log.Warn().Err(err).Str("room_id", roomID).Msg("skipping notification fan-out")
		return created, nil
	}

	n := domain.Notification{
		Type:       domain.NotificationMessage,
		Message:    fmt.Sprintf("%s sent a message in %q", sender.FirstName, room.Name),
		RoomID:     room.ID,
		FromUserID: senderID,
		CreatedAt:  created.Timestamp,
	}

	deliveries := make([]ports.NotificationDelivery, 0, len(room.Members))
	for _, member := range room.Members {
		if member == senderID {
			continue
		}
		deliveries = append(deliveries, ports.NotificationDelivery{UserID: member, Notification: n})
	}
	s.dispatcher.EnqueueBatch(deliveries)

	s.log.Debug().Str("room_id", roomID).Str("message_id", created.ID).Int("recipients", len(deliveries)).Msg("message sent")
	return created, nil
}

func (s *MessageService) ListForRoom(ctx context.Context, roomID string) ([]domain.Message, error) {
	return s.messages.ListByRoom(ctx, roomID)
}

func (s *MessageService) ClearRoom(ctx context.Context, userID, roomID string) (int64, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return 0, err
	}
	if !room.HasMember(userID) {
		return 0, domain.ErrNotMember
	}

	deleted, err := s.messages.DeleteByRoom(ctx, roomID)
	if err != nil {
		return 0, err
	}
	s.log.Info().Str("room_id", roomID).Int64("deleted", deleted).Msg("room messages cleared")
	return deleted, nil
}

func (s *MessageService) DeleteOne(ctx context.Context, userID, messageID string) error {
	msg, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != userID {
		return domain.ErrNotMessageSender
	}
	return s.messages.Delete(ctx, messageID)
}
