package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/ports"
)

type messageFixture struct {
	svc         *MessageService
	messages    *stubMessageRepo
	rooms       *stubRoomRepo
	users       *stubUserRepo
	broadcaster *recorderBroadcaster
}

func newMessageFixture() *messageFixture {
	users := newStubUserRepo()
	rooms := newStubRoomRepo()
	messages := newStubMessageRepo()
	broadcaster := &recorderBroadcaster{}
	notifier := NewNotificationService(users, broadcaster, zerolog.Nop())
	dispatcher := &syncDispatcher{service: notifier}
	svc := NewMessageService(messages, rooms, users, broadcaster, dispatcher, zerolog.Nop())
	return &messageFixture{svc: svc, messages: messages, rooms: rooms, users: users, broadcaster: broadcaster}
}

// seeded room with three members; returns sender, two other members.
func (f *messageFixture) seedRoom(t *testing.T) (sender, memberB, memberC *domain.User, room *domain.Room) {
	t.Helper()
	var err error
	sender, _ = f.users.Create(context.Background(), &domain.User{FirstName: "Alice", Email: "alice@example.com"})
	memberB, _ = f.users.Create(context.Background(), &domain.User{FirstName: "Bob", Email: "bob@example.com"})
	memberC, _ = f.users.Create(context.Background(), &domain.User{FirstName: "Carol", Email: "carol@example.com"})
	room, err = f.rooms.Create(context.Background(), &domain.Room{
		Name:      "general",
		CreatedBy: sender.ID,
		Members:   []string{sender.ID, memberB.ID, memberC.ID},
	})
	if err != nil {
		t.Fatalf("seed room: %v", err)
	}
	return sender, memberB, memberC, room
}

func TestMessageService_Send(t *testing.T) {
	f := newMessageFixture()
	sender, memberB, memberC, room := f.seedRoom(t)

	msg, err := f.svc.Send(context.Background(), sender.ID, room.ID, "hello")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if msg.ID == "" || msg.Body != "hello" {
		t.Fatalf("unexpected message: %+v", msg)
	}

	// Exactly one receive_message on the room topic.
	if len(f.broadcaster.roomEvents) != 1 {
		t.Fatalf("expected one room emit, got %d", len(f.broadcaster.roomEvents))
	}
	ev := f.broadcaster.roomEvents[0]
	if ev.Target != room.ID || ev.Event != ports.EventReceiveMessage {
		t.Fatalf("unexpected room emit: %+v", ev)
	}
	payload, ok := ev.Data.(ports.MessagePayload)
	if !ok || payload.Message != "hello" || payload.SenderName != "Alice" {
		t.Fatalf("unexpected payload: %+v", ev.Data)
	}

	// Every member except the sender got a persisted notification.
	for _, member := range []*domain.User{memberB, memberC} {
		u, _ := f.users.FindByID(context.Background(), member.ID)
		if len(u.Notifications) != 1 {
			t.Fatalf("expected one notification for %s, got %d", member.FirstName, len(u.Notifications))
		}
		n := u.Notifications[0]
		if n.Type != domain.NotificationMessage || n.RoomID != room.ID || n.FromUserID != sender.ID {
			t.Fatalf("unexpected notification: %+v", n)
		}
	}
	senderUser, _ := f.users.FindByID(context.Background(), sender.ID)
	if len(senderUser.Notifications) != 0 {
		t.Fatalf("sender must not be notified, got %d", len(senderUser.Notifications))
	}
}

func TestMessageService_Send_UnknownSender(t *testing.T) {
	f := newMessageFixture()
	_, _, _, room := f.seedRoom(t)

	if _, err := f.svc.Send(context.Background(), "ghost", room.ID, "boo"); err == nil {
		t.Fatalf("expected error for unknown sender")
	}
}

func TestMessageService_Send_MissingRoomStillStores(t *testing.T) {
	f := newMessageFixture()
	sender, _ := f.users.Create(context.Background(), &domain.User{FirstName: "Alice", Email: "alice@example.com"})

	// The room lookup only feeds the fan-out; the message and the broadcast
	// survive a missing room.
	msg, err := f.svc.Send(context.Background(), sender.ID, "gone", "orphan")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if msg.ID == "" {
		t.Fatalf("expected stored message")
	}
	if len(f.broadcaster.roomEvents) != 1 {
		t.Fatalf("expected broadcast despite missing room")
	}
	if len(f.broadcaster.userEvents) != 0 {
		t.Fatalf("expected no notifications, got %d", len(f.broadcaster.userEvents))
	}
}

func TestMessageService_ListForRoom(t *testing.T) {
	f := newMessageFixture()
	sender, _, _, room := f.seedRoom(t)

	_, _ = f.svc.Send(context.Background(), sender.ID, room.ID, "first")
	_, _ = f.svc.Send(context.Background(), sender.ID, room.ID, "second")

	msgs, err := f.svc.ListForRoom(context.Background(), room.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Body != "first" || msgs[1].Body != "second" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
}

func TestMessageService_ClearRoom(t *testing.T) {
	f := newMessageFixture()
	sender, memberB, _, room := f.seedRoom(t)
	outsider, _ := f.users.Create(context.Background(), &domain.User{FirstName: "Eve", Email: "eve@example.com"})

	_, _ = f.svc.Send(context.Background(), sender.ID, room.ID, "one")
	_, _ = f.svc.Send(context.Background(), memberB.ID, room.ID, "two")

	if _, err := f.svc.ClearRoom(context.Background(), outsider.ID, room.ID); !errors.Is(err, domain.ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}

	deleted, err := f.svc.ClearRoom(context.Background(), memberB.ID, room.ID)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", deleted)
	}

	msgs, _ := f.svc.ListForRoom(context.Background(), room.ID)
	if len(msgs) != 0 {
		t.Fatalf("expected empty room, got %d messages", len(msgs))
	}
}

func TestMessageService_DeleteOne_SenderOnly(t *testing.T) {
	f := newMessageFixture()
	sender, memberB, _, room := f.seedRoom(t)

	msg, _ := f.svc.Send(context.Background(), sender.ID, room.ID, "mine")

	if err := f.svc.DeleteOne(context.Background(), memberB.ID, msg.ID); !errors.Is(err, domain.ErrNotMessageSender) {
		t.Fatalf("expected ErrNotMessageSender, got %v", err)
	}
	if err := f.svc.DeleteOne(context.Background(), sender.ID, msg.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := f.svc.DeleteOne(context.Background(), sender.ID, msg.ID); !errors.Is(err, domain.ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}
