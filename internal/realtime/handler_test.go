package realtime

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/ports"
)

type stubMessageService struct {
	sent []sendMessagePayload
	err  error
}

func (s *stubMessageService) Send(_ context.Context, senderID, roomID, body string) (*domain.Message, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, sendMessagePayload{Sender: senderID, RoomID: roomID, Message: body})
	return &domain.Message{ID: "m1", SenderID: senderID, RoomID: roomID, Body: body}, nil
}

func (s *stubMessageService) ListForRoom(context.Context, string) ([]domain.Message, error) {
	return nil, nil
}

func (s *stubMessageService) ClearRoom(context.Context, string, string) (int64, error) {
	return 0, nil
}

func (s *stubMessageService) DeleteOne(context.Context, string, string) error { return nil }

type stubRoomFinder struct {
	room *domain.Room
}

func (s *stubRoomFinder) Create(_ context.Context, room *domain.Room) (*domain.Room, error) {
	return room, nil
}

func (s *stubRoomFinder) FindByID(_ context.Context, id string) (*domain.Room, error) {
	if s.room == nil || s.room.ID != id {
		return nil, domain.ErrRoomNotFound
	}
	return s.room, nil
}

func (s *stubRoomFinder) ListVisible(context.Context, string) ([]domain.Room, error) {
	return nil, nil
}

func (s *stubRoomFinder) ListByMember(context.Context, string) ([]domain.Room, error) {
	return nil, nil
}

func (s *stubRoomFinder) Search(context.Context, string) ([]domain.Room, error) { return nil, nil }

func (s *stubRoomFinder) Delete(context.Context, string) error { return nil }

func (s *stubRoomFinder) AddJoinRequest(context.Context, string, string) error { return nil }

func (s *stubRoomFinder) ApproveJoinRequest(context.Context, string, string) error { return nil }

func (s *stubRoomFinder) AddMember(context.Context, string, string) error { return nil }

func (s *stubRoomFinder) RemoveMember(context.Context, string, string) error { return nil }

func (s *stubRoomFinder) Rename(context.Context, string, string) error { return nil }

func (s *stubRoomFinder) SetTheme(context.Context, string, domain.RoomTheme) error { return nil }

func event(t *testing.T, name string, payload any) envelope {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return envelope{Event: name, Data: raw}
}

func newDispatchFixture(room *domain.Room) (*Handler, *Hub, *stubMessageService) {
	hub := NewHub(zerolog.Nop())
	messages := &stubMessageService{}
	h := NewHandler(hub, messages, &stubRoomFinder{room: room}, zerolog.Nop())
	return h, hub, messages
}

func TestDispatch_Register(t *testing.T) {
	h, hub, _ := newDispatchFixture(nil)
	conn := newTestConn()

	h.dispatch(context.Background(), conn, event(t, eventRegister, registerPayload{UserID: "u1"}))

	if !hub.ConnectedUser("u1") {
		t.Fatalf("expected u1 registered")
	}
}

func TestDispatch_Register_EmptyUserIgnored(t *testing.T) {
	h, hub, _ := newDispatchFixture(nil)
	conn := newTestConn()

	h.dispatch(context.Background(), conn, event(t, eventRegister, registerPayload{}))

	if hub.ConnectedUser("") {
		t.Fatalf("empty user id must not register")
	}
}

func TestDispatch_JoinRoomAndBroadcast(t *testing.T) {
	h, hub, _ := newDispatchFixture(nil)
	conn := newTestConn()

	h.dispatch(context.Background(), conn, event(t, eventJoinRoom, joinRoomPayload{RoomID: "r1"}))
	hub.EmitToRoom("r1", "receive_message", nil)

	if len(drain(conn)) != 1 {
		t.Fatalf("expected event after joining topic")
	}
}

func TestDispatch_SendMessage_UsesService(t *testing.T) {
	h, _, messages := newDispatchFixture(nil)
	conn := newTestConn()

	h.dispatch(context.Background(), conn, event(t, eventSendMessage, sendMessagePayload{
		Sender: "u1", RoomID: "r1", Message: "hello",
	}))

	if len(messages.sent) != 1 {
		t.Fatalf("expected one Send call, got %d", len(messages.sent))
	}
	if messages.sent[0].Sender != "u1" || messages.sent[0].Message != "hello" {
		t.Fatalf("unexpected call: %+v", messages.sent[0])
	}
}

func TestDispatch_SendMessage_ServiceFailureIsSwallowed(t *testing.T) {
	h, _, messages := newDispatchFixture(nil)
	messages.err = domain.ErrRoomNotFound
	conn := newTestConn()

	// A failed send is logged; the socket stays up.
	h.dispatch(context.Background(), conn, event(t, eventSendMessage, sendMessagePayload{
		Sender: "u1", RoomID: "gone", Message: "hello",
	}))
}

func TestDispatch_ThemeUpdateBroadcastsOnly(t *testing.T) {
	h, hub, _ := newDispatchFixture(nil)
	sender := newTestConn()
	listener := newTestConn()
	hub.JoinRoom(listener, "r1")

	h.dispatch(context.Background(), sender, event(t, eventThemeUpdate, themeUpdatePayload{
		RoomID: "r1", Theme: "pink",
	}))

	events := drain(listener)
	if len(events) != 1 || events[0].Event != ports.EventThemeUpdated {
		t.Fatalf("expected theme_updated, got %+v", events)
	}
	payload, ok := events[0].Data.(ports.ThemePayload)
	if !ok || payload.Theme != "pink" {
		t.Fatalf("unexpected payload: %+v", events[0].Data)
	}
}

func TestDispatch_JoinRequestRelay(t *testing.T) {
	room := &domain.Room{ID: "r1", Name: "secret club", IsPrivate: true, CreatedBy: "admin"}
	h, hub, _ := newDispatchFixture(room)
	adminConn := newTestConn()
	hub.Register("admin", adminConn)

	h.dispatch(context.Background(), newTestConn(), event(t, eventJoinRequest, joinRequestPayload{
		ToUserID: "admin",
		RoomID:   "r1",
		FromUser: joinRequestUser{ID: "u2", FirstName: "Bob"},
	}))

	events := drain(adminConn)
	if len(events) != 1 || events[0].Event != ports.EventNotification {
		t.Fatalf("expected notification, got %+v", events)
	}
	payload, ok := events[0].Data.(ports.NotificationPayload)
	if !ok || payload.Type != domain.NotificationJoinRequest || payload.Path != "/dashboard" {
		t.Fatalf("unexpected payload: %+v", events[0].Data)
	}
}

func TestDispatch_UnknownRoomJoinRequestDropped(t *testing.T) {
	h, hub, _ := newDispatchFixture(nil)
	adminConn := newTestConn()
	hub.Register("admin", adminConn)

	h.dispatch(context.Background(), newTestConn(), event(t, eventJoinRequest, joinRequestPayload{
		ToUserID: "admin",
		RoomID:   "missing",
	}))

	if len(drain(adminConn)) != 0 {
		t.Fatalf("expected no relay for unknown room")
	}
}
