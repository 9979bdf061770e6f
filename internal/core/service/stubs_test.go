package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/ports"
)

// --- User repository stub ---

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Notifications = append([]domain.Notification(nil), u.Notifications...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		r.nextID++
		copy.ID = fmt.Sprintf("u%d", r.nextID)
	}
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, email, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u.PasswordHash = hash
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateTheme(_ context.Context, id string, theme domain.ThemePreference) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Theme = theme
	return nil
}

func (r *stubUserRepo) AppendNotification(_ context.Context, userID string, n domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if n.ID == "" {
		n.ID = fmt.Sprintf("n%d", len(u.Notifications)+1)
	}
	u.Notifications = append(u.Notifications, n)
	return nil
}

func (r *stubUserRepo) MarkNotificationRead(_ context.Context, userID, notificationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for i := range u.Notifications {
		if u.Notifications[i].ID == notificationID {
			u.Notifications[i].IsRead = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

// --- Room repository stub ---

type stubRoomRepo struct {
	mu     sync.Mutex
	rooms  map[string]*domain.Room
	nextID int
}

func newStubRoomRepo() *stubRoomRepo {
	return &stubRoomRepo{rooms: make(map[string]*domain.Room)}
}

func cloneRoom(r *domain.Room) *domain.Room {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Members = append([]string(nil), r.Members...)
	clone.JoinRequests = append([]string(nil), r.JoinRequests...)
	clone.Tags = append([]string(nil), r.Tags...)
	return &clone
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func (r *stubRoomRepo) Create(_ context.Context, room *domain.Room) (*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := cloneRoom(room)
	if copy.ID == "" {
		r.nextID++
		copy.ID = fmt.Sprintf("r%d", r.nextID)
	}
	r.rooms[copy.ID] = cloneRoom(copy)
	return cloneRoom(copy), nil
}

func (r *stubRoomRepo) FindByID(_ context.Context, id string) (*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return cloneRoom(room), nil
}

func (r *stubRoomRepo) ListVisible(_ context.Context, userID string) ([]domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Room, 0)
	for _, room := range r.rooms {
		if !room.IsPrivate || containsID(room.Members, userID) {
			out = append(out, *cloneRoom(room))
		}
	}
	return out, nil
}

func (r *stubRoomRepo) ListByMember(_ context.Context, userID string) ([]domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Room, 0)
	for _, room := range r.rooms {
		if containsID(room.Members, userID) {
			out = append(out, *cloneRoom(room))
		}
	}
	return out, nil
}

func (r *stubRoomRepo) Search(_ context.Context, query string) ([]domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	out := make([]domain.Room, 0)
	for _, room := range r.rooms {
		if strings.Contains(strings.ToLower(room.Name), q) ||
			strings.Contains(strings.ToLower(room.Description), q) {
			out = append(out, *cloneRoom(room))
		}
	}
	return out, nil
}

func (r *stubRoomRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[id]; !ok {
		return domain.ErrRoomNotFound
	}
	delete(r.rooms, id)
	return nil
}

func (r *stubRoomRepo) AddJoinRequest(_ context.Context, roomID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return domain.ErrRoomNotFound
	}
	if !containsID(room.JoinRequests, userID) {
		room.JoinRequests = append(room.JoinRequests, userID)
	}
	return nil
}

func (r *stubRoomRepo) ApproveJoinRequest(_ context.Context, roomID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return domain.ErrRoomNotFound
	}
	if !containsID(room.JoinRequests, userID) {
		return domain.ErrNotRequested
	}
	room.JoinRequests = removeID(room.JoinRequests, userID)
	if !containsID(room.Members, userID) {
		room.Members = append(room.Members, userID)
	}
	return nil
}

func (r *stubRoomRepo) AddMember(_ context.Context, roomID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return domain.ErrRoomNotFound
	}
	if !containsID(room.Members, userID) {
		room.Members = append(room.Members, userID)
	}
	return nil
}

func (r *stubRoomRepo) RemoveMember(_ context.Context, roomID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return domain.ErrRoomNotFound
	}
	room.Members = removeID(room.Members, userID)
	return nil
}

func (r *stubRoomRepo) Rename(_ context.Context, roomID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return domain.ErrRoomNotFound
	}
	room.Name = name
	return nil
}

func (r *stubRoomRepo) SetTheme(_ context.Context, roomID string, theme domain.RoomTheme) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return domain.ErrRoomNotFound
	}
	room.Theme = theme
	return nil
}

// --- Message repository stub ---

type stubMessageRepo struct {
	mu       sync.Mutex
	messages []domain.Message
	nextID   int
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{}
}

func (r *stubMessageRepo) Create(_ context.Context, msg *domain.Message) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *msg
	r.nextID++
	copy.ID = fmt.Sprintf("m%d", r.nextID)
	r.messages = append(r.messages, copy)
	return &copy, nil
}

func (r *stubMessageRepo) FindByID(_ context.Context, id string) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.ID == id {
			copy := m
			return &copy, nil
		}
	}
	return nil, domain.ErrMessageNotFound
}

func (r *stubMessageRepo) ListByRoom(_ context.Context, roomID string) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Message, 0)
	for _, m := range r.messages {
		if m.RoomID == roomID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMessageRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.messages {
		if m.ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return nil
		}
	}
	return domain.ErrMessageNotFound
}

func (r *stubMessageRepo) DeleteByRoom(_ context.Context, roomID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.messages[:0]
	var deleted int64
	for _, m := range r.messages {
		if m.RoomID == roomID {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	r.messages = kept
	return deleted, nil
}

// --- Broadcaster recorder ---

type emittedEvent struct {
	Target string // user or room id
	Event  string
	Data   any
}

type recorderBroadcaster struct {
	mu         sync.Mutex
	userEvents []emittedEvent
	roomEvents []emittedEvent
}

func (b *recorderBroadcaster) EmitToUser(userID, event string, data any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.userEvents = append(b.userEvents, emittedEvent{Target: userID, Event: event, Data: data})
}

func (b *recorderBroadcaster) EmitToRoom(roomID, event string, data any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.roomEvents = append(b.roomEvents, emittedEvent{Target: roomID, Event: event, Data: data})
}

// --- Synchronous dispatcher ---

// syncDispatcher delivers in the caller's goroutine so tests can assert
// immediately after EnqueueBatch returns.
type syncDispatcher struct {
	service ports.NotificationService
}

func (d *syncDispatcher) Enqueue(delivery ports.NotificationDelivery) {
	_ = d.service.Deliver(context.Background(), delivery.UserID, delivery.Notification)
}

func (d *syncDispatcher) EnqueueBatch(deliveries []ports.NotificationDelivery) {
	for _, delivery := range deliveries {
		d.Enqueue(delivery)
	}
}

// --- Mailer and reset code store stubs ---

type stubMailer struct {
	mu   sync.Mutex
	sent []struct{ To, Subject, Body string }
	err  error
}

func (m *stubMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, struct{ To, Subject, Body string }{to, subject, body})
	return nil
}

type stubCodeStore struct {
	mu    sync.Mutex
	codes map[string]string
	ttls  map[string]time.Duration
}

func newStubCodeStore() *stubCodeStore {
	return &stubCodeStore{codes: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (s *stubCodeStore) Set(_ context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = code
	s.ttls[email] = ttl
	return nil
}

func (s *stubCodeStore) Validate(_ context.Context, email, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.codes[email]
	return ok && stored == code, nil
}

func (s *stubCodeStore) Clear(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, email)
	delete(s.ttls, email)
	return nil
}
