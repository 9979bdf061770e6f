package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/ports"
)

// RoomService is the room membership engine: creation, join/request/approve
// flows, admin-only management and the shared room theme.
type RoomService struct {
	rooms       ports.RoomRepository
	users       ports.UserRepository
	notifier    ports.NotificationService
	broadcaster ports.Broadcaster
	log         zerolog.Logger
}

func NewRoomService(
	rooms ports.RoomRepository,
	users ports.UserRepository,
	notifier ports.NotificationService,
	broadcaster ports.Broadcaster,
	log zerolog.Logger,
) *RoomService {
	return &RoomService{
		rooms:       rooms,
		users:       users,
		notifier:    notifier,
		broadcaster: broadcaster,
		log:         log,
	}
}

func (s *RoomService) Create(ctx context.Context, ownerID string, in ports.CreateRoomInput) (*domain.Room, error) {
	now := time.Now().UTC()
	room := &domain.Room{
		Name:        in.Name,
		Description: in.Description,
		Tags:        in.Tags,
		IsPrivate:   in.IsPrivate,
		CreatedBy:   ownerID,
		Members:     []string{ownerID},
		Theme:       domain.ThemeBlue,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.rooms.Create(ctx, room)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("room_id", created.ID).Str("admin", ownerID).Bool("private", in.IsPrivate).Msg("room created")
	return created, nil
}

func (s *RoomService) List(ctx context.Context, userID string) ([]ports.RoomView, error) {
	rooms, err := s.rooms.ListVisible(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, rooms)
}

func (s *RoomService) ListMine(ctx context.Context, userID string) ([]domain.Room, error) {
	return s.rooms.ListByMember(ctx, userID)
}

func (s *RoomService) Search(ctx context.Context, query string) ([]ports.RoomView, error) {
	rooms, err := s.rooms.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, rooms)
}

func (s *RoomService) Get(ctx context.Context, userID, roomID string) (*ports.RoomView, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.HasMember(userID) {
		return nil, domain.ErrNotMember
	}

	views, err := s.toViews(ctx, []domain.Room{*room})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// RequestJoin records a pending join request on a private room. Re-requesting
// is idempotent. The admin gets a join_request notification, persisted and
// delivered live when connected.
func (s *RoomService) RequestJoin(ctx context.Context, userID, roomID string) error {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.IsPrivate {
		// Public rooms have no request flow; callers cannot tell them apart
		// from missing rooms.
		return domain.ErrRoomNotFound
	}
	if room.HasMember(userID) {
		return domain.ErrAlreadyMember
	}

	if err := s.rooms.AddJoinRequest(ctx, roomID, userID); err != nil {
		return err
	}

	requester, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve requester: %w", err)
	}

	n := domain.Notification{
		Type:       domain.NotificationJoinRequest,
		Message:    fmt.Sprintf("%s requested to join %q", requester.FirstName, room.Name),
		RoomID:     room.ID,
		FromUserID: userID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.notifier.Deliver(ctx, room.CreatedBy, n); err != nil {
		// The request itself is recorded; a lost notification is logged, not
		// surfaced as a failure.
		s.log.Warn().Err(err).Str("room_id", roomID).Str("admin", room.CreatedBy).Msg("join request notification failed")
	}

	s.log.Info().Str("room_id", roomID).Str("user_id", userID).Msg("join requested")
	return nil
}

func (s *RoomService) Approve(ctx context.Context, adminID, roomID, userID string) error {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.IsAdmin(adminID) {
		return domain.ErrForbidden
	}
	if !room.HasJoinRequest(userID) {
		return domain.ErrNotRequested
	}

	if err := s.rooms.ApproveJoinRequest(ctx, roomID, userID); err != nil {
		return err
	}

	s.log.Info().Str("room_id", roomID).Str("user_id", userID).Msg("join request approved")
	return nil
}

func (s *RoomService) JoinPublic(ctx context.Context, userID, roomID string) error {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return err
	}
	if room.IsPrivate {
		return domain.ErrPrivateRoom
	}
	return s.rooms.AddMember(ctx, roomID, userID)
}

func (s *RoomService) Leave(ctx context.Context, userID, roomID string) error {
	if _, err := s.rooms.FindByID(ctx, roomID); err != nil {
		return err
	}
	// No membership check: leaving a room you are not in is a no-op. The
	// admin may leave too; admin identity is never reassigned.
	return s.rooms.RemoveMember(ctx, roomID, userID)
}

func (s *RoomService) Rename(ctx context.Context, adminID, roomID, name string) (*domain.Room, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.IsAdmin(adminID) {
		return nil, domain.ErrForbidden
	}
	if name == "" {
		return room, nil
	}

	if err := s.rooms.Rename(ctx, roomID, name); err != nil {
		return nil, err
	}
	room.Name = name
	return room, nil
}

func (s *RoomService) Delete(ctx context.Context, adminID, roomID string) error {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.IsAdmin(adminID) {
		return domain.ErrForbidden
	}

	// Messages in the room are left behind on purpose.
	if err := s.rooms.Delete(ctx, roomID); err != nil {
		return err
	}
	s.log.Info().Str("room_id", roomID).Msg("room deleted")
	return nil
}

func (s *RoomService) AddMemberByEmail(ctx context.Context, adminID, roomID, email string) error {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.IsAdmin(adminID) {
		return domain.ErrForbidden
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.rooms.AddMember(ctx, roomID, user.ID)
}

func (s *RoomService) RemoveMemberByEmail(ctx context.Context, adminID, roomID, email string) error {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.IsAdmin(adminID) {
		return domain.ErrForbidden
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.rooms.RemoveMember(ctx, roomID, user.ID)
}

func (s *RoomService) SetTheme(ctx context.Context, userID, roomID string, theme domain.RoomTheme) error {
	if !theme.Valid() {
		return domain.ErrInvalidTheme
	}

	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.HasMember(userID) {
		return domain.ErrNotMember
	}

	if err := s.rooms.SetTheme(ctx, roomID, theme); err != nil {
		return err
	}

	s.broadcaster.EmitToRoom(roomID, ports.EventThemeUpdated, ports.ThemePayload{
		RoomID: roomID,
		Theme:  string(theme),
	})

	s.log.Info().Str("room_id", roomID).Str("theme", string(theme)).Msg("room theme updated")
	return nil
}

// toViews resolves member and join-request ids to user summaries across a
// batch of rooms with a single user lookup.
func (s *RoomService) toViews(ctx context.Context, rooms []domain.Room) ([]ports.RoomView, error) {
	ids := make([]string, 0)
	for _, r := range rooms {
		ids = append(ids, r.Members...)
		ids = append(ids, r.JoinRequests...)
	}

	users, err := s.users.FindByIDs(ctx, lo.Uniq(ids))
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(users, func(u domain.User) string { return u.ID })

	views := make([]ports.RoomView, 0, len(rooms))
	for _, r := range rooms {
		views = append(views, ports.RoomView{
			Room:         r,
			Members:      summaries(r.Members, byID),
			JoinRequests: summaries(r.JoinRequests, byID),
		})
	}
	return views, nil
}

func summaries(ids []string, byID map[string]domain.User) []ports.UserSummary {
	out := make([]ports.UserSummary, 0, len(ids))
	for _, id := range ids {
		u, ok := byID[id]
		if !ok {
			// Dangling reference: the user was deleted without cleanup.
			out = append(out, ports.UserSummary{ID: id})
			continue
		}
		out = append(out, ports.UserSummary{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		})
	}
	return out
}
