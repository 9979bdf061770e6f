package domain

import (
	"errors"
	"time"

	"github.com/samber/lo"
)

var ErrRoomNotFound = errors.New("room not found")
var ErrForbidden = errors.New("only the room admin may do this")
var ErrNotMember = errors.New("not a member of this room")
var ErrAlreadyMember = errors.New("already a member")
var ErrNotRequested = errors.New("user not in join requests")
var ErrPrivateRoom = errors.New("cannot join a private room directly")
var ErrInvalidTheme = errors.New("invalid theme")

// RoomTheme is the shared colour theme of a room, visible to all members.
type RoomTheme string

const (
	ThemeBlue   RoomTheme = "blue"
	ThemePink   RoomTheme = "pink"
	ThemeGreen  RoomTheme = "green"
	ThemeOrange RoomTheme = "orange"
	ThemePurple RoomTheme = "purple"
	ThemeGray   RoomTheme = "gray"
)

var roomThemes = []RoomTheme{ThemeBlue, ThemePink, ThemeGreen, ThemeOrange, ThemePurple, ThemeGray}

// Valid reports whether t is one of the allowed room themes.
func (t RoomTheme) Valid() bool {
	return lo.Contains(roomThemes, t)
}

// Room is a chat room. CreatedBy is the admin: exactly one, set at creation,
// never reassigned — even if that user later leaves the member list.
// Member and join-request ids are opaque strings with no ordering guarantees.
type Room struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	IsPrivate    bool      `json:"isPrivate"`
	CreatedBy    string    `json:"createdBy"`
	Members      []string  `json:"members"`
	JoinRequests []string  `json:"joinRequests,omitempty"`
	Theme        RoomTheme `json:"theme"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin reports whether userID created the room.
func (r *Room) IsAdmin(userID string) bool {
	return r.CreatedBy == userID
}

// HasMember reports whether userID is in the member list.
func (r *Room) HasMember(userID string) bool {
	return lo.Contains(r.Members, userID)
}

// HasJoinRequest reports whether userID has a pending join request.
func (r *Room) HasJoinRequest(userID string) bool {
	return lo.Contains(r.JoinRequests, userID)
}
