package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrPasswordMismatch = errors.New("passwords do not match")
var ErrInvalidResetCode = errors.New("invalid or expired code")
var ErrNotificationNotFound = errors.New("notification not found")

// Notification types appended by user-facing actions.
const (
	NotificationMessage     = "message"
	NotificationNewMessage  = "new_message"
	NotificationJoinRequest = "join_request"
)

// Notification is an entry in a user's embedded, append-only notification log.
// Notifications have no identity outside the owning user document.
type Notification struct {
	ID         string    `json:"id,omitempty"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	RoomID     string    `json:"roomId,omitempty"`
	FromUserID string    `json:"fromUser,omitempty"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NavigationPath is where the client should land when the notification is
// opened: the room's chat view for message notifications, the dashboard for
// everything else.
func (n Notification) NavigationPath() string {
	if (n.Type == NotificationMessage || n.Type == NotificationNewMessage) && n.RoomID != "" {
		return "/chat/" + n.RoomID
	}
	return "/dashboard"
}

// ThemePreference holds a user's personal UI colours.
type ThemePreference struct {
	Background  string `json:"background"`
	TextColor   string `json:"textColor"`
	AccentColor string `json:"accentColor"`
}

// DefaultThemePreference returns the colours applied to new accounts.
func DefaultThemePreference() ThemePreference {
	return ThemePreference{
		Background:  "#ffffff",
		TextColor:   "#000000",
		AccentColor: "#3b82f6",
	}
}

// User models an account. Email is unique across all users; the notification
// log is embedded and insertion-ordered.
type User struct {
	ID               string          `json:"id"`
	FirstName        string          `json:"firstName"`
	LastName         string          `json:"lastName"`
	Email            string          `json:"email"`
	PasswordHash     string          `json:"-"`
	DateOfBirth      time.Time       `json:"dob,omitempty"`
	SecurityQuestion string          `json:"-"`
	Notifications    []Notification  `json:"notifications,omitempty"`
	Theme            ThemePreference `json:"theme"`
	CreatedAt        time.Time       `json:"createdAt"`
}
