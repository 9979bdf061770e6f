package ports

// Realtime event names shared by the socket channel and the services that
// publish through it.
const (
	EventReceiveMessage = "receive_message"
	EventNotification   = "notification"
	EventThemeUpdated   = "theme_updated"
)

// Broadcaster fans events out to live connections. Delivery is best-effort
// and fire-and-forget: a user with no live connection receives nothing, a
// slow connection may drop events, and nothing is queued or retried.
type Broadcaster interface {
	// EmitToUser delivers to the user's active connection, if any.
	EmitToUser(userID, event string, data any)
	// EmitToRoom delivers to every connection joined to the room's topic.
	// Topic membership, not room membership, governs delivery.
	EmitToRoom(roomID, event string, data any)
}

// MessagePayload is the room-topic payload for a newly sent message.
type MessagePayload struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender"`
	SenderName string `json:"senderName,omitempty"`
	RoomID     string `json:"roomId"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
}

// ThemePayload is the room-topic payload for a theme change.
type ThemePayload struct {
	RoomID string `json:"roomId"`
	Theme  string `json:"theme"`
}

// NotificationPayload is the per-user payload mirroring a persisted
// notification, augmented with the derived navigation path.
type NotificationPayload struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	RoomID    string `json:"roomId,omitempty"`
	FromUser  string `json:"fromUser,omitempty"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
	Path      string `json:"path"`
}
