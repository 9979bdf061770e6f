package realtime

import "encoding/json"

// Inbound event names on the socket channel.
const (
	eventRegister    = "register"
	eventJoinRoom    = "join_room"
	eventSendMessage = "send_message"
	eventThemeUpdate = "theme_update"
	eventJoinRequest = "join_request_notification"
)

// envelope is the wire format for inbound socket events.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type registerPayload struct {
	UserID string `json:"userId"`
}

type joinRoomPayload struct {
	RoomID string `json:"roomId"`
}

type sendMessagePayload struct {
	Sender  string `json:"sender"`
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

type themeUpdatePayload struct {
	RoomID string `json:"roomId"`
	Theme  string `json:"theme"`
}

type joinRequestUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
}

type joinRequestPayload struct {
	ToUserID string          `json:"toUserId"`
	RoomID   string          `json:"roomId"`
	FromUser joinRequestUser `json:"fromUser"`
}
