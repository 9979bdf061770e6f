package domain

import (
	"errors"
	"time"
)

var ErrMessageNotFound = errors.New("message not found")
var ErrNotMessageSender = errors.New("only the sender may delete this message")

// Message is a chat message in a room. Messages are created and deleted,
// never updated. Sender and room are weak references by id.
type Message struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender"`
	RoomID    string    `json:"roomId"`
	Body      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
