package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/api/metrics"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/ports"
)

const maxMessageSize = 4096

// Handler upgrades HTTP requests to websocket connections and dispatches
// inbound socket events. The send_message event goes through the same
// MessageService as the HTTP endpoint; the socket side adds no second
// persistence path.
type Handler struct {
	hub      *Hub
	messages ports.MessageService
	rooms    ports.RoomRepository
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewHandler(hub *Hub, messages ports.MessageService, rooms ports.RoomRepository, log zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		messages: messages,
		rooms:    rooms,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// Serve handles GET /ws.
func (h *Handler) Serve(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	conn := newConn(ws, h.log)
	metrics.RealtimeConnections.Inc()
	h.log.Debug().Str("conn_id", conn.ID()).Msg("websocket connected")

	go conn.writePump()
	h.readLoop(c.Request().Context(), conn)

	h.hub.Disconnect(conn)
	metrics.RealtimeConnections.Dec()
	h.log.Debug().Str("conn_id", conn.ID()).Msg("websocket disconnected")
	return nil
}

func (h *Handler) readLoop(ctx context.Context, conn *Conn) {
	conn.ws.SetReadLimit(maxMessageSize)
	for {
		_, raw, err := conn.ws.ReadMessage()
		if err != nil {
			return
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			h.log.Debug().Err(err).Str("conn_id", conn.ID()).Msg("malformed socket event")
			continue
		}
		h.dispatch(ctx, conn, env)
	}
}

func (h *Handler) dispatch(ctx context.Context, conn *Conn, env envelope) {
	switch env.Event {
	case eventRegister:
		var p registerPayload
		if json.Unmarshal(env.Data, &p) != nil || p.UserID == "" {
			return
		}
		h.hub.Register(p.UserID, conn)

	case eventJoinRoom:
		var p joinRoomPayload
		if json.Unmarshal(env.Data, &p) != nil || p.RoomID == "" {
			return
		}
		h.hub.JoinRoom(conn, p.RoomID)

	case eventSendMessage:
		var p sendMessagePayload
		if json.Unmarshal(env.Data, &p) != nil {
			return
		}
		if _, err := h.messages.Send(ctx, p.Sender, p.RoomID, p.Message); err != nil {
			h.log.Warn().Err(err).Str("room_id", p.RoomID).Msg("socket message send failed")
		}

	case eventThemeUpdate:
		// Broadcast only; persistence happens on the HTTP theme endpoint.
		var p themeUpdatePayload
		if json.Unmarshal(env.Data, &p) != nil {
			return
		}
		h.hub.EmitToRoom(p.RoomID, ports.EventThemeUpdated, ports.ThemePayload{
			RoomID: p.RoomID,
			Theme:  p.Theme,
		})

	case eventJoinRequest:
		// Live relay to the admin; the HTTP request-join path persists the
		// notification.
		var p joinRequestPayload
		if json.Unmarshal(env.Data, &p) != nil {
			return
		}
		room, err := h.rooms.FindByID(ctx, p.RoomID)
		if err != nil {
			return
		}
		h.hub.EmitToUser(p.ToUserID, ports.EventNotification, ports.NotificationPayload{
			Type:     domain.NotificationJoinRequest,
			Message:  fmt.Sprintf("%s requested to join %q", p.FromUser.FirstName, room.Name),
			RoomID:   p.RoomID,
			FromUser: p.FromUser.ID,
			Path:     "/dashboard",
		})

	default:
		h.log.Debug().Str("event", env.Event).Msg("unknown socket event")
	}
}
