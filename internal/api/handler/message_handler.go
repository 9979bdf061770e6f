package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/ports"
)

// MessageHandler handles HTTP requests for chat messages.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

type sendMessageRequest struct {
	RoomID  string `json:"roomId"  validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Send persists a message and fans it out to the room and its members.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Room id and message body"
// @Success      201   {object}  domain.Message
// @Failure      400   {object}  map[string]string
// @Router       /api/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.service.Send(c.Request().Context(), userID, req.RoomID, req.Message)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, msg)
}

// ListForRoom returns a room's messages oldest first.
//
// @Summary      List messages in a room
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        roomId  path  string  true  "Room id"
// @Success      200  {array}  domain.Message
// @Router       /api/messages/{roomId} [get]
func (h *MessageHandler) ListForRoom(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	msgs, err := h.service.ListForRoom(c.Request().Context(), c.Param("roomId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, msgs)
}

// ClearRoom deletes every message in a room; member-only.
//
// @Summary      Clear a room's messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        roomId  path  string  true  "Room id"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Router       /api/messages/room/{roomId} [delete]
func (h *MessageHandler) ClearRoom(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	deleted, err := h.service.ClearRoom(c.Request().Context(), userID, c.Param("roomId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "messages cleared",
		"deleted": deleted,
	})
}

// DeleteOne deletes a single message; sender-only.
//
// @Summary      Delete a message
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        messageId  path  string  true  "Message id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/messages/{messageId} [delete]
func (h *MessageHandler) DeleteOne(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteOne(c.Request().Context(), userID, c.Param("messageId")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "message deleted"})
}
