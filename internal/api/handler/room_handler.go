package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/ports"
)

// RoomHandler handles HTTP requests for room and membership operations.
type RoomHandler struct {
	service ports.RoomService
}

func NewRoomHandler(service ports.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

type createRoomRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	IsPrivate   bool     `json:"isPrivate"`
}

type renameRoomRequest struct {
	Name string `json:"name" validate:"required"`
}

type memberEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type approveRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type roomThemeRequest struct {
	Theme string `json:"theme" validate:"required"`
}

// Create makes a new room with the caller as sole member and admin.
//
// @Summary      Create a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRoomRequest  true  "Room details"
// @Success      201   {object}  domain.Room
// @Failure      400   {object}  map[string]string
// @Router       /api/rooms/create [post]
func (h *RoomHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	room, err := h.service.Create(c.Request().Context(), userID, ports.CreateRoomInput{
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, room)
}

// List returns public rooms plus private rooms the caller belongs to.
//
// @Summary      List visible rooms
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.RoomView
// @Router       /api/rooms [get]
func (h *RoomHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	rooms, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, rooms)
}

// ListMine returns rooms the caller is a member of.
//
// @Summary      List my rooms
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Room
// @Router       /api/rooms/my [get]
func (h *RoomHandler) ListMine(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	rooms, err := h.service.ListMine(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, rooms)
}

// Search matches rooms by name, description or tag.
//
// @Summary      Search rooms
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        q  query  string  true  "Search term"
// @Success      200  {array}  ports.RoomView
// @Router       /api/rooms/search [get]
func (h *RoomHandler) Search(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	rooms, err := h.service.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, rooms)
}

// Get returns one room with members resolved; member-only.
//
// @Summary      Get a room
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        roomId  path  string  true  "Room id"
// @Success      200  {object}  ports.RoomView
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/rooms/{roomId} [get]
func (h *RoomHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	room, err := h.service.Get(c.Request().Context(), userID, c.Param("roomId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, room)
}

// RequestJoin records a pending join request on a private room.
//
// @Summary      Request to join a private room
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        roomId  path  string  true  "Room id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/rooms/{roomId}/request [post]
func (h *RoomHandler) RequestJoin(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.RequestJoin(c.Request().Context(), userID, c.Param("roomId")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "join request sent"})
}

// Approve moves a requester onto the member list; admin-only.
//
// @Summary      Approve a join request
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        roomId  path  string          true  "Room id"
// @Param        body    body  approveRequest  true  "Requester id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/rooms/{roomId}/approve [post]
func (h *RoomHandler) Approve(c echo.Context) error {
	adminID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req approveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Approve(c.Request().Context(), adminID, c.Param("roomId"), req.UserID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "member approved"})
}

// Join adds the caller to a public room.
//
// @Summary      Join a public room
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        roomId  path  string  true  "Room id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/rooms/{roomId}/join [post]
func (h *RoomHandler) Join(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.JoinPublic(c.Request().Context(), userID, c.Param("roomId")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "joined"})
}

// Leave removes the caller from the member list.
//
// @Summary      Leave a room
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        roomId  path  string  true  "Room id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/rooms/{roomId}/leave [post]
func (h *RoomHandler) Leave(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Leave(c.Request().Context(), userID, c.Param("roomId")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "left room"})
}

// AddMember adds a user to the room by email; admin-only.
//
// @Summary      Add a member by email
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        roomId  path  string              true  "Room id"
// @Param        body    body  memberEmailRequest  true  "Member email"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/rooms/{roomId}/add [post]
func (h *RoomHandler) AddMember(c echo.Context) error {
	adminID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req memberEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.AddMemberByEmail(c.Request().Context(), adminID, c.Param("roomId"), req.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "member added"})
}

// RemoveMember removes a user from the room by email; admin-only.
//
// @Summary      Remove a member by email
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        roomId  path  string              true  "Room id"
// @Param        body    body  memberEmailRequest  true  "Member email"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/rooms/{roomId}/remove [post]
func (h *RoomHandler) RemoveMember(c echo.Context) error {
	adminID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req memberEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.RemoveMemberByEmail(c.Request().Context(), adminID, c.Param("roomId"), req.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "member removed"})
}

// SetTheme changes the room-wide theme; any member.
//
// @Summary      Set the room theme
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        roomId  path  string            true  "Room id"
// @Param        body    body  roomThemeRequest  true  "Theme name"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/rooms/{roomId}/theme [post]
func (h *RoomHandler) SetTheme(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req roomThemeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.SetTheme(c.Request().Context(), userID, c.Param("roomId"), domain.RoomTheme(req.Theme)); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "theme updated"})
}

// Rename changes the room name; admin-only.
//
// @Summary      Rename a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        roomId  path  string             true  "Room id"
// @Param        body    body  renameRoomRequest  true  "New name"
// @Success      200  {object}  domain.Room
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/rooms/{roomId} [put]
func (h *RoomHandler) Rename(c echo.Context) error {
	adminID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req renameRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	room, err := h.service.Rename(c.Request().Context(), adminID, c.Param("roomId"), req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, room)
}

// Delete removes the room document; admin-only. Messages referencing the
// room are left in place.
//
// @Summary      Delete a room
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        roomId  path  string  true  "Room id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/rooms/{roomId} [delete]
func (h *RoomHandler) Delete(c echo.Context) error {
	adminID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), adminID, c.Param("roomId")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "room deleted"})
}
