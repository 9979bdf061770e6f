package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/ports"
)

// UserHandler handles HTTP requests for user profiles and notifications.
type UserHandler struct {
	users         ports.UserRepository
	notifications ports.NotificationService
}

func NewUserHandler(users ports.UserRepository, notifications ports.NotificationService) *UserHandler {
	return &UserHandler{users: users, notifications: notifications}
}

type userThemeRequest struct {
	Background  string `json:"background"  validate:"required"`
	TextColor   string `json:"textColor"   validate:"required"`
	AccentColor string `json:"accentColor" validate:"required"`
}

// List returns every account as a slim summary. The member-add picker calls
// this before the user has joined anything, so it takes no auth.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {array}  ports.UserSummary
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	summaries := make([]ports.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, ports.UserSummary{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		})
	}

	return c.JSON(http.StatusOK, summaries)
}

// Me returns the caller's own profile.
//
// @Summary      Get my profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.users.FindByID(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// Notifications returns the caller's notifications, newest first.
//
// @Summary      List my notifications
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.NotificationView
// @Router       /api/users/notifications [get]
func (h *UserHandler) Notifications(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	views, err := h.notifications.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, views)
}

// MarkNotificationRead flips one notification's read flag.
//
// @Summary      Mark a notification read
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Notification id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/notifications/{id}/read [post]
func (h *UserHandler) MarkNotificationRead(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.notifications.MarkRead(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "notification read"})
}

// Delete removes the caller's own account. Rooms and messages referencing
// the account keep their dangling ids.
//
// @Summary      Delete my account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/delete [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.Request().Context(), userID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "account deleted"})
}

// UpdateTheme replaces the caller's personal colour preferences.
//
// @Summary      Update my theme preference
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      userThemeRequest  true  "Colour preferences"
// @Success      200   {object}  domain.ThemePreference
// @Failure      400   {object}  map[string]string
// @Router       /api/users/theme [put]
func (h *UserHandler) UpdateTheme(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req userThemeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	theme := domain.ThemePreference{
		Background:  req.Background,
		TextColor:   req.TextColor,
		AccentColor: req.AccentColor,
	}
	if err := h.users.UpdateTheme(c.Request().Context(), userID, theme); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, theme)
}
