package handler

import (
	"log/slog"
	"net/http"

	"unimarket/internal/delivery/http/middleware"
	"unimarket/internal/delivery/http/response"
	"unimarket/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// NotificationHandler exposes the per-account notification feed.
type NotificationHandler struct {
	uc     usecase.NotificationUsecase
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler, injected by Fx.
func NewNotificationHandler(uc usecase.NotificationUsecase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListNotifications returns the current account's feed, newest first.
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	email, ok := middleware.UserEmail(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	notifications, err := h.uc.ListNotifications(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, notifications, "Notifications retrieved successfully")
}

// MarkRead flips a notification's read flag. Only the recipient may do so.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	email, ok := middleware.UserEmail(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	if err := h.uc.MarkRead(c.Request().Context(), email, c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Notification marked as read")
}
