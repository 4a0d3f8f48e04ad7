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

// CheckoutHandler triggers the purchase flow for the current account's cart.
type CheckoutHandler struct {
	uc     usecase.CheckoutUsecase
	logger *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler, injected by Fx.
func NewCheckoutHandler(uc usecase.CheckoutUsecase, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		uc:     uc,
		logger: logger,
	}
}

// Checkout processes every cart item in order. A partial failure returns the
// completed transactions alongside the error envelope.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	email, ok := middleware.UserEmail(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	result, err := h.uc.Checkout(c.Request().Context(), email)
	if err != nil {
		if result != nil && len(result.TransactionIDs) > 0 {
			h.logger.Warn("checkout aborted after partial completion",
				"buyer", email,
				"completed", len(result.TransactionIDs),
				"error", err.Error(),
			)
		}

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Checkout completed successfully")
}
