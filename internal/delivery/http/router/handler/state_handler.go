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

// StateHandler exposes the cart and favorites container over HTTP. Every
// mutation returns the full snapshot so clients can re-render without a
// second fetch.
type StateHandler struct {
	uc     usecase.StateUsecase
	logger *slog.Logger
}

// NewStateHandler is the constructor for StateHandler, injected by Fx.
func NewStateHandler(uc usecase.StateUsecase, logger *slog.Logger) *StateHandler {
	return &StateHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetState returns the current snapshot of cart, favorites and cached user.
func (h *StateHandler) GetState(c echo.Context) error {
	email, ok := middleware.UserEmail(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	state, err := h.uc.GetState(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "State retrieved successfully")
}

type addToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// AddToCart adds a product to the cart or increments its quantity.
func (h *StateHandler) AddToCart(c echo.Context) error {
	email, ok := middleware.UserEmail(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	state, err := h.uc.AddToCart(c.Request().Context(), email, req.ProductID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "Product added to cart")
}

// DecreaseQuantity lowers a line item's quantity, stopping at one.
func (h *StateHandler) DecreaseQuantity(c echo.Context) error {
	email, ok := middleware.UserEmail(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	state, err := h.uc.DecreaseQuantity(c.Request().Context(), email, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "Quantity decreased")
}

// RemoveFromCart drops a line item from the cart.
func (h *StateHandler) RemoveFromCart(c echo.Context) error {
	email, ok := middleware.UserEmail(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	state, err := h.uc.RemoveFromCart(c.Request().Context(), email, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "Product removed from cart")
}

// ResetCart empties the cart.
func (h *StateHandler) ResetCart(c echo.Context) error {
	email, ok := middleware.UserEmail(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	state, err := h.uc.ResetCart(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "Cart cleared")
}

type toggleFavoriteRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// ToggleFavorite adds the product to favorites or removes it when present.
func (h *StateHandler) ToggleFavorite(c echo.Context) error {
	email, ok := middleware.UserEmail(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	var req toggleFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid favorite input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	state, err := h.uc.ToggleFavorite(c.Request().Context(), email, req.ProductID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "Favorite toggled")
}

// RemoveFromFavorite drops a favorite entry.
func (h *StateHandler) RemoveFromFavorite(c echo.Context) error {
	email, ok := middleware.UserEmail(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	state, err := h.uc.RemoveFromFavorite(c.Request().Context(), email, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "Favorite removed")
}

// ResetFavorite empties the favorites list.
func (h *StateHandler) ResetFavorite(c echo.Context) error {
	email, ok := middleware.UserEmail(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	state, err := h.uc.ResetFavorite(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "Favorites cleared")
}

// RefreshUser re-fetches the account document into the cached slot.
func (h *StateHandler) RefreshUser(c echo.Context) error {
	email, ok := middleware.UserEmail(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	user, err := h.uc.RefreshUser(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "User refreshed")
}
