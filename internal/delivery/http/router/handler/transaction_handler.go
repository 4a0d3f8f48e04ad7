package handler

import (
	"log/slog"
	"net/http"

	"unimarket/internal/delivery/http/middleware"
	"unimarket/internal/delivery/http/response"
	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TransactionHandler exposes purchase and sale history.
type TransactionHandler struct {
	uc     usecase.TransactionUsecase
	logger *slog.Logger
}

// NewTransactionHandler is the constructor for TransactionHandler, injected by Fx.
func NewTransactionHandler(uc usecase.TransactionUsecase, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListTransactions returns the current account's transactions. The role query
// parameter selects the buyer or seller side and defaults to buyer.
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	email, ok := middleware.UserEmail(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	role := repository.TransactionRole(c.QueryParam("role"))
	if role == "" {
		role = repository.TransactionRoleBuyer
	}

	transactions, err := h.uc.ListTransactions(c.Request().Context(), email, role)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, transactions, "Transactions retrieved successfully")
}

type updateTransactionStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus moves a transaction to a new status. Only a party to the
// transaction may do so.
func (h *TransactionHandler) UpdateStatus(c echo.Context) error {
	email, ok := middleware.UserEmail(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	var req updateTransactionStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	err := h.uc.UpdateStatus(c.Request().Context(), email, c.Param("id"), entity.TransactionStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Transaction status updated successfully")
}
