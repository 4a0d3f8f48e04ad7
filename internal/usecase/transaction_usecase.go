package usecase

import (
	"context"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
)

// TransactionUsecase exposes a user's purchase and sale history.
type TransactionUsecase interface {
	// ListTransactions returns the user's transactions from the requested
	// side of the trade.
	ListTransactions(ctx context.Context, userEmail string, role repository.TransactionRole) ([]*entity.Transaction, error)

	// UpdateStatus moves a transaction to a new status. Only the buyer or
	// the seller of the transaction may do so.
	UpdateStatus(ctx context.Context, userEmail, id string, status entity.TransactionStatus) error
}
