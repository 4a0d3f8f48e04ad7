package impl

import (
	"context"
	"log/slog"

	"unimarket/internal/domain/entity"
	domainerrors "unimarket/internal/domain/errors"
	"unimarket/internal/domain/repository"
	"unimarket/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// transactionService implements the TransactionUsecase interface.
type transactionService struct {
	transactionRepo repository.TransactionRepository
	logger          *slog.Logger
}

// TransactionServiceParams holds dependencies for TransactionService, injected by Fx.
type TransactionServiceParams struct {
	fx.In

	TransactionRepo repository.TransactionRepository
	Logger          *slog.Logger
}

// NewTransactionService is the constructor for transactionService.
func NewTransactionService(params TransactionServiceParams) usecase.TransactionUsecase {
	return &transactionService{
		transactionRepo: params.TransactionRepo,
		logger:          params.Logger,
	}
}

// ListTransactions returns the user's transactions from one side of the trade.
func (srv *transactionService) ListTransactions(ctx context.Context, userEmail string, role repository.TransactionRole) ([]*entity.Transaction, error) {
	if role != repository.TransactionRoleBuyer && role != repository.TransactionRoleSeller {
		return nil, domainerrors.ErrValidationFailed.WithDetails("role must be buyer or seller")
	}

	txns, err := srv.transactionRepo.FindByUser(ctx, userEmail, role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	return txns, nil
}

// UpdateStatus moves a transaction to a new status. Only a party to the
// transaction may do so.
func (srv *transactionService) UpdateStatus(ctx context.Context, userEmail, id string, status entity.TransactionStatus) error {
	if !status.IsValid() {
		return domainerrors.ErrInvalidTransactionStatus
	}

	txn, err := srv.transactionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return domainerrors.ErrTransactionNotFound
		}

		return errors.Wrap(err, "failed to fetch transaction")
	}

	if txn.BuyerID != userEmail && txn.SellerID != userEmail {
		return domainerrors.ErrForbidden
	}

	if err := srv.transactionRepo.UpdateStatus(ctx, id, status); err != nil {
		return errors.Wrap(err, "failed to update transaction status")
	}

	return nil
}
