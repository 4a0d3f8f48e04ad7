// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"unimarket/internal/domain/entity"
)

// ErrTransactionNotFound is returned when a transaction is not found.
var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionRole selects which side of a transaction a user query matches.
type TransactionRole string

const (
	// TransactionRoleBuyer matches the buyerId field.
	TransactionRoleBuyer TransactionRole = "buyer"
	// TransactionRoleSeller matches the sellerId field.
	TransactionRoleSeller TransactionRole = "seller"
)

// TransactionRepository defines the interface for purchase-transaction persistence.
type TransactionRepository interface {
	// Create persists a new transaction. The store assigns CreatedAt;
	// Status defaults to pending when unset.
	Create(ctx context.Context, txn *entity.Transaction) error

	// FindByID retrieves a transaction by its document key.
	// Returns ErrTransactionNotFound on absence.
	FindByID(ctx context.Context, id string) (*entity.Transaction, error)

	// FindByUser returns all transactions where the user appears in the
	// given role. An empty slice is a valid result.
	FindByUser(ctx context.Context, userID string, role TransactionRole) ([]*entity.Transaction, error)

	// UpdateStatus applies a partial update of the status field only.
	UpdateStatus(ctx context.Context, id string, status entity.TransactionStatus) error
}
