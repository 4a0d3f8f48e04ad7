package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
)

// transactionRepository implements repository.TransactionRepository on the
// Transactions collection.
type transactionRepository struct {
	client *firestore.Client
}

// NewTransactionRepository is the constructor for transactionRepository.
func NewTransactionRepository(client *firestore.Client) repository.TransactionRepository {
	return &transactionRepository{client: client}
}

// Create persists a new transaction document. The store assigns the
// timestamp; status defaults to pending when unset.
func (r *transactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	status := txn.Status
	if status == "" {
		status = entity.TransactionPending
	}

	doc := map[string]any{
		"productId": txn.ProductID,
		"buyerId":   txn.BuyerID,
		"sellerId":  txn.SellerID,
		"price":     txn.Price,
		"status":    status.String(),
		"createdAt": firestore.ServerTimestamp,
	}

	if _, err := r.client.Collection(transactionsCollection).Doc(txn.ID).Set(ctx, doc); err != nil {
		return errors.Wrap(err, "failed to create transaction")
	}

	return nil
}

// FindByID retrieves a transaction by its document key.
func (r *transactionRepository) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	snap, err := r.client.Collection(transactionsCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrTransactionNotFound
		}

		return nil, errors.Wrap(err, "failed to get transaction")
	}

	return decodeTransaction(snap.Ref.ID, snap.Data()), nil
}

// FindByUser returns all transactions where the user appears in the given role.
func (r *transactionRepository) FindByUser(ctx context.Context, userID string, role repository.TransactionRole) ([]*entity.Transaction, error) {
	field := "buyerId"
	if role == repository.TransactionRoleSeller {
		field = "sellerId"
	}

	snaps, err := r.client.Collection(transactionsCollection).
		Where(field, "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	txns := make([]*entity.Transaction, 0, len(snaps))
	for _, snap := range snaps {
		txns = append(txns, decodeTransaction(snap.Ref.ID, snap.Data()))
	}

	return txns, nil
}

// UpdateStatus applies a partial update of the status field only.
func (r *transactionRepository) UpdateStatus(ctx context.Context, id string, status entity.TransactionStatus) error {
	updates := []firestore.Update{{Path: "status", Value: status.String()}}
	if _, err := r.client.Collection(transactionsCollection).Doc(id).Update(ctx, updates); err != nil {
		if isNotFound(err) {
			return repository.ErrTransactionNotFound
		}

		return errors.Wrap(err, "failed to update transaction status")
	}

	return nil
}

func decodeTransaction(id string, data map[string]any) *entity.Transaction {
	return &entity.Transaction{
		ID:        id,
		ProductID: docString(data, "productId"),
		BuyerID:   docString(data, "buyerId"),
		SellerID:  docString(data, "sellerId"),
		Price:     docFloat(data, "price"),
		Status:    entity.TransactionStatus(docString(data, "status")),
		CreatedAt: docTime(data, "createdAt"),
	}
}
