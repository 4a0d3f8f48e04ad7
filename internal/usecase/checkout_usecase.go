package usecase

import "context"

// CheckoutResult summarizes a checkout run. TransactionIDs lists the
// transactions that were fully processed, in cart order; on an aborted run it
// covers only the items completed before the failure.
type CheckoutResult struct {
	TransactionIDs []string
	TotalAmount    float64
}

// CheckoutUsecase turns the buyer's cart into transactions and
// notifications, one line item at a time.
type CheckoutUsecase interface {
	// Checkout processes every cart line item in order: create the
	// transaction, notify the seller, notify the buyer. The first failure
	// aborts the remaining items and leaves the cart untouched; completed
	// items are not rolled back. Only a fully successful run resets the
	// cart.
	Checkout(ctx context.Context, buyerEmail string) (*CheckoutResult, error)
}
