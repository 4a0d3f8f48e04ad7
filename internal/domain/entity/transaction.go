// Package entity contains the core business objects of the project.
package entity

import "time"

// TransactionStatus represents the lifecycle state of a purchase transaction.
type TransactionStatus string

const (
	// TransactionPending is the initial state assigned at checkout.
	TransactionPending TransactionStatus = "pending"
	// TransactionCompleted marks a finished hand-over.
	TransactionCompleted TransactionStatus = "completed"
	// TransactionCancelled marks an abandoned purchase.
	TransactionCancelled TransactionStatus = "cancelled"
)

// String returns the string representation of the TransactionStatus.
func (s TransactionStatus) String() string {
	return string(s)
}

// IsValid checks if the TransactionStatus is a valid value.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionPending, TransactionCompleted, TransactionCancelled:
		return true
	default:
		return false
	}
}

// Transaction records one purchase of one product. Price is copied from the
// listing at purchase time and never changes afterwards. Creating a
// transaction is always paired with flipping the product to sold; the two
// writes hit separate collections and are not atomic against each other.
type Transaction struct {
	ID        string            `json:"_id"`       // Document key.
	ProductID string            `json:"productId"` // The purchased listing.
	BuyerID   string            `json:"buyerId"`   // Purchasing user.
	SellerID  string            `json:"sellerId"`  // Listing owner.
	Price     float64           `json:"price"`     // Copied at purchase time, immutable.
	Status    TransactionStatus `json:"status"`    // pending, completed or cancelled.
	CreatedAt time.Time         `json:"createdAt"` // Server-assigned.
}
