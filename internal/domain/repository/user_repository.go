// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"unimarket/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// User documents are keyed by email address; there is no surrogate id.
type UserRepository interface {
	// FindByEmail retrieves a single user by their email address.
	// Returns ErrUserNotFound on absence.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user document under the email key.
	Create(ctx context.Context, user *entity.User) error

	// AddProduct inserts a listing id into the user's owned set.
	// Adding an id that is already present is a no-op.
	AddProduct(ctx context.Context, email, productID string) error

	// RemoveProduct removes a listing id from the user's owned set.
	RemoveProduct(ctx context.Context, email, productID string) error

	// AppendRating appends one entry to the user's append-only rating
	// sequence.
	AppendRating(ctx context.Context, email string, rating entity.Rating) error

	// AddFCMToken registers a push token on the user document.
	// Registering an existing token is a no-op.
	AddFCMToken(ctx context.Context, email, token string) error

	// UpdatePaymentDetails merges the given keys into the user's opaque
	// payment mapping without touching other document fields.
	UpdatePaymentDetails(ctx context.Context, email string, details map[string]any) error
}
