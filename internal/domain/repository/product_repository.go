// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"unimarket/internal/domain/entity"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter is a conjunction of equality predicates for listing products.
// Zero-valued fields are not applied. Range predicates (price) are deliberately
// absent; the usecase filters price in memory after the equality fetch.
type ProductFilter struct {
	SellerID string
	Status   entity.ProductStatus
	Category string
}

// ProductPatch carries a partial-field update. Nil fields are left untouched
// in the stored document; a patch is never a full-document replace.
type ProductPatch struct {
	Title       *string
	Description *string
	Price       *float64
	Images      *[]string
	Category    *string
	Status      *entity.ProductStatus
}

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its document key.
	// Returns ErrProductNotFound on absence; transport failures are wrapped.
	FindByID(ctx context.Context, id string) (*entity.Product, error)

	// List returns all products matching the filter's equality clauses.
	// An empty slice is a valid, non-error result.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)

	// Create persists a new product document. The store assigns CreatedAt;
	// Status defaults to available when unset.
	Create(ctx context.Context, product *entity.Product) error

	// Update applies a partial-field merge to an existing document.
	Update(ctx context.Context, id string, patch ProductPatch) error

	// SetStatus flips the listing's sale status.
	SetStatus(ctx context.Context, id string, status entity.ProductStatus) error

	// Delete permanently removes the document. Deleting a non-existent id
	// is treated as success.
	Delete(ctx context.Context, id string) error
}
