package usecase

import (
	"context"

	"unimarket/internal/domain/entity"
)

// CreateProductInput defines the data required to create a listing.
type CreateProductInput struct {
	Title       string
	Description string
	Price       float64
	Images      []string
	Category    string
}

// UpdateProductInput carries a partial listing update. Nil fields are left
// untouched.
type UpdateProductInput struct {
	Title       *string
	Description *string
	Price       *float64
	Images      []string
	Category    *string
}

// ListProductsInput narrows a listing query. Zero values mean "no filter".
// Price bounds are applied after the equality fetch.
type ListProductsInput struct {
	SellerID string
	Status   string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// ProductUsecase defines the interface for listing management.
type ProductUsecase interface {
	// CreateProduct stores a new listing and registers its id on the
	// seller's owned set.
	CreateProduct(ctx context.Context, sellerEmail string, input CreateProductInput) (*entity.Product, error)

	// GetProduct fetches one listing by id.
	GetProduct(ctx context.Context, id string) (*entity.Product, error)

	// ListProducts returns listings matching the filter. An empty result
	// is a valid answer, not an error.
	ListProducts(ctx context.Context, input ListProductsInput) ([]*entity.Product, error)

	// UpdateProduct applies a partial update. Only the owner may update.
	UpdateProduct(ctx context.Context, sellerEmail, id string, input UpdateProductInput) (*entity.Product, error)

	// ChangeStatus flips a listing between available and sold and notifies
	// the seller about the change.
	ChangeStatus(ctx context.Context, sellerEmail, id string, status entity.ProductStatus) error

	// DeleteProduct removes a listing and unregisters it from the seller's
	// set. Deleting an absent listing succeeds.
	DeleteProduct(ctx context.Context, sellerEmail, id string) error

	// GenerateShareQR renders a PNG QR code for sharing the listing.
	GenerateShareQR(ctx context.Context, id string) ([]byte, error)
}
