package usecase

import (
	"context"

	"unimarket/internal/domain/entity"
)

// StateUsecase manages one owner's cart, favorites and cached user document.
// All mutations persist the full snapshot before returning.
type StateUsecase interface {
	// GetState returns a copy of the owner's current snapshot, rehydrating
	// it from the mirror on first touch.
	GetState(ctx context.Context, ownerID string) (*entity.StoredState, error)

	// AddToCart puts the product in the cart with quantity 1, or increments
	// the quantity when the product is already there.
	AddToCart(ctx context.Context, ownerID, productID string) (*entity.StoredState, error)

	// DecreaseQuantity lowers a line item's quantity by one but never below
	// one. Absent products are a no-op.
	DecreaseQuantity(ctx context.Context, ownerID, productID string) (*entity.StoredState, error)

	// RemoveFromCart drops the line item entirely.
	RemoveFromCart(ctx context.Context, ownerID, productID string) (*entity.StoredState, error)

	// ResetCart empties the cart.
	ResetCart(ctx context.Context, ownerID string) (*entity.StoredState, error)

	// ToggleFavorite adds the product to favorites, or removes it when it
	// is already favorited.
	ToggleFavorite(ctx context.Context, ownerID, productID string) (*entity.StoredState, error)

	// RemoveFromFavorite drops the favorite entry.
	RemoveFromFavorite(ctx context.Context, ownerID, productID string) (*entity.StoredState, error)

	// ResetFavorite empties the favorites list.
	ResetFavorite(ctx context.Context, ownerID string) (*entity.StoredState, error)

	// RefreshUser re-fetches the owner's account document into the cached
	// currentUser slot. Fetch failures clear the slot instead of
	// propagating.
	RefreshUser(ctx context.Context, ownerID string) (*entity.User, error)
}
