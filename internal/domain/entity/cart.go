// Package entity contains the core business objects of the project.
package entity

// CartLineItem is a product snapshot plus a purchase quantity inside a cart.
// A cart holds at most one line item per distinct product id; repeated adds
// increment Quantity instead of appending a duplicate entry.
type CartLineItem struct {
	Product  `json:",inline"`
	Quantity int `json:"quantity"` // Positive. Defaults to 1 on first add.

	// MainImage is the display path resolved when the item was materialized,
	// kept on the line so the cart renders without re-fetching the product.
	MainImage string `json:"mainImage"`
}

// FavoriteEntry is a product snapshot inside the favorites list.
// Quantity is fixed at 1; the field exists for structural symmetry with
// CartLineItem and carries no meaning.
type FavoriteEntry struct {
	Product   `json:",inline"`
	Quantity  int    `json:"quantity"`
	MainImage string `json:"mainImage"`
}

// StoredState is the full persisted snapshot of one owner's client state:
// cart line items, favorites, and the cached current-user document. It is
// written to the key-value mirror after every mutation and read back once
// when the owner's state is first touched.
type StoredState struct {
	CartProduct     []CartLineItem  `json:"cartProduct"`
	FavoriteProduct []FavoriteEntry `json:"favoriteProduct"`
	CurrentUser     *User           `json:"currentUser,omitempty"`
}

// Clone returns a deep copy so callers can hand state to the UI layer
// without exposing the container's internal slices.
func (s *StoredState) Clone() *StoredState {
	out := &StoredState{
		CartProduct:     make([]CartLineItem, len(s.CartProduct)),
		FavoriteProduct: make([]FavoriteEntry, len(s.FavoriteProduct)),
	}
	copy(out.CartProduct, s.CartProduct)
	copy(out.FavoriteProduct, s.FavoriteProduct)
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		out.CurrentUser = &u
	}

	return out
}
