// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// ProductStatus represents the sale state of a product listing.
type ProductStatus string

const (
	// ProductAvailable indicates the listing can still be purchased.
	ProductAvailable ProductStatus = "available"
	// ProductSold indicates the listing has been purchased.
	ProductSold ProductStatus = "sold"
)

// String returns the string representation of the ProductStatus.
func (s ProductStatus) String() string {
	return string(s)
}

// IsValid checks if the ProductStatus is a valid value.
// The only legal transitions are available -> sold and the manual
// reversal sold -> available; no other value is ever stored.
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductAvailable, ProductSold:
		return true
	default:
		return false
	}
}

// Product is a marketplace listing owned by a seller.
//
// The entity carries a single canonical Title. The storage layer writes both
// the legacy "name" and "title" document fields and accepts either on read,
// so records created before the schema migration keep working.
type Product struct {
	ID          string        `json:"_id"`         // Document key. Stable, client- or server-generated at creation.
	Title       string        `json:"title"`       // Canonical display title.
	Description string        `json:"description"` // Free-form listing description.
	Price       float64       `json:"price"`       // Non-negative asking price, copied into transactions at purchase time.
	Images      []string      `json:"images"`      // Ordered storage paths. The first entry is the canonical thumbnail.
	Category    string        `json:"category"`    // Optional free-form category label.
	SellerID    string        `json:"sellerId"`    // Identity of the owning user.
	Status      ProductStatus `json:"status"`      // available or sold.
	CreatedAt   time.Time     `json:"createdAt"`   // Server-assigned creation timestamp.

	// LegacyName preserves a divergent "name" field observed on pre-migration
	// documents. Empty for records created by this system.
	LegacyName string `json:"name,omitempty"`
}

// DisplayImage resolves the canonical display image for a product.
// Order matters: the first uploaded image wins, then the legacy path derived
// from the old name field, then the path derived from the title. Records
// created before the multi-image feature rely on the derived-path convention.
// Returns "" when nothing resolves; callers render a placeholder.
func (p *Product) DisplayImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	if p.LegacyName != "" {
		return "/images/products/" + p.LegacyName + ".webp"
	}
	if p.Title != "" {
		return "/images/products/" + p.Title + ".webp"
	}

	return ""
}
