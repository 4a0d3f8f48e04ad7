// Package entity contains the core business objects of the project.
package entity

import "time"

// User is an account in the marketplace. The email address doubles as the
// document key; there is no separate surrogate id.
type User struct {
	Email          string         `json:"email"`          // Identity and document key.
	FirstName      string         `json:"firstName"`      //
	LastName       string         `json:"lastName"`       //
	Role           Role           `json:"role"`           // user, seller or admin.
	Products       []string       `json:"products"`       // Ids of owned listings. Set semantics, order irrelevant.
	PaymentDetails map[string]any `json:"paymentDetails"` // Opaque mapping, passed through unmodified.
	Ratings        []Rating       `json:"ratings"`        // Append-only.
	FCMTokens      []string       `json:"fcmTokens"`      // Registered push targets. Set semantics.
	PasswordHash   string         `json:"-"`              // bcrypt hash, never serialized outward.
	CreatedAt      time.Time      `json:"createdAt"`      // Server-assigned.
}

// FullName joins first and last name for display and notification text.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}

	return u.FirstName + " " + u.LastName
}

// OwnsProduct reports whether the given listing id is in the user's set.
func (u *User) OwnsProduct(productID string) bool {
	for _, id := range u.Products {
		if id == productID {
			return true
		}
	}

	return false
}

// Rating is one entry in a seller's append-only rating sequence.
type Rating struct {
	Score      int       `json:"score"`      // Integer in [1,5].
	Comment    string    `json:"comment"`    //
	FromUserID string    `json:"fromUserId"` // The rating author.
	CreatedAt  time.Time `json:"createdAt"`  //
}

// IsValidScore checks the [1,5] integer invariant.
func (r Rating) IsValidScore() bool {
	return r.Score >= 1 && r.Score <= 5
}
