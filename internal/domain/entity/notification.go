// Package entity contains the core business objects of the project.
package entity

import "time"

// NotificationType classifies what a notification is about.
type NotificationType string

const (
	// NotificationPurchase is addressed to a buyer after checkout.
	NotificationPurchase NotificationType = "purchase"
	// NotificationSale is addressed to a seller after checkout.
	NotificationSale NotificationType = "sale"
	// NotificationRating is addressed to a seller when they receive a rating.
	NotificationRating NotificationType = "rating"
	// NotificationStatusChange is addressed to a seller when a listing's
	// status is flipped.
	NotificationStatusChange NotificationType = "status-change"
)

// String returns the string representation of the NotificationType.
func (t NotificationType) String() string {
	return string(t)
}

// IsValid checks if the NotificationType is a valid value.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationPurchase, NotificationSale, NotificationRating, NotificationStatusChange:
		return true
	default:
		return false
	}
}

// Notification is a message addressed to one user. Read only ever transitions
// false -> true, never back.
type Notification struct {
	ID        string           `json:"_id"`                 // Document key.
	UserID    string           `json:"userId"`              // Recipient.
	Type      NotificationType `json:"type"`                // purchase, sale, rating or status-change.
	Message   string           `json:"message"`             // Free text shown to the recipient.
	RelatedID string           `json:"relatedId,omitempty"` // Optional back-reference to a transaction or rating.
	Read      bool             `json:"read"`                // Defaults to false at creation.
	CreatedAt time.Time        `json:"createdAt"`           // Server-assigned.
}
