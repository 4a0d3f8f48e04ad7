package service

import (
	"context"
)

// CheckoutEvent is emitted after a fully successful checkout so downstream
// consumers (analytics, fulfillment) can react asynchronously. It is not
// part of the checkout's failure handling; a failed publish never rolls
// anything back.
type CheckoutEvent struct {
	RequestID      string   `json:"request_id,omitempty"` // For distributed tracing
	BuyerID        string   `json:"buyer_id"`
	TransactionIDs []string `json:"transaction_ids"`
	ProductIDs     []string `json:"product_ids"`
	TotalAmount    float64  `json:"total_amount"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishCheckoutEvent publishes a checkout-completed event for async processing
	PublishCheckoutEvent(ctx context.Context, event *CheckoutEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
