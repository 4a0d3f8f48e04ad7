// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"unimarket/internal/domain/entity"
)

// ErrNotificationNotFound is returned when a notification is not found.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines the interface for notification persistence.
type NotificationRepository interface {
	// Create persists a new notification. The store assigns CreatedAt and
	// defaults Read to false.
	Create(ctx context.Context, notification *entity.Notification) error

	// FindByUser returns the user's notifications, newest first.
	FindByUser(ctx context.Context, userID string) ([]*entity.Notification, error)

	// MarkRead transitions the read flag false -> true. The reverse
	// transition does not exist.
	MarkRead(ctx context.Context, id string) error
}
