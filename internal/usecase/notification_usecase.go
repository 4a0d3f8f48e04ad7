package usecase

import (
	"context"

	"unimarket/internal/domain/entity"
)

// NotifyInput defines the data for creating a notification.
type NotifyInput struct {
	UserID    string
	Type      entity.NotificationType
	Message   string
	RelatedID string
}

// NotificationUsecase manages the per-user notification feed.
type NotificationUsecase interface {
	// Notify stores a notification and pushes it to the recipient's
	// registered devices. Push delivery is best effort; a push failure
	// never fails the call.
	Notify(ctx context.Context, input NotifyInput) (*entity.Notification, error)

	// ListNotifications returns the user's feed, newest first.
	ListNotifications(ctx context.Context, userEmail string) ([]*entity.Notification, error)

	// MarkRead flips a notification's read flag to true. Only the
	// recipient may do so.
	MarkRead(ctx context.Context, userEmail, id string) error
}
