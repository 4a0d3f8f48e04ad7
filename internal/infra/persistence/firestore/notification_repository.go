package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
)

// notificationRepository implements repository.NotificationRepository on the
// Notifications collection.
type notificationRepository struct {
	client *firestore.Client
}

// NewNotificationRepository is the constructor for notificationRepository.
func NewNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &notificationRepository{client: client}
}

// Create persists a new notification. Read always starts false.
func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	doc := map[string]any{
		"userId":    notification.UserID,
		"type":      notification.Type.String(),
		"message":   notification.Message,
		"read":      false,
		"createdAt": firestore.ServerTimestamp,
	}
	if notification.RelatedID != "" {
		doc["relatedId"] = notification.RelatedID
	}

	if _, err := r.client.Collection(notificationsCollection).Doc(notification.ID).Set(ctx, doc); err != nil {
		return errors.Wrap(err, "failed to create notification")
	}

	return nil
}

// FindByUser returns the user's notifications, newest first.
func (r *notificationRepository) FindByUser(ctx context.Context, userID string) ([]*entity.Notification, error) {
	snaps, err := r.client.Collection(notificationsCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	notifications := make([]*entity.Notification, 0, len(snaps))
	for _, snap := range snaps {
		data := snap.Data()
		notifications = append(notifications, &entity.Notification{
			ID:        snap.Ref.ID,
			UserID:    docString(data, "userId"),
			Type:      entity.NotificationType(docString(data, "type")),
			Message:   docString(data, "message"),
			RelatedID: docString(data, "relatedId"),
			Read:      docBool(data, "read"),
			CreatedAt: docTime(data, "createdAt"),
		})
	}

	return notifications, nil
}

// MarkRead transitions the read flag false -> true.
func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	updates := []firestore.Update{{Path: "read", Value: true}}
	if _, err := r.client.Collection(notificationsCollection).Doc(id).Update(ctx, updates); err != nil {
		if isNotFound(err) {
			return repository.ErrNotificationNotFound
		}

		return errors.Wrap(err, "failed to mark notification as read")
	}

	return nil
}
