package impl

import (
	"context"
	"log/slog"

	deliverycontext "unimarket/internal/delivery/context"
	"unimarket/internal/domain/entity"
	domainerrors "unimarket/internal/domain/errors"
	"unimarket/internal/domain/repository"
	"unimarket/internal/domain/service"
	"unimarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// notificationTitles maps each notification type to its push title.
var notificationTitles = map[entity.NotificationType]string{
	entity.NotificationPurchase:     "Purchase confirmed",
	entity.NotificationSale:         "You made a sale",
	entity.NotificationRating:       "New rating",
	entity.NotificationStatusChange: "Listing updated",
}

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	pushSvc          service.PushService
	logger           *slog.Logger
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	NotificationRepo repository.NotificationRepository
	UserRepo         repository.UserRepository
	PushSvc          service.PushService `optional:"true"`
	Logger           *slog.Logger
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		notificationRepo: params.NotificationRepo,
		userRepo:         params.UserRepo,
		pushSvc:          params.PushSvc,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Notify stores a notification and pushes it to the recipient's devices.
func (srv *notificationService) Notify(ctx context.Context, input usecase.NotifyInput) (*entity.Notification, error) {
	if !input.Type.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid notification type")
	}

	notification := &entity.Notification{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		Type:      input.Type,
		Message:   input.Message,
		RelatedID: input.RelatedID,
	}

	if err := srv.notificationRepo.Create(ctx, notification); err != nil {
		return nil, errors.Wrap(err, "failed to store notification")
	}

	srv.pushBestEffort(ctx, notification)

	return notification, nil
}

// pushBestEffort fans the notification out to the recipient's devices.
// Failures are logged and swallowed; the stored notification is the source
// of truth.
func (srv *notificationService) pushBestEffort(ctx context.Context, notification *entity.Notification) {
	if srv.pushSvc == nil {
		return
	}

	user, err := srv.userRepo.FindByEmail(ctx, notification.UserID)
	if err != nil || len(user.FCMTokens) == 0 {
		return
	}

	title := notificationTitles[notification.Type]
	data := map[string]string{
		"notification_id": notification.ID,
		"type":            notification.Type.String(),
	}
	if notification.RelatedID != "" {
		data["related_id"] = notification.RelatedID
	}

	_, failureCount, invalidTokens, err := srv.pushSvc.SendBatchNotification(
		ctx, user.FCMTokens, title, notification.Message, data)
	if err != nil {
		srv.log(ctx).Warn("Push delivery failed",
			slog.String("user_id", notification.UserID),
			slog.Any("error", err),
		)

		return
	}
	if failureCount > 0 {
		srv.log(ctx).Debug("Push delivery partially failed",
			slog.String("user_id", notification.UserID),
			slog.Int("failure_count", failureCount),
			slog.Int("invalid_tokens", len(invalidTokens)),
		)
	}
}

// ListNotifications returns the user's feed, newest first.
func (srv *notificationService) ListNotifications(ctx context.Context, userEmail string) ([]*entity.Notification, error) {
	notifications, err := srv.notificationRepo.FindByUser(ctx, userEmail)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	return notifications, nil
}

// MarkRead flips a notification's read flag to true.
func (srv *notificationService) MarkRead(ctx context.Context, userEmail, id string) error {
	notifications, err := srv.notificationRepo.FindByUser(ctx, userEmail)
	if err != nil {
		return errors.Wrap(err, "failed to verify notification ownership")
	}

	owned := false
	for _, n := range notifications {
		if n.ID == id {
			owned = true

			break
		}
	}
	if !owned {
		return domainerrors.ErrNotificationNotFound
	}

	if err := srv.notificationRepo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return domainerrors.ErrNotificationNotFound
		}

		return errors.Wrap(err, "failed to mark notification as read")
	}

	return nil
}
