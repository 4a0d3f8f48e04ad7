package impl

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"unimarket/internal/domain/entity"
	domainerrors "unimarket/internal/domain/errors"
	mockRepo "unimarket/internal/mocks/repository"
	mockSvc "unimarket/internal/mocks/service"
	"unimarket/internal/usecase"
)

type notificationServiceFixtures struct {
	service          usecase.NotificationUsecase
	notificationRepo *mockRepo.MockNotificationRepository
	userRepo         *mockRepo.MockUserRepository
	pushSvc          *mockSvc.MockPushService
}

func createTestNotificationService(t *testing.T) notificationServiceFixtures {
	t.Helper()
	fx := notificationServiceFixtures{
		notificationRepo: new(mockRepo.MockNotificationRepository),
		userRepo:         new(mockRepo.MockUserRepository),
		pushSvc:          new(mockSvc.MockPushService),
	}
	fx.service = NewNotificationService(NotificationServiceParams{
		NotificationRepo: fx.notificationRepo,
		UserRepo:         fx.userRepo,
		PushSvc:          fx.pushSvc,
		Logger:           slog.Default(),
	})

	return fx
}

func TestNotificationService_Notify_StoresAndPushes(t *testing.T) {
	fx := createTestNotificationService(t)
	ctx := context.Background()

	fx.notificationRepo.On("Create", ctx, mock.AnythingOfType("*entity.Notification")).Return(nil)
	fx.userRepo.On("FindByEmail", ctx, "bob@uni.edu").
		Return(&entity.User{Email: "bob@uni.edu", FCMTokens: []string{"tok-1", "tok-2"}}, nil)
	fx.pushSvc.On("SendBatchNotification", ctx, []string{"tok-1", "tok-2"}, "You made a sale",
		"Your item was purchased", mock.Anything).
		Return(2, 0, nil, nil)

	notification, err := fx.service.Notify(ctx, usecase.NotifyInput{
		UserID:  "bob@uni.edu",
		Type:    entity.NotificationSale,
		Message: "Your item was purchased",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, notification.ID)
	assert.False(t, notification.Read)
	fx.pushSvc.AssertNumberOfCalls(t, "SendBatchNotification", 1)
}

func TestNotificationService_Notify_PushFailureIsSwallowed(t *testing.T) {
	fx := createTestNotificationService(t)
	ctx := context.Background()

	fx.notificationRepo.On("Create", ctx, mock.Anything).Return(nil)
	fx.userRepo.On("FindByEmail", ctx, "bob@uni.edu").
		Return(&entity.User{Email: "bob@uni.edu", FCMTokens: []string{"tok-1"}}, nil)
	fx.pushSvc.On("SendBatchNotification", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(0, 0, nil, assert.AnError)

	_, err := fx.service.Notify(ctx, usecase.NotifyInput{
		UserID:  "bob@uni.edu",
		Type:    entity.NotificationSale,
		Message: "Your item was purchased",
	})
	assert.NoError(t, err)
}

func TestNotificationService_Notify_NoDevicesNoPush(t *testing.T) {
	fx := createTestNotificationService(t)
	ctx := context.Background()

	fx.notificationRepo.On("Create", ctx, mock.Anything).Return(nil)
	fx.userRepo.On("FindByEmail", ctx, "bob@uni.edu").
		Return(&entity.User{Email: "bob@uni.edu"}, nil)

	_, err := fx.service.Notify(ctx, usecase.NotifyInput{
		UserID:  "bob@uni.edu",
		Type:    entity.NotificationPurchase,
		Message: "You have purchased",
	})
	require.NoError(t, err)

	fx.pushSvc.AssertNotCalled(t, "SendBatchNotification",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotificationService_Notify_InvalidType(t *testing.T) {
	fx := createTestNotificationService(t)

	_, err := fx.service.Notify(context.Background(), usecase.NotifyInput{
		UserID: "bob@uni.edu",
		Type:   "spam",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestNotificationService_MarkRead_OwnershipEnforced(t *testing.T) {
	fx := createTestNotificationService(t)
	ctx := context.Background()

	fx.notificationRepo.On("FindByUser", ctx, "alice@uni.edu").
		Return([]*entity.Notification{{ID: "n-1", UserID: "alice@uni.edu"}}, nil)
	fx.notificationRepo.On("MarkRead", ctx, "n-1").Return(nil)

	require.NoError(t, fx.service.MarkRead(ctx, "alice@uni.edu", "n-1"))

	// A notification belonging to someone else looks absent to the caller.
	err := fx.service.MarkRead(ctx, "alice@uni.edu", "someone-elses")
	assert.ErrorIs(t, err, domainerrors.ErrNotificationNotFound)
}

func TestNotificationService_ListNotifications(t *testing.T) {
	fx := createTestNotificationService(t)
	ctx := context.Background()

	feed := []*entity.Notification{
		{ID: "n-2", Message: "newer"},
		{ID: "n-1", Message: "older"},
	}
	fx.notificationRepo.On("FindByUser", ctx, "alice@uni.edu").Return(feed, nil)

	got, err := fx.service.ListNotifications(ctx, "alice@uni.edu")
	require.NoError(t, err)
	assert.Equal(t, feed, got)
}
