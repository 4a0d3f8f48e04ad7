// Package usecase provides testify doubles for the usecase contracts.
package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/internal/usecase"
)

// MockNotificationUsecase is a testify double for usecase.NotificationUsecase.
type MockNotificationUsecase struct {
	mock.Mock
}

var _ usecase.NotificationUsecase = (*MockNotificationUsecase)(nil)

func (m *MockNotificationUsecase) Notify(ctx context.Context, input usecase.NotifyInput) (*entity.Notification, error) {
	args := m.Called(ctx, input)
	if n, ok := args.Get(0).(*entity.Notification); ok {
		return n, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockNotificationUsecase) ListNotifications(ctx context.Context, userEmail string) ([]*entity.Notification, error) {
	args := m.Called(ctx, userEmail)
	if ns, ok := args.Get(0).([]*entity.Notification); ok {
		return ns, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockNotificationUsecase) MarkRead(ctx context.Context, userEmail, id string) error {
	return m.Called(ctx, userEmail, id).Error(0)
}

// MockStateUsecase is a testify double for usecase.StateUsecase.
type MockStateUsecase struct {
	mock.Mock
}

var _ usecase.StateUsecase = (*MockStateUsecase)(nil)

func (m *MockStateUsecase) state(args mock.Arguments) (*entity.StoredState, error) {
	if s, ok := args.Get(0).(*entity.StoredState); ok {
		return s, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockStateUsecase) GetState(ctx context.Context, ownerID string) (*entity.StoredState, error) {
	return m.state(m.Called(ctx, ownerID))
}

func (m *MockStateUsecase) AddToCart(ctx context.Context, ownerID, productID string) (*entity.StoredState, error) {
	return m.state(m.Called(ctx, ownerID, productID))
}

func (m *MockStateUsecase) DecreaseQuantity(ctx context.Context, ownerID, productID string) (*entity.StoredState, error) {
	return m.state(m.Called(ctx, ownerID, productID))
}

func (m *MockStateUsecase) RemoveFromCart(ctx context.Context, ownerID, productID string) (*entity.StoredState, error) {
	return m.state(m.Called(ctx, ownerID, productID))
}

func (m *MockStateUsecase) ResetCart(ctx context.Context, ownerID string) (*entity.StoredState, error) {
	return m.state(m.Called(ctx, ownerID))
}

func (m *MockStateUsecase) ToggleFavorite(ctx context.Context, ownerID, productID string) (*entity.StoredState, error) {
	return m.state(m.Called(ctx, ownerID, productID))
}

func (m *MockStateUsecase) RemoveFromFavorite(ctx context.Context, ownerID, productID string) (*entity.StoredState, error) {
	return m.state(m.Called(ctx, ownerID, productID))
}

func (m *MockStateUsecase) ResetFavorite(ctx context.Context, ownerID string) (*entity.StoredState, error) {
	return m.state(m.Called(ctx, ownerID))
}

func (m *MockStateUsecase) RefreshUser(ctx context.Context, ownerID string) (*entity.User, error) {
	args := m.Called(ctx, ownerID)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockStateMirror is a testify double for repository.StateMirror.
type MockStateMirror struct {
	mock.Mock
}

var _ repository.StateMirror = (*MockStateMirror)(nil)

func (m *MockStateMirror) Load(ctx context.Context, ownerID string) (*entity.StoredState, error) {
	args := m.Called(ctx, ownerID)
	if s, ok := args.Get(0).(*entity.StoredState); ok {
		return s, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockStateMirror) Save(ctx context.Context, ownerID string, state *entity.StoredState) error {
	return m.Called(ctx, ownerID, state).Error(0)
}

func (m *MockStateMirror) Close() error {
	return m.Called().Error(0)
}
