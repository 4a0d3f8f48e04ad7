// Package service provides testify doubles for the domain service contracts.
package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"unimarket/internal/domain/service"
)

// MockPushService is a testify double for service.PushService.
type MockPushService struct {
	mock.Mock
}

var _ service.PushService = (*MockPushService)(nil)

func (m *MockPushService) SendBatchNotification(ctx context.Context, tokens []string, title, body string, data map[string]string) (int, int, []string, error) {
	args := m.Called(ctx, tokens, title, body, data)
	invalid, _ := args.Get(2).([]string)

	return args.Int(0), args.Int(1), invalid, args.Error(3)
}

func (m *MockPushService) SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error {
	return m.Called(ctx, token, title, body, data).Error(0)
}

// MockEventPublisher is a testify double for service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

var _ service.EventPublisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) PublishCheckoutEvent(ctx context.Context, event *service.CheckoutEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// MockQRCodeService is a testify double for service.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

var _ service.QRCodeService = (*MockQRCodeService)(nil)

func (m *MockQRCodeService) GenerateProductQR(productID string) ([]byte, error) {
	args := m.Called(productID)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockQRCodeService) ParseProductQR(qrData string) (string, error) {
	args := m.Called(qrData)

	return args.String(0), args.Error(1)
}

// MockTokenService is a testify double for service.TokenService.
type MockTokenService struct {
	mock.Mock
}

var _ service.TokenService = (*MockTokenService)(nil)

func (m *MockTokenService) GenerateTokens(email string, roles []string) (string, string, error) {
	args := m.Called(email, roles)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if c, ok := args.Get(0).(*service.Claims); ok {
		return c, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if c, ok := args.Get(0).(*service.Claims); ok {
		return c, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) GetRefreshTokenDuration() time.Duration {
	args := m.Called()
	if d, ok := args.Get(0).(time.Duration); ok {
		return d
	}

	return 0
}

// MockFileStore is a testify double for service.FileStore.
type MockFileStore struct {
	mock.Mock
}

var _ service.FileStore = (*MockFileStore)(nil)

func (m *MockFileStore) Write(ctx context.Context, filename, contentType string, r io.Reader) error {
	return m.Called(ctx, filename, contentType, r).Error(0)
}

func (m *MockFileStore) Read(ctx context.Context, filename string) (io.ReadCloser, error) {
	args := m.Called(ctx, filename)
	if rc, ok := args.Get(0).(io.ReadCloser); ok {
		return rc, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockFileStore) Close() error {
	return m.Called().Error(0)
}
