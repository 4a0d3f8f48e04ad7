// Package repository provides testify doubles for the persistence contracts.
package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
)

// MockProductRepository is a testify double for repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

var _ repository.ProductRepository = (*MockProductRepository)(nil)

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*entity.Product); ok {
		return p, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	args := m.Called(ctx, filter)
	if ps, ok := args.Get(0).([]*entity.Product); ok {
		return ps, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, id string, patch repository.ProductPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}

func (m *MockProductRepository) SetStatus(ctx context.Context, id string, status entity.ProductStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockUserRepository is a testify double for repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) AddProduct(ctx context.Context, email, productID string) error {
	return m.Called(ctx, email, productID).Error(0)
}

func (m *MockUserRepository) RemoveProduct(ctx context.Context, email, productID string) error {
	return m.Called(ctx, email, productID).Error(0)
}

func (m *MockUserRepository) AppendRating(ctx context.Context, email string, rating entity.Rating) error {
	return m.Called(ctx, email, rating).Error(0)
}

func (m *MockUserRepository) AddFCMToken(ctx context.Context, email, token string) error {
	return m.Called(ctx, email, token).Error(0)
}

func (m *MockUserRepository) UpdatePaymentDetails(ctx context.Context, email string, details map[string]any) error {
	return m.Called(ctx, email, details).Error(0)
}

// MockTransactionRepository is a testify double for repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

var _ repository.TransactionRepository = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*entity.Transaction); ok {
		return t, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTransactionRepository) FindByUser(ctx context.Context, userID string, role repository.TransactionRole) ([]*entity.Transaction, error) {
	args := m.Called(ctx, userID, role)
	if ts, ok := args.Get(0).([]*entity.Transaction); ok {
		return ts, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTransactionRepository) UpdateStatus(ctx context.Context, id string, status entity.TransactionStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

// MockNotificationRepository is a testify double for repository.NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

var _ repository.NotificationRepository = (*MockNotificationRepository)(nil)

func (m *MockNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *MockNotificationRepository) FindByUser(ctx context.Context, userID string) ([]*entity.Notification, error) {
	args := m.Called(ctx, userID)
	if ns, ok := args.Get(0).([]*entity.Notification); ok {
		return ns, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockQuestionRepository is a testify double for repository.QuestionRepository.
type MockQuestionRepository struct {
	mock.Mock
}

var _ repository.QuestionRepository = (*MockQuestionRepository)(nil)

func (m *MockQuestionRepository) Create(ctx context.Context, question *entity.Question) error {
	return m.Called(ctx, question).Error(0)
}

func (m *MockQuestionRepository) FindUnanswered(ctx context.Context) ([]*entity.Question, error) {
	args := m.Called(ctx)
	if qs, ok := args.Get(0).([]*entity.Question); ok {
		return qs, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockQuestionRepository) FindByID(ctx context.Context, id string) (*entity.Question, error) {
	args := m.Called(ctx, id)
	if q, ok := args.Get(0).(*entity.Question); ok {
		return q, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockQuestionRepository) Answer(ctx context.Context, id, answer string) error {
	return m.Called(ctx, id, answer).Error(0)
}
