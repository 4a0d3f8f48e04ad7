package impl

import (
	"context"
	"log/slog"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"unimarket/internal/domain/entity"
	domainerrors "unimarket/internal/domain/errors"
	"unimarket/internal/domain/repository"
	mockRepo "unimarket/internal/mocks/repository"
	mockSvc "unimarket/internal/mocks/service"
	mockUC "unimarket/internal/mocks/usecase"
	"unimarket/internal/usecase"
)

type checkoutServiceFixtures struct {
	service         usecase.CheckoutUsecase
	stateSvc        *mockUC.MockStateUsecase
	userRepo        *mockRepo.MockUserRepository
	transactionRepo *mockRepo.MockTransactionRepository
	productRepo     *mockRepo.MockProductRepository
	notificationSvc *mockUC.MockNotificationUsecase
	publisher       *mockSvc.MockEventPublisher
}

func createTestCheckoutService(t *testing.T) checkoutServiceFixtures {
	t.Helper()
	fx := checkoutServiceFixtures{
		stateSvc:        new(mockUC.MockStateUsecase),
		userRepo:        new(mockRepo.MockUserRepository),
		transactionRepo: new(mockRepo.MockTransactionRepository),
		productRepo:     new(mockRepo.MockProductRepository),
		notificationSvc: new(mockUC.MockNotificationUsecase),
		publisher:       new(mockSvc.MockEventPublisher),
	}
	fx.service = NewCheckoutService(CheckoutServiceParams{
		StateSvc:        fx.stateSvc,
		UserRepo:        fx.userRepo,
		TransactionRepo: fx.transactionRepo,
		ProductRepo:     fx.productRepo,
		NotificationSvc: fx.notificationSvc,
		Publisher:       fx.publisher,
		Logger:          slog.Default(),
	})

	return fx
}

func cartWith(items ...entity.CartLineItem) *entity.StoredState {
	return &entity.StoredState{CartProduct: items}
}

func lineItem(id, title string, price float64, qty int, seller string) entity.CartLineItem {
	return entity.CartLineItem{
		Product: entity.Product{
			ID:       id,
			Title:    title,
			Price:    price,
			SellerID: seller,
			Status:   entity.ProductAvailable,
		},
		Quantity: qty,
	}
}

var buyer = &entity.User{
	Email:     "alice@uni.edu",
	FirstName: "Alice",
	LastName:  "Nguyen",
	Role:      entity.RoleUser,
}

func TestCheckoutService_HappyPath(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	state := cartWith(
		lineItem("prod-1", "Calculus Textbook", 25, 2, "bob@uni.edu"),
		lineItem("prod-2", "Desk Lamp", 10, 1, "carol@uni.edu"),
	)

	fx.userRepo.On("FindByEmail", ctx, buyer.Email).Return(buyer, nil)
	fx.stateSvc.On("GetState", ctx, buyer.Email).Return(state, nil)
	fx.transactionRepo.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).Return(nil)
	fx.productRepo.On("SetStatus", ctx, mock.AnythingOfType("string"), entity.ProductSold).Return(nil)

	var notifications []usecase.NotifyInput
	fx.notificationSvc.On("Notify", ctx, mock.AnythingOfType("usecase.NotifyInput")).
		Run(func(args mock.Arguments) {
			notifications = append(notifications, args.Get(1).(usecase.NotifyInput))
		}).
		Return(&entity.Notification{}, nil)

	fx.stateSvc.On("ResetCart", ctx, buyer.Email).Return(&entity.StoredState{}, nil)
	fx.publisher.On("PublishCheckoutEvent", ctx, mock.Anything).Return(nil)

	result, err := fx.service.Checkout(ctx, buyer.Email)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Len(t, result.TransactionIDs, 2)
	assert.InDelta(t, 25*2+10, result.TotalAmount, 0.001)

	// Two notifications per item: seller first, then buyer.
	require.Len(t, notifications, 4)
	assert.Equal(t, "bob@uni.edu", notifications[0].UserID)
	assert.Equal(t, entity.NotificationSale, notifications[0].Type)
	assert.Equal(t, `Your item "Calculus Textbook" has been purchased by Alice Nguyen`, notifications[0].Message)
	assert.Equal(t, buyer.Email, notifications[1].UserID)
	assert.Equal(t, entity.NotificationPurchase, notifications[1].Type)
	assert.Equal(t, `You have purchased "Calculus Textbook". The seller will contact you soon.`, notifications[1].Message)
	assert.Equal(t, "carol@uni.edu", notifications[2].UserID)
	assert.Equal(t, buyer.Email, notifications[3].UserID)

	fx.transactionRepo.AssertNumberOfCalls(t, "Create", 2)
	fx.productRepo.AssertNumberOfCalls(t, "SetStatus", 2)
	fx.stateSvc.AssertCalled(t, "ResetCart", ctx, buyer.Email)
	fx.publisher.AssertNumberOfCalls(t, "PublishCheckoutEvent", 1)
}

func TestCheckoutService_EmptyCart(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, buyer.Email).Return(buyer, nil)
	fx.stateSvc.On("GetState", ctx, buyer.Email).Return(&entity.StoredState{}, nil)

	_, err := fx.service.Checkout(ctx, buyer.Email)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)

	fx.transactionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	fx.stateSvc.AssertNotCalled(t, "ResetCart", mock.Anything, mock.Anything)
}

func TestCheckoutService_UnknownBuyer(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "ghost@uni.edu").
		Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Checkout(ctx, "ghost@uni.edu")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotLoggedIn)
}

func TestCheckoutService_AbortsOnFailureWithoutReset(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	state := cartWith(
		lineItem("prod-1", "Calculus Textbook", 25, 1, "bob@uni.edu"),
		lineItem("prod-2", "Desk Lamp", 10, 1, "carol@uni.edu"),
		lineItem("prod-3", "Bike", 80, 1, "dave@uni.edu"),
	)

	fx.userRepo.On("FindByEmail", ctx, buyer.Email).Return(buyer, nil)
	fx.stateSvc.On("GetState", ctx, buyer.Email).Return(state, nil)

	// The first item succeeds end to end; the second fails at transaction
	// creation, so the third is never attempted.
	fx.transactionRepo.On("Create", ctx, mock.MatchedBy(func(txn *entity.Transaction) bool {
		return txn.ProductID == "prod-1"
	})).Return(nil)
	fx.transactionRepo.On("Create", ctx, mock.MatchedBy(func(txn *entity.Transaction) bool {
		return txn.ProductID == "prod-2"
	})).Return(errors.New("write failed"))

	fx.productRepo.On("SetStatus", ctx, "prod-1", entity.ProductSold).Return(nil)
	fx.notificationSvc.On("Notify", ctx, mock.AnythingOfType("usecase.NotifyInput")).
		Return(&entity.Notification{}, nil)

	result, err := fx.service.Checkout(ctx, buyer.Email)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCheckoutFailed)

	// The first item's writes stay in place.
	require.NotNil(t, result)
	assert.Len(t, result.TransactionIDs, 1)

	fx.transactionRepo.AssertNumberOfCalls(t, "Create", 2)
	fx.notificationSvc.AssertNumberOfCalls(t, "Notify", 2)
	fx.stateSvc.AssertNotCalled(t, "ResetCart", mock.Anything, mock.Anything)
	fx.publisher.AssertNotCalled(t, "PublishCheckoutEvent", mock.Anything, mock.Anything)
}

func TestCheckoutService_PublishFailureDoesNotFailCheckout(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	state := cartWith(lineItem("prod-1", "Calculus Textbook", 25, 1, "bob@uni.edu"))

	fx.userRepo.On("FindByEmail", ctx, buyer.Email).Return(buyer, nil)
	fx.stateSvc.On("GetState", ctx, buyer.Email).Return(state, nil)
	fx.transactionRepo.On("Create", ctx, mock.Anything).Return(nil)
	fx.productRepo.On("SetStatus", ctx, "prod-1", entity.ProductSold).Return(nil)
	fx.notificationSvc.On("Notify", ctx, mock.Anything).Return(&entity.Notification{}, nil)
	fx.stateSvc.On("ResetCart", ctx, buyer.Email).Return(&entity.StoredState{}, nil)
	fx.publisher.On("PublishCheckoutEvent", ctx, mock.Anything).Return(errors.New("broker down"))

	result, err := fx.service.Checkout(ctx, buyer.Email)
	require.NoError(t, err)
	assert.Len(t, result.TransactionIDs, 1)
}
