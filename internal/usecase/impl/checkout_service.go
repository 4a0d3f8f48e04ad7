package impl

import (
	"context"
	"fmt"
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

// checkoutService implements the CheckoutUsecase interface. It walks the
// cart strictly in order and performs three writes per line item: the
// transaction, the seller's notification, the buyer's notification. There is
// no rollback; the first failure stops the walk and leaves everything
// already written in place.
type checkoutService struct {
	stateSvc        usecase.StateUsecase
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	productRepo     repository.ProductRepository
	notificationSvc usecase.NotificationUsecase
	publisher       service.EventPublisher
	logger          *slog.Logger
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	StateSvc        usecase.StateUsecase
	UserRepo        repository.UserRepository
	TransactionRepo repository.TransactionRepository
	ProductRepo     repository.ProductRepository
	NotificationSvc usecase.NotificationUsecase
	Publisher       service.EventPublisher
	Logger          *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		stateSvc:        params.StateSvc,
		userRepo:        params.UserRepo,
		transactionRepo: params.TransactionRepo,
		productRepo:     params.ProductRepo,
		notificationSvc: params.NotificationSvc,
		publisher:       params.Publisher,
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Checkout processes the buyer's cart one line item at a time.
func (srv *checkoutService) Checkout(ctx context.Context, buyerEmail string) (*usecase.CheckoutResult, error) {
	buyer, err := srv.userRepo.FindByEmail(ctx, buyerEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotLoggedIn
		}

		return nil, errors.Wrap(err, "failed to find buyer")
	}

	state, err := srv.stateSvc.GetState(ctx, buyerEmail)
	if err != nil {
		return nil, err
	}
	if len(state.CartProduct) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}

	result := &usecase.CheckoutResult{}
	for i, item := range state.CartProduct {
		if err := srv.processItem(ctx, buyer, item, result); err != nil {
			// Completed items stay written and the cart is untouched, so
			// the buyer can retry the remainder.
			srv.log(ctx).Error("Checkout aborted",
				slog.String("buyer_id", buyerEmail),
				slog.String("product_id", item.ID),
				slog.Int("completed_items", i),
				slog.Any("error", err),
			)

			return result, domainerrors.ErrCheckoutFailed.WrapMessage(err.Error())
		}
	}

	if _, err := srv.stateSvc.ResetCart(ctx, buyerEmail); err != nil {
		return result, errors.Wrap(err, "failed to reset cart")
	}

	srv.publishCompleted(ctx, buyerEmail, state, result)

	srv.log(ctx).Info("Checkout completed",
		slog.String("buyer_id", buyerEmail),
		slog.Int("item_count", len(result.TransactionIDs)),
		slog.Float64("total_amount", result.TotalAmount),
	)

	return result, nil
}

// processItem performs the per-item write sequence: transaction plus sold
// flip, seller notification, buyer notification.
func (srv *checkoutService) processItem(ctx context.Context, buyer *entity.User, item entity.CartLineItem, result *usecase.CheckoutResult) error {
	txn := &entity.Transaction{
		ID:        uuid.NewString(),
		ProductID: item.ID,
		BuyerID:   buyer.Email,
		SellerID:  item.SellerID,
		Price:     item.Price,
	}

	if err := srv.transactionRepo.Create(ctx, txn); err != nil {
		return errors.Wrap(err, "failed to create transaction")
	}

	if err := srv.productRepo.SetStatus(ctx, item.ID, entity.ProductSold); err != nil {
		return errors.Wrap(err, "failed to mark product as sold")
	}

	title := item.Title
	if title == "" {
		title = item.LegacyName
	}

	if _, err := srv.notificationSvc.Notify(ctx, usecase.NotifyInput{
		UserID:    item.SellerID,
		Type:      entity.NotificationSale,
		Message:   fmt.Sprintf("Your item %q has been purchased by %s", title, buyer.FullName()),
		RelatedID: txn.ID,
	}); err != nil {
		return errors.Wrap(err, "failed to notify seller")
	}

	if _, err := srv.notificationSvc.Notify(ctx, usecase.NotifyInput{
		UserID:    buyer.Email,
		Type:      entity.NotificationPurchase,
		Message:   fmt.Sprintf("You have purchased %q. The seller will contact you soon.", title),
		RelatedID: txn.ID,
	}); err != nil {
		return errors.Wrap(err, "failed to notify buyer")
	}

	result.TransactionIDs = append(result.TransactionIDs, txn.ID)
	result.TotalAmount += item.Price * float64(item.Quantity)

	return nil
}

// publishCompleted emits the checkout event for downstream consumers. A
// failed publish is logged and swallowed.
func (srv *checkoutService) publishCompleted(ctx context.Context, buyerEmail string, state *entity.StoredState, result *usecase.CheckoutResult) {
	productIDs := make([]string, 0, len(state.CartProduct))
	for _, item := range state.CartProduct {
		productIDs = append(productIDs, item.ID)
	}

	event := &service.CheckoutEvent{
		RequestID:      deliverycontext.GetRequestIDFromContext(ctx),
		BuyerID:        buyerEmail,
		TransactionIDs: result.TransactionIDs,
		ProductIDs:     productIDs,
		TotalAmount:    result.TotalAmount,
	}

	if err := srv.publisher.PublishCheckoutEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish checkout event",
			slog.String("buyer_id", buyerEmail),
			slog.Any("error", err),
		)
	}
}
