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

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo     repository.ProductRepository
	userRepo        repository.UserRepository
	notificationSvc usecase.NotificationUsecase
	qrSvc           service.QRCodeService
	logger          *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo     repository.ProductRepository
	UserRepo        repository.UserRepository
	NotificationSvc usecase.NotificationUsecase
	QRSvc           service.QRCodeService
	Logger          *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo:     params.ProductRepo,
		userRepo:        params.UserRepo,
		notificationSvc: params.NotificationSvc,
		qrSvc:           params.QRSvc,
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProduct stores a new listing and registers it on the seller's set.
func (srv *productService) CreateProduct(ctx context.Context, sellerEmail string, input usecase.CreateProductInput) (*entity.Product, error) {
	if input.Title == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("title is required")
	}
	if input.Price < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
	}

	product := &entity.Product{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Images:      input.Images,
		Category:    input.Category,
		SellerID:    sellerEmail,
		Status:      entity.ProductAvailable,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	if err := srv.userRepo.AddProduct(ctx, sellerEmail, product.ID); err != nil {
		// The listing exists either way; the seller's set is eventually
		// repairable, so surface the failure but keep the listing.
		srv.log(ctx).Error("Failed to register product on seller",
			slog.String("product_id", product.ID),
			slog.String("seller_id", sellerEmail),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "failed to register product on seller")
	}

	srv.log(ctx).Info("Product created",
		slog.String("product_id", product.ID),
		slog.String("seller_id", sellerEmail),
	)

	return product, nil
}

// GetProduct fetches one listing by id.
func (srv *productService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to fetch product")
	}

	return product, nil
}

// ListProducts returns listings matching the filter. Equality clauses run in
// the store; price bounds are applied here afterwards.
func (srv *productService) ListProducts(ctx context.Context, input usecase.ListProductsInput) ([]*entity.Product, error) {
	filter := repository.ProductFilter{
		SellerID: input.SellerID,
		Status:   entity.ProductStatus(input.Status),
		Category: input.Category,
	}
	if input.Status != "" && !filter.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("invalid status: %s", input.Status))
	}

	products, err := srv.productRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	if input.MinPrice == nil && input.MaxPrice == nil {
		return products, nil
	}

	filtered := make([]*entity.Product, 0, len(products))
	for _, product := range products {
		if input.MinPrice != nil && product.Price < *input.MinPrice {
			continue
		}
		if input.MaxPrice != nil && product.Price > *input.MaxPrice {
			continue
		}
		filtered = append(filtered, product)
	}

	return filtered, nil
}

// UpdateProduct applies a partial update after verifying ownership.
func (srv *productService) UpdateProduct(ctx context.Context, sellerEmail, id string, input usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := srv.ownedProduct(ctx, sellerEmail, id)
	if err != nil {
		return nil, err
	}

	if input.Price != nil && *input.Price < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
	}

	patch := repository.ProductPatch{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
	}
	if input.Images != nil {
		patch.Images = &input.Images
	}

	if err := srv.productRepo.Update(ctx, id, patch); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	if input.Title != nil {
		product.Title = *input.Title
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.Category != nil {
		product.Category = *input.Category
	}

	return product, nil
}

// ChangeStatus flips a listing's sale status and notifies the seller.
func (srv *productService) ChangeStatus(ctx context.Context, sellerEmail, id string, status entity.ProductStatus) error {
	if !status.IsValid() {
		return domainerrors.ErrInvalidProductStatus
	}

	product, err := srv.ownedProduct(ctx, sellerEmail, id)
	if err != nil {
		return err
	}

	if err := srv.productRepo.SetStatus(ctx, id, status); err != nil {
		return errors.Wrap(err, "failed to change product status")
	}

	if _, err := srv.notificationSvc.Notify(ctx, usecase.NotifyInput{
		UserID:    sellerEmail,
		Type:      entity.NotificationStatusChange,
		Message:   fmt.Sprintf("Your listing %q is now %s", product.Title, status),
		RelatedID: id,
	}); err != nil {
		srv.log(ctx).Warn("Failed to notify seller about status change",
			slog.String("product_id", id),
			slog.Any("error", err),
		)
	}

	return nil
}

// DeleteProduct removes a listing. Deleting an absent listing succeeds, but
// an existing listing must belong to the caller.
func (srv *productService) DeleteProduct(ctx context.Context, sellerEmail, id string) error {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to fetch product")
	}
	if product.SellerID != sellerEmail {
		return domainerrors.ErrProductOwnership
	}

	if err := srv.productRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	if err := srv.userRepo.RemoveProduct(ctx, sellerEmail, id); err != nil {
		srv.log(ctx).Warn("Failed to unregister product from seller",
			slog.String("product_id", id),
			slog.String("seller_id", sellerEmail),
			slog.Any("error", err),
		)
	}

	return nil
}

// GenerateShareQR renders a PNG QR code for sharing the listing.
func (srv *productService) GenerateShareQR(ctx context.Context, id string) ([]byte, error) {
	if _, err := srv.GetProduct(ctx, id); err != nil {
		return nil, err
	}

	png, err := srv.qrSvc.GenerateProductQR(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate share QR")
	}

	return png, nil
}

func (srv *productService) ownedProduct(ctx context.Context, sellerEmail, id string) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to fetch product")
	}
	if product.SellerID != sellerEmail {
		return nil, domainerrors.ErrProductOwnership
	}

	return product, nil
}
