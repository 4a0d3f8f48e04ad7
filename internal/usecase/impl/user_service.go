// Package impl contains the implementation of the application's business logic.
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

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo        repository.UserRepository
	hasher          service.PasswordHasher
	tokenService    service.TokenService
	notificationSvc usecase.NotificationUsecase
	logger          *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo        repository.UserRepository
	Hasher          service.PasswordHasher
	TokenService    service.TokenService
	NotificationSvc usecase.NotificationUsecase
	Logger          *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:        params.UserRepo,
		hasher:          params.Hasher,
		tokenService:    params.TokenService,
		notificationSvc: params.NotificationSvc,
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete account registration process.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	role := entity.Role(input.Role)
	if input.Role == "" {
		role = entity.RoleUser
	}
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("invalid role: %s", input.Role))
	}

	_, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check existing account")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	user := &entity.User{
		Email:          input.Email,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Role:           role,
		Products:       []string{},
		PaymentDetails: map[string]any{},
		FCMTokens:      []string{},
		PasswordHash:   hash,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create account")
	}

	srv.log(ctx).Info("Registration successful", slog.String("email", input.Email))

	return &usecase.RegisterOutput{User: user}, nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Login attempt", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.Email, entity.Roles{user.Role}.ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	srv.log(ctx).Info("Login successful", slog.String("email", input.Email))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair.
func (srv *userService) RefreshToken(ctx context.Context, refreshToken string) (*usecase.TokenPair, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	// The account may have been removed since the token was issued.
	user, err := srv.userRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	accessToken, newRefreshToken, err := srv.tokenService.GenerateTokens(user.Email, entity.Roles{user.Role}.ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	return &usecase.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// GetProfile returns the account document for the given email.
func (srv *userService) GetProfile(ctx context.Context, email string) (*entity.User, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	return user, nil
}

// RegisterDevice stores an FCM token on the account.
func (srv *userService) RegisterDevice(ctx context.Context, email, token string) error {
	if token == "" {
		return domainerrors.ErrValidationFailed.WithDetails("device token is required")
	}

	if err := srv.userRepo.AddFCMToken(ctx, email, token); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to register device")
	}

	srv.log(ctx).Info("Device registered", slog.String("email", email))

	return nil
}

// UpdatePaymentDetails merges the given keys into the account's payment mapping.
func (srv *userService) UpdatePaymentDetails(ctx context.Context, email string, details map[string]any) error {
	if err := srv.userRepo.UpdatePaymentDetails(ctx, email, details); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to update payment details")
	}

	return nil
}

// RateSeller appends a rating to the seller's sequence and notifies them.
func (srv *userService) RateSeller(ctx context.Context, raterEmail, sellerEmail string, input usecase.RateSellerInput) error {
	rating := entity.Rating{
		Score:      input.Score,
		Comment:    input.Comment,
		FromUserID: raterEmail,
	}
	if !rating.IsValidScore() {
		return domainerrors.ErrInvalidRatingScore
	}

	rater, err := srv.userRepo.FindByEmail(ctx, raterEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to find rater")
	}

	if err := srv.userRepo.AppendRating(ctx, sellerEmail, rating); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to append rating")
	}

	message := fmt.Sprintf("%s rated you %d/5", rater.FullName(), input.Score)
	if _, err := srv.notificationSvc.Notify(ctx, usecase.NotifyInput{
		UserID:  sellerEmail,
		Type:    entity.NotificationRating,
		Message: message,
	}); err != nil {
		// The rating itself is stored; a lost notification is acceptable.
		srv.log(ctx).Warn("Failed to notify seller about rating",
			slog.String("seller", sellerEmail),
			slog.Any("error", err),
		)
	}

	return nil
}
