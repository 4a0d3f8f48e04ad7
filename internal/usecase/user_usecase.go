// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"unimarket/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// RateSellerInput carries one rating entry for a seller.
type RateSellerInput struct {
	Score   int
	Comment string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// TokenPair is returned from a refresh exchange.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)

	// GetProfile returns the account document for the given email.
	GetProfile(ctx context.Context, email string) (*entity.User, error)

	// RegisterDevice stores an FCM token on the account. Re-registering an
	// existing token is a no-op.
	RegisterDevice(ctx context.Context, email, token string) error

	// UpdatePaymentDetails merges the given keys into the account's opaque
	// payment mapping.
	UpdatePaymentDetails(ctx context.Context, email string, details map[string]any) error

	// RateSeller appends a rating to the seller's sequence and notifies them.
	RateSeller(ctx context.Context, raterEmail, sellerEmail string, input RateSellerInput) error
}
