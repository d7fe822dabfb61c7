package services

import (
	"context"
	"time"

	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	"github.com/kahawapay/kahawapay_backend/internal/dto"
)

// UserSvcFacade manages registered sender accounts.
type UserSvcFacade interface {
	// RegisterUser creates an account with a bcrypt-hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// AuthenticateUser verifies credentials and returns the user, or
	// apperrors.ErrUnauthorized on any mismatch.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// GetUserByID fetches a user or apperrors.ErrNotFound.
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
}

// TokenSvcFacade issues bearer tokens for authenticated users.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
