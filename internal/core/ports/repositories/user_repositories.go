package repositories

import (
	"context"

	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
)

// UserRepository persists registered senders and ephemeral guest identities.
type UserRepository interface {
	// CreateUser inserts a registered user. A duplicate e-mail returns
	// apperrors.ErrDuplicate.
	CreateUser(ctx context.Context, user domain.User) (*domain.User, error)

	// FindUserByEmail returns a user or apperrors.ErrNotFound.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByID returns a user or apperrors.ErrNotFound.
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)

	// CreateGuestIdentity allocates the next sequential guest identity
	// atomically. Two concurrent calls never receive the same sequence
	// number; allocation failure is propagated, not retried silently beyond
	// the repository's own unique-constraint retry loop.
	CreateGuestIdentity(ctx context.Context) (*domain.GuestIdentity, error)
}
