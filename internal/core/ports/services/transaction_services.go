package services

import (
	"context"

	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	"github.com/kahawapay/kahawapay_backend/internal/dto"
)

// TransactionSvcFacade is the transaction ledger: creation from either actor
// kind, the admin settlement transitions, and the guest self-service calls.
type TransactionSvcFacade interface {
	// PreviewUser validates and converts without persisting anything.
	PreviewUser(ctx context.Context, req dto.CreateTransactionRequest) (*domain.ConversionResult, error)

	// PreviewGuest additionally enforces the guest USD cap.
	PreviewGuest(ctx context.Context, req dto.CreateTransactionRequest) (*domain.ConversionResult, error)

	// CreateUserTransaction creates a pending transaction owned by userID.
	// Any validation or conversion failure aborts with nothing persisted.
	CreateUserTransaction(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// CreateGuestTransaction issues a guest identity, enforces the cap and
	// creates a pending transaction bound to a fresh guest key.
	CreateGuestTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, *domain.GuestIdentity, error)

	// MarkPaid settles a pending transaction. Idempotent: re-marking a paid
	// transaction returns it unchanged, paid_at keeps its first value.
	MarkPaid(ctx context.Context, id int64) (*domain.Transaction, error)

	// Archive administratively closes a pending transaction.
	Archive(ctx context.Context, id int64) (*domain.Transaction, error)

	// GuestMarkComplete sets the sender-side completion flag; status stays
	// admin-only. Unknown id and key mismatch are indistinguishable.
	GuestMarkComplete(ctx context.Context, id int64, guestKey string) (*domain.Transaction, error)

	// GetGuestStatus returns the guest-visible state of a transaction.
	GetGuestStatus(ctx context.Context, id int64, guestKey string) (*domain.Transaction, error)

	// ListTransactions returns the admin listing, newest first.
	ListTransactions(ctx context.Context) ([]domain.AdminTransactionRow, error)

	// Summary returns per-status counts and USD totals.
	Summary(ctx context.Context) ([]domain.StatusSummary, error)

	// ListUserTransactions returns the caller's own transactions.
	ListUserTransactions(ctx context.Context, userID int64) ([]domain.Transaction, error)
}
