package repositories

import (
	"context"

	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
)

// TransactionRepository persists remittance transactions and performs the
// guarded status transitions of the ledger. All transitions are atomic
// read-modify-writes in SQL; there are no lost updates under concurrency.
type TransactionRepository interface {
	// CreateTransaction inserts a new pending transaction and returns it with
	// its assigned ID and creation time.
	CreateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// FindTransactionByID returns a transaction or apperrors.ErrNotFound.
	FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error)

	// MarkPaid moves pending->paid. paid_at is set once and never
	// overwritten; re-marking a paid transaction is a no-op that returns the
	// row with changed=false, so callers can avoid emitting duplicate
	// settlement events. Returns apperrors.ErrInvalidTransition from archived
	// and apperrors.ErrNotFound for unknown ids.
	MarkPaid(ctx context.Context, id int64) (txn *domain.Transaction, changed bool, err error)

	// Archive moves pending->archived. Returns apperrors.ErrInvalidTransition
	// from any terminal status and apperrors.ErrNotFound for unknown ids.
	Archive(ctx context.Context, id int64) (*domain.Transaction, error)

	// MarkGuestComplete sets the guest completion flag for the transaction
	// bound to guestKey. The completion timestamp is set on the first call
	// only; status is not touched. Unknown id and key mismatch are both
	// apperrors.ErrNotFound.
	MarkGuestComplete(ctx context.Context, id int64, guestKey string) (*domain.Transaction, error)

	// FindGuestTransaction returns the transaction only when id and guestKey
	// match, apperrors.ErrNotFound otherwise.
	FindGuestTransaction(ctx context.Context, id int64, guestKey string) (*domain.Transaction, error)

	// ListTransactions returns the newest transactions joined with the
	// sender's e-mail, capped at limit.
	ListTransactions(ctx context.Context, limit int) ([]domain.AdminTransactionRow, error)

	// ListTransactionsByUser returns the user's own transactions, newest first.
	ListTransactionsByUser(ctx context.Context, userID int64) ([]domain.Transaction, error)

	// SummarizeByStatus returns per-status counts and USD totals.
	SummarizeByStatus(ctx context.Context) ([]domain.StatusSummary, error)
}
