package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kahawapay/kahawapay_backend/internal/apperrors"
	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	"github.com/kahawapay/kahawapay_backend/internal/core/ports/repositories"
	"github.com/kahawapay/kahawapay_backend/internal/models"
	"github.com/kahawapay/kahawapay_backend/internal/utils/mapping"
)

// PGSQLTransactionRepository implements repositories.TransactionRepository
// backed by the transactions table. Status transitions lock the row and
// consult the state machine before updating, so two concurrent admin actions
// can never produce a lost update.
type PGSQLTransactionRepository struct {
	BaseRepository
}

var _ repositories.TransactionRepository = (*PGSQLTransactionRepository)(nil)

// NewPGSQLTransactionRepository creates a new transaction repository.
func NewPGSQLTransactionRepository(pool *pgxpool.Pool) *PGSQLTransactionRepository {
	return &PGSQLTransactionRepository{BaseRepository{Pool: pool}}
}

const txnColumns = `id, user_id, guest_key::text, recipient_msisdn,
	amount_usd, amount_crypto_btc, fee_total, recipient_amount, currency,
	status, user_marked_complete, user_completed_at, paid_at, created_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.ID, &m.UserID, &m.GuestKey, &m.RecipientMSISDN,
		&m.AmountUSD, &m.AmountCryptoBTC, &m.FeeTotal, &m.RecipientAmount, &m.Currency,
		&m.Status, &m.UserMarkedComplete, &m.UserCompletedAt, &m.PaidAt, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// CreateTransaction inserts a new pending transaction.
func (r *PGSQLTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	m := mapping.ToModelTransaction(txn)
	query := `INSERT INTO transactions (
			user_id, guest_key, recipient_msisdn,
			amount_usd, amount_crypto_btc, fee_total, recipient_amount, currency,
			status, user_marked_complete, created_at
		) VALUES ($1, $2::uuid, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING ` + txnColumns

	created, err := scanTransaction(r.Pool.QueryRow(ctx, query,
		m.UserID, m.GuestKey, m.RecipientMSISDN,
		m.AmountUSD, m.AmountCryptoBTC, m.FeeTotal, m.RecipientAmount, m.Currency,
		m.Status, m.UserMarkedComplete,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return created, nil
}

// FindTransactionByID returns a transaction or apperrors.ErrNotFound.
func (r *PGSQLTransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	query := `SELECT ` + txnColumns + ` FROM transactions WHERE id = $1`

	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %d: %w", id, err)
	}
	return txn, nil
}

// MarkPaid settles a pending transaction. paid_at is set exactly once, so
// re-marking an already paid transaction returns the row untouched and
// reports changed=false.
func (r *PGSQLTransactionRepository) MarkPaid(ctx context.Context, id int64) (*domain.Transaction, bool, error) {
	query := `UPDATE transactions
		SET status = $2, paid_at = COALESCE(paid_at, NOW())
		WHERE id = $1
		RETURNING ` + txnColumns

	return r.transition(ctx, id, domain.TransactionPaid, query,
		id, string(domain.TransactionPaid))
}

// Archive cancels a pending transaction. Paid and archived rows are terminal.
func (r *PGSQLTransactionRepository) Archive(ctx context.Context, id int64) (*domain.Transaction, error) {
	query := `UPDATE transactions
		SET status = $2
		WHERE id = $1
		RETURNING ` + txnColumns

	txn, _, err := r.transition(ctx, id, domain.TransactionArchived, query,
		id, string(domain.TransactionArchived))
	return txn, err
}

// transition locks the row, checks the state machine against its current
// status, then applies the UPDATE, all inside one transaction so two
// concurrent admin actions can never interleave. changed reports whether the
// status actually moved, which is false only for the idempotent paid->paid
// re-mark.
func (r *PGSQLTransactionRepository) transition(ctx context.Context, id int64, target domain.TransactionStatus, query string, args ...any) (*domain.Transaction, bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var current string
	err = tx.QueryRow(ctx, `SELECT status FROM transactions WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to check transaction %d status: %w", id, err)
	}
	if !domain.TransactionStatus(current).CanTransitionTo(target) {
		return nil, false, fmt.Errorf("%w: cannot move transaction %d from %s to %s",
			apperrors.ErrInvalidTransition, id, current, target)
	}

	txn, err := scanTransaction(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, false, fmt.Errorf("failed to move transaction %d to %s: %w", id, target, err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, false, err
	}
	return txn, domain.TransactionStatus(current) != target, nil
}

// MarkGuestComplete flags the transaction as completed by its guest sender.
// The completion timestamp survives repeated calls; status is not touched.
// A key mismatch is indistinguishable from a missing id on purpose.
func (r *PGSQLTransactionRepository) MarkGuestComplete(ctx context.Context, id int64, guestKey string) (*domain.Transaction, error) {
	query := `UPDATE transactions
		SET user_marked_complete = TRUE,
		    user_completed_at = COALESCE(user_completed_at, NOW())
		WHERE id = $1 AND guest_key = $2::uuid
		RETURNING ` + txnColumns

	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, id, guestKey))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark transaction %d complete: %w", id, err)
	}
	return txn, nil
}

// FindGuestTransaction returns the transaction only when id and key match.
func (r *PGSQLTransactionRepository) FindGuestTransaction(ctx context.Context, id int64, guestKey string) (*domain.Transaction, error) {
	query := `SELECT ` + txnColumns + ` FROM transactions
		WHERE id = $1 AND guest_key = $2::uuid`

	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, id, guestKey))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %d: %w", id, err)
	}
	return txn, nil
}

// ListTransactions returns the newest transactions with the sender's e-mail.
// Anonymous rows report "guest" as the sender.
func (r *PGSQLTransactionRepository) ListTransactions(ctx context.Context, limit int) ([]domain.AdminTransactionRow, error) {
	query := `SELECT t.id, t.user_id, t.guest_key::text, t.recipient_msisdn,
			t.amount_usd, t.amount_crypto_btc, t.fee_total, t.recipient_amount, t.currency,
			t.status, t.user_marked_complete, t.user_completed_at, t.paid_at, t.created_at,
			COALESCE(u.email, 'guest') AS sender_email
		FROM transactions t
		LEFT JOIN users u ON u.id = t.user_id
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $1`

	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var result []domain.AdminTransactionRow
	for rows.Next() {
		var (
			m     models.Transaction
			email string
		)
		err := rows.Scan(
			&m.ID, &m.UserID, &m.GuestKey, &m.RecipientMSISDN,
			&m.AmountUSD, &m.AmountCryptoBTC, &m.FeeTotal, &m.RecipientAmount, &m.Currency,
			&m.Status, &m.UserMarkedComplete, &m.UserCompletedAt, &m.PaidAt, &m.CreatedAt,
			&email,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		result = append(result, domain.AdminTransactionRow{
			Transaction: mapping.ToDomainTransaction(m),
			SenderEmail: email,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return result, nil
}

// ListTransactionsByUser returns the user's own transactions, newest first.
func (r *PGSQLTransactionRepository) ListTransactionsByUser(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	query := `SELECT ` + txnColumns + ` FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	var result []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		result = append(result, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return result, nil
}

// SummarizeByStatus returns per-status counts and USD totals.
func (r *PGSQLTransactionRepository) SummarizeByStatus(ctx context.Context) ([]domain.StatusSummary, error) {
	query := `SELECT status, COUNT(*), COALESCE(SUM(amount_usd), 0)
		FROM transactions
		GROUP BY status
		ORDER BY status`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	defer rows.Close()

	var result []domain.StatusSummary
	for rows.Next() {
		var s domain.StatusSummary
		var status string
		if err := rows.Scan(&status, &s.Count, &s.TotalUSD); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		s.Status = domain.TransactionStatus(status)
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read summary: %w", err)
	}
	return result, nil
}
