package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kahawapay/kahawapay_backend/internal/apperrors"
	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	"github.com/kahawapay/kahawapay_backend/internal/core/ports/repositories"
	"github.com/kahawapay/kahawapay_backend/internal/models"
	"github.com/kahawapay/kahawapay_backend/internal/utils/mapping"
)

// pgUniqueViolation is the Postgres error code for a unique constraint hit.
const pgUniqueViolation = "23505"

// guestSeqRetries bounds the retry loop when two requests race for the same
// guest sequence number.
const guestSeqRetries = 3

// PGSQLUserRepository implements repositories.UserRepository backed by the
// users table, which holds both registered senders and guest placeholder
// rows.
type PGSQLUserRepository struct {
	BaseRepository
}

var _ repositories.UserRepository = (*PGSQLUserRepository)(nil)

// NewPGSQLUserRepository creates a new user repository.
func NewPGSQLUserRepository(pool *pgxpool.Pool) *PGSQLUserRepository {
	return &PGSQLUserRepository{BaseRepository{Pool: pool}}
}

const userColumns = `id, email, password, role, is_guest, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(&m.UserID, &m.Email, &m.PasswordHash, &m.Role, &m.IsGuest, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainUser(m)
	return &d, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// CreateUser inserts a registered sender. Duplicate e-mails surface as
// apperrors.ErrDuplicate.
func (r *PGSQLUserRepository) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	query := `INSERT INTO users (email, password, role, is_guest, created_at)
		VALUES ($1, $2, $3, FALSE, NOW())
		RETURNING ` + userColumns

	created, err := scanUser(r.Pool.QueryRow(ctx, query, user.Email, user.PasswordHash, user.Role))
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: email %s already registered", apperrors.ErrDuplicate, user.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// FindUserByEmail returns a user or apperrors.ErrNotFound.
func (r *PGSQLUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.Pool.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindUserByID returns a user or apperrors.ErrNotFound.
func (r *PGSQLUserRepository) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.Pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %d", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user %d: %w", id, err)
	}
	return user, nil
}

// CreateGuestIdentity allocates the next sequential guest identity. The
// sequence number is computed and inserted in a single statement; the unique
// index on guest_seq turns a concurrent race into a constraint hit, which is
// retried with a fresh number instead of handing out a duplicate.
func (r *PGSQLUserRepository) CreateGuestIdentity(ctx context.Context) (*domain.GuestIdentity, error) {
	query := `INSERT INTO users (email, password, role, is_guest, guest_seq, created_at)
		SELECT 'guest-' || LPAD(n::text, 5, '0') || '@' || $1, '', $2, TRUE, n, NOW()
		FROM (SELECT COALESCE(MAX(guest_seq), 0) + 1 AS n FROM users WHERE is_guest) next_seq
		RETURNING id, guest_seq, email`

	var lastErr error
	for attempt := 0; attempt < guestSeqRetries; attempt++ {
		var identity domain.GuestIdentity
		err := r.Pool.QueryRow(ctx, query, domain.GuestEmailDomain, domain.RoleGuest).
			Scan(&identity.UserID, &identity.Sequence, &identity.Email)
		if err == nil {
			return &identity, nil
		}
		if !isUniqueViolation(err) {
			return nil, fmt.Errorf("failed to create guest identity: %w", err)
		}
		lastErr = err
	}
	return nil, fmt.Errorf("failed to allocate guest sequence after %d attempts: %w", guestSeqRetries, lastErr)
}
