package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kahawapay/kahawapay_backend/internal/apperrors"
	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	"github.com/kahawapay/kahawapay_backend/internal/core/ports/repositories"
	"github.com/kahawapay/kahawapay_backend/internal/models"
	"github.com/kahawapay/kahawapay_backend/internal/utils/mapping"
)

// PGSQLExchangeRateRepository implements repositories.ExchangeRateRepository
// backed by the exchange_rates table.
type PGSQLExchangeRateRepository struct {
	BaseRepository
}

var _ repositories.ExchangeRateRepository = (*PGSQLExchangeRateRepository)(nil)

// NewPGSQLExchangeRateRepository creates a new exchange rate repository.
func NewPGSQLExchangeRateRepository(pool *pgxpool.Pool) *PGSQLExchangeRateRepository {
	return &PGSQLExchangeRateRepository{BaseRepository{Pool: pool}}
}

const rateColumns = `id, base_currency, target_currency, rate, updated_at`

// GetRate returns the most recently updated rate for code. Rows holding zero
// or negative values are unusable for conversion and reported as not found.
func (r *PGSQLExchangeRateRepository) GetRate(ctx context.Context, code string) (decimal.Decimal, error) {
	query := `SELECT rate FROM exchange_rates
		WHERE target_currency = $1
		ORDER BY updated_at DESC
		LIMIT 1`

	var rate decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, code).Scan(&rate)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Decimal{}, fmt.Errorf("%w: no rate for %s", apperrors.ErrNotFound, code)
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to get rate for %s: %w", code, err)
	}
	if rate.Sign() <= 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: no usable rate for %s", apperrors.ErrNotFound, code)
	}
	return rate, nil
}

// GetRateSnapshot reads the latest value for every requested code in one
// query, so a conversion never mixes rates from different points in time.
func (r *PGSQLExchangeRateRepository) GetRateSnapshot(ctx context.Context, codes ...string) (domain.RateSnapshot, error) {
	snapshot := make(domain.RateSnapshot, len(codes))
	if len(codes) == 0 {
		return snapshot, nil
	}

	query := `SELECT DISTINCT ON (target_currency) target_currency, rate
		FROM exchange_rates
		WHERE target_currency = ANY($1)
		ORDER BY target_currency, updated_at DESC`

	rows, err := r.Pool.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate snapshot: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			code string
			rate decimal.Decimal
		)
		if err := rows.Scan(&code, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan rate row: %w", err)
		}
		if rate.Sign() > 0 {
			snapshot[code] = rate
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rate snapshot: %w", err)
	}
	return snapshot, nil
}

// UpsertRate inserts the rate for base/target or refreshes the existing row.
func (r *PGSQLExchangeRateRepository) UpsertRate(ctx context.Context, base, target string, rate decimal.Decimal) (*domain.ExchangeRate, error) {
	query := `INSERT INTO exchange_rates (base_currency, target_currency, rate, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (base_currency, target_currency)
		DO UPDATE SET rate = EXCLUDED.rate, updated_at = NOW()
		RETURNING ` + rateColumns

	var m models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, base, target, rate).
		Scan(&m.ID, &m.BaseCurrency, &m.TargetCurrency, &m.Rate, &m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert rate %s/%s: %w", base, target, err)
	}
	d := mapping.ToDomainExchangeRate(m)
	return &d, nil
}

// ListRates returns all stored rates ordered by target code.
func (r *PGSQLExchangeRateRepository) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	query := `SELECT ` + rateColumns + ` FROM exchange_rates ORDER BY target_currency ASC`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	defer rows.Close()

	var result []domain.ExchangeRate
	for rows.Next() {
		var m models.ExchangeRate
		if err := rows.Scan(&m.ID, &m.BaseCurrency, &m.TargetCurrency, &m.Rate, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rate row: %w", err)
		}
		result = append(result, mapping.ToDomainExchangeRate(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rates: %w", err)
	}
	return result, nil
}
