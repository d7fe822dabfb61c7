package repositories

import (
	"context"

	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateRepository is the RateSource consumed by the conversion engine
// and maintained through the admin settings endpoints.
type ExchangeRateRepository interface {
	// GetRate returns the most recently updated rate for a code, or
	// apperrors.ErrNotFound. Zero and negative stored values are reported as
	// not found.
	GetRate(ctx context.Context, code string) (decimal.Decimal, error)

	// GetRateSnapshot returns the latest value for each requested code in a
	// single consistent read. Codes with no usable row are simply absent from
	// the snapshot; the conversion engine decides what that means.
	GetRateSnapshot(ctx context.Context, codes ...string) (domain.RateSnapshot, error)

	// UpsertRate inserts or refreshes the rate for base/target and returns
	// the stored row.
	UpsertRate(ctx context.Context, base, target string, rate decimal.Decimal) (*domain.ExchangeRate, error)

	// ListRates returns all stored rates ordered by target code.
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)
}
