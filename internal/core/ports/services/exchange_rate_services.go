package services

import (
	"context"

	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	"github.com/kahawapay/kahawapay_backend/internal/dto"
)

// ExchangeRateSvcFacade maintains the stored rates behind the conversion
// engine and exposes the supported payout currency set.
type ExchangeRateSvcFacade interface {
	// UpsertRate validates and stores one rate row.
	UpsertRate(ctx context.Context, req dto.UpsertExchangeRateRequest) (*domain.ExchangeRate, error)

	// ListRates returns all stored rates for the admin panel.
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)

	// SupportedCurrencies returns the configured payout currency codes.
	SupportedCurrencies() []string
}
