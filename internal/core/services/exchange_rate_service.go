package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/kahawapay/kahawapay_backend/internal/apperrors"
	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	portsrepo "github.com/kahawapay/kahawapay_backend/internal/core/ports/repositories"
	portssvc "github.com/kahawapay/kahawapay_backend/internal/core/ports/services"
	"github.com/kahawapay/kahawapay_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// exchangeRateService maintains the stored rates behind the conversion
// engine. Every row is USD-based; targets are payout currencies or the
// pseudo-codes FEE and BTCUSD.
type exchangeRateService struct {
	rateRepo  portsrepo.ExchangeRateRepository
	supported []string
}

// NewExchangeRateService creates the rate maintenance service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepository, supportedCurrencies []string) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{rateRepo: rateRepo, supported: supportedCurrencies}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// UpsertRate validates and stores one rate row.
func (s *exchangeRateService) UpsertRate(ctx context.Context, req dto.UpsertExchangeRateRequest) (*domain.ExchangeRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	base := strings.ToUpper(strings.TrimSpace(req.Base))
	if base == "" {
		base = domain.CodeUSD
	}
	if base != domain.CodeUSD {
		return nil, fmt.Errorf("%w: only USD-based rates are supported", apperrors.ErrValidation)
	}

	target := strings.ToUpper(strings.TrimSpace(req.Target))
	if target == base {
		return nil, fmt.Errorf("%w: base and target cannot be the same", apperrors.ErrValidation)
	}
	if target != domain.CodeFee && target != domain.CodeBTCUSD && !slices.Contains(s.supported, target) {
		return nil, fmt.Errorf("%w: target must be %s, %s or one of: %s",
			apperrors.ErrValidation, domain.CodeFee, domain.CodeBTCUSD, strings.Join(s.supported, ", "))
	}
	if target == domain.CodeFee && req.Rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: %s must be a fraction below 1", apperrors.ErrValidation, domain.CodeFee)
	}

	rate, err := s.rateRepo.UpsertRate(ctx, base, target, req.Rate)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert exchange rate: %w", err)
	}
	return rate, nil
}

// ListRates returns all stored rates for the admin panel.
func (s *exchangeRateService) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	return rates, nil
}

// SupportedCurrencies returns the configured payout codes.
func (s *exchangeRateService) SupportedCurrencies() []string {
	return slices.Clone(s.supported)
}
