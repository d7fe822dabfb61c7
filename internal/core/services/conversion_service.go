package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kahawapay/kahawapay_backend/internal/apperrors"
	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	portsrepo "github.com/kahawapay/kahawapay_backend/internal/core/ports/repositories"
	portssvc "github.com/kahawapay/kahawapay_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// round2 rounds to two decimal places, half away from zero. Applied only to
// the three output fields, never between intermediate steps, so chained
// conversions do not compound rounding error.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// conversionService implements the currency conversion and fee engine on top
// of a RateSource. All rates for one computation are fetched in a single
// snapshot before any arithmetic runs.
type conversionService struct {
	rateRepo portsrepo.ExchangeRateRepository
}

// NewConversionService creates the conversion engine.
func NewConversionService(rateRepo portsrepo.ExchangeRateRepository) portssvc.ConversionSvcFacade {
	return &conversionService{rateRepo: rateRepo}
}

var _ portssvc.ConversionSvcFacade = (*conversionService)(nil)

// snapshotFor fetches every rate one conversion will need in one consistent
// read. USD needs no stored rate.
func (s *conversionService) snapshotFor(ctx context.Context, currency string, withCrypto bool) (domain.RateSnapshot, error) {
	codes := []string{domain.CodeFee}
	cur := strings.ToUpper(currency)
	if cur != domain.CodeUSD {
		codes = append(codes, cur)
	}
	if withCrypto {
		codes = append(codes, domain.CodeBTCUSD)
	}
	snap, err := s.rateRepo.GetRateSnapshot(ctx, codes...)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate snapshot: %w", err)
	}
	return snap, nil
}

func (s *conversionService) FromUSD(ctx context.Context, amountUSD decimal.Decimal, currency string) (*domain.ConversionResult, error) {
	if amountUSD.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount_usd must be positive", apperrors.ErrValidation)
	}
	snap, err := s.snapshotFor(ctx, currency, false)
	if err != nil {
		return nil, err
	}
	return ConvertFromUSD(amountUSD, currency, snap)
}

func (s *conversionService) FromLocalNet(ctx context.Context, netLocal decimal.Decimal, currency string) (*domain.ConversionResult, error) {
	if netLocal.Sign() <= 0 {
		return nil, fmt.Errorf("%w: recipient_amount_net_local must be positive", apperrors.ErrValidation)
	}
	snap, err := s.snapshotFor(ctx, currency, false)
	if err != nil {
		return nil, err
	}
	return ConvertFromLocalNet(netLocal, currency, snap)
}

func (s *conversionService) FromCrypto(ctx context.Context, amountBTC decimal.Decimal, currency string) (*domain.ConversionResult, error) {
	if amountBTC.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount_crypto_btc must be positive", apperrors.ErrValidation)
	}
	snap, err := s.snapshotFor(ctx, currency, true)
	if err != nil {
		return nil, err
	}
	return ConvertFromCrypto(amountBTC, currency, snap)
}

func (s *conversionService) Convert(ctx context.Context, direction domain.ConversionDirection, amount decimal.Decimal, currency string) (*domain.ConversionResult, error) {
	switch direction {
	case domain.DirectionUSD:
		return s.FromUSD(ctx, amount, currency)
	case domain.DirectionLocalNet:
		return s.FromLocalNet(ctx, amount, currency)
	case domain.DirectionCrypto:
		return s.FromCrypto(ctx, amount, currency)
	default:
		return nil, fmt.Errorf("%w: unknown conversion direction %q", apperrors.ErrValidation, direction)
	}
}

// ratesFor extracts the USD->local rate and the fee fraction from a snapshot.
// USD converts 1:1 without a stored row.
func ratesFor(currency string, snap domain.RateSnapshot) (usd2cur, feePct decimal.Decimal, err error) {
	cur := strings.ToUpper(currency)
	if cur == domain.CodeUSD {
		usd2cur = one
	} else {
		var ok bool
		usd2cur, ok = snap.Rate(cur)
		if !ok {
			return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("%w: no usable rate for %s", apperrors.ErrRateUnavailable, cur)
		}
	}
	feePct, ok := snap.Rate(domain.CodeFee)
	if !ok {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("%w: no usable %s rate", apperrors.ErrRateUnavailable, domain.CodeFee)
	}
	return usd2cur, feePct, nil
}

// ConvertFromUSD computes local gross/net/fee figures for a USD amount. The
// fee is subtracted once from the gross local amount.
func ConvertFromUSD(amountUSD decimal.Decimal, currency string, snap domain.RateSnapshot) (*domain.ConversionResult, error) {
	usd2cur, feePct, err := ratesFor(currency, snap)
	if err != nil {
		return nil, err
	}

	grossLocal := amountUSD.Mul(usd2cur)
	recipient := grossLocal.Mul(one.Sub(feePct))
	feeTotal := grossLocal.Sub(recipient)

	return &domain.ConversionResult{
		AmountUSD:       round2(amountUSD),
		RecipientAmount: round2(recipient),
		FeeTotal:        round2(feeTotal),
		Currency:        strings.ToUpper(currency),
	}, nil
}

// ConvertFromLocalNet is the inverse of ConvertFromUSD: it recovers the USD
// gross that yields the desired net local payout.
func ConvertFromLocalNet(netLocal decimal.Decimal, currency string, snap domain.RateSnapshot) (*domain.ConversionResult, error) {
	usd2cur, feePct, err := ratesFor(currency, snap)
	if err != nil {
		return nil, err
	}
	if feePct.GreaterThanOrEqual(one) {
		return nil, fmt.Errorf("%w: fee fraction %s", apperrors.ErrDegenerateFee, feePct.String())
	}

	grossLocal := netLocal.Div(one.Sub(feePct))
	amountUSD := grossLocal.Div(usd2cur)
	feeTotal := grossLocal.Sub(netLocal)

	return &domain.ConversionResult{
		AmountUSD:       round2(amountUSD),
		RecipientAmount: round2(netLocal),
		FeeTotal:        round2(feeTotal),
		Currency:        strings.ToUpper(currency),
	}, nil
}

// ConvertFromCrypto converts BTC to USD via the BTCUSD rate and then applies
// the ConvertFromUSD logic.
func ConvertFromCrypto(amountBTC decimal.Decimal, currency string, snap domain.RateSnapshot) (*domain.ConversionResult, error) {
	btcUSD, ok := snap.Rate(domain.CodeBTCUSD)
	if !ok {
		return nil, fmt.Errorf("%w: no usable %s rate", apperrors.ErrRateUnavailable, domain.CodeBTCUSD)
	}

	amountUSD := amountBTC.Mul(btcUSD)
	result, err := ConvertFromUSD(amountUSD, currency, snap)
	if err != nil {
		return nil, err
	}
	if result.RecipientAmount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: computed recipient amount is not positive", apperrors.ErrComputationInvalid)
	}
	return result, nil
}
