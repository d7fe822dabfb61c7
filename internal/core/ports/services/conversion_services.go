package services

import (
	"context"

	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConversionSvcFacade is the currency conversion and fee engine. Each call
// fetches the rates it needs in one consistent snapshot and then runs pure
// arithmetic; the fee is applied exactly once regardless of entry point, so
// FromUSD and FromLocalNet are algebraic inverses for the same currency.
type ConversionSvcFacade interface {
	// FromUSD converts a positive USD amount into local net/fee figures.
	FromUSD(ctx context.Context, amountUSD decimal.Decimal, currency string) (*domain.ConversionResult, error)

	// FromLocalNet computes the USD gross that yields the desired net local
	// payout. Fails with apperrors.ErrDegenerateFee when the stored fee
	// fraction is >= 1.
	FromLocalNet(ctx context.Context, netLocal decimal.Decimal, currency string) (*domain.ConversionResult, error)

	// FromCrypto converts a BTC amount via BTCUSD, then applies the FromUSD
	// logic. Fails with apperrors.ErrComputationInvalid when the resulting
	// recipient amount is not positive.
	FromCrypto(ctx context.Context, amountBTC decimal.Decimal, currency string) (*domain.ConversionResult, error)

	// Convert dispatches on direction (usd | local_net | crypto).
	Convert(ctx context.Context, direction domain.ConversionDirection, amount decimal.Decimal, currency string) (*domain.ConversionResult, error)
}
