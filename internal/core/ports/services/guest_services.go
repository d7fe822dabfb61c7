package services

import (
	"context"

	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GuestSvcFacade gates guest-initiated transactions and issues sequential
// guest identities.
type GuestSvcFacade interface {
	// CheckLimit rejects with apperrors.ErrLimitExceeded when amountUSD is
	// strictly above the configured guest cap. The cap is injected via
	// config, never hardcoded.
	CheckLimit(amountUSD decimal.Decimal) error

	// LimitUSD returns the configured guest cap, for user-facing messages.
	LimitUSD() decimal.Decimal

	// IssueGuestIdentity allocates the next sequential guest identity.
	IssueGuestIdentity(ctx context.Context) (*domain.GuestIdentity, error)
}
