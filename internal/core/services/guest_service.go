package services

import (
	"context"
	"fmt"

	"github.com/kahawapay/kahawapay_backend/internal/apperrors"
	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	portsrepo "github.com/kahawapay/kahawapay_backend/internal/core/ports/repositories"
	portssvc "github.com/kahawapay/kahawapay_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// guestService enforces the guest transaction ceiling and issues the
// sequential placeholder identities guest transactions are recorded under.
type guestService struct {
	userRepo portsrepo.UserRepository
	limitUSD decimal.Decimal
}

// NewGuestService creates the guest policy. The USD cap comes from config so
// tests can vary it.
func NewGuestService(userRepo portsrepo.UserRepository, limitUSD decimal.Decimal) portssvc.GuestSvcFacade {
	return &guestService{userRepo: userRepo, limitUSD: limitUSD}
}

var _ portssvc.GuestSvcFacade = (*guestService)(nil)

// CheckLimit rejects amounts strictly above the cap; an amount equal to the
// cap is allowed.
func (s *guestService) CheckLimit(amountUSD decimal.Decimal) error {
	if amountUSD.GreaterThan(s.limitUSD) {
		return fmt.Errorf("%w: guests cannot exceed $%s", apperrors.ErrLimitExceeded, s.limitUSD.StringFixed(0))
	}
	return nil
}

func (s *guestService) LimitUSD() decimal.Decimal {
	return s.limitUSD
}

// IssueGuestIdentity allocates the next sequential guest label. Allocation
// failures are hard failures; the repository already retries sequence
// collisions, anything surviving that is propagated.
func (s *guestService) IssueGuestIdentity(ctx context.Context) (*domain.GuestIdentity, error) {
	identity, err := s.userRepo.CreateGuestIdentity(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to issue guest identity: %w", err)
	}
	return identity, nil
}
