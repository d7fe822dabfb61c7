package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
)

func TestTransactionStatusTransitions(t *testing.T) {
	tests := []struct {
		from    domain.TransactionStatus
		to      domain.TransactionStatus
		allowed bool
	}{
		{domain.TransactionPending, domain.TransactionPaid, true},
		{domain.TransactionPending, domain.TransactionArchived, true},
		{domain.TransactionPending, domain.TransactionPending, false},
		{domain.TransactionPaid, domain.TransactionPaid, true}, // idempotent settlement
		{domain.TransactionPaid, domain.TransactionArchived, false},
		{domain.TransactionPaid, domain.TransactionPending, false},
		{domain.TransactionArchived, domain.TransactionPaid, false},
		{domain.TransactionArchived, domain.TransactionArchived, false},
		{domain.TransactionArchived, domain.TransactionPending, false},
		{domain.TransactionFailed, domain.TransactionPaid, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTransactionStatusIsTerminal(t *testing.T) {
	assert.False(t, domain.TransactionPending.IsTerminal())
	assert.True(t, domain.TransactionPaid.IsTerminal())
	assert.True(t, domain.TransactionArchived.IsTerminal())
}

func TestGuestIdentityLabel(t *testing.T) {
	assert.Equal(t, "guest-00001", domain.GuestIdentity{Sequence: 1}.Label())
	assert.Equal(t, "guest-00042", domain.GuestIdentity{Sequence: 42}.Label())
	assert.Equal(t, "guest-123456", domain.GuestIdentity{Sequence: 123456}.Label())
	assert.Equal(t, "guest-00042@kahawapay.com", domain.GuestEmail(42))
}

func TestRateSnapshotRejectsNonPositiveRates(t *testing.T) {
	snap := domain.RateSnapshot{
		"KES": decimal.NewFromInt(129),
		"UGX": decimal.Zero,
		"TZS": decimal.NewFromInt(-1),
	}

	rate, ok := snap.Rate("KES")
	assert.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromInt(129)))

	_, ok = snap.Rate("UGX")
	assert.False(t, ok)

	_, ok = snap.Rate("TZS")
	assert.False(t, ok)

	_, ok = snap.Rate("MISSING")
	assert.False(t, ok)
}
