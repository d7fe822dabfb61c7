package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Pseudo-codes stored alongside real currency codes in the exchange_rates
// table. FEE is the platform cut as a fraction in (0,1); BTCUSD is the USD
// price of one BTC. Every other code is units of local currency per 1 USD.
const (
	CodeFee    = "FEE"
	CodeBTCUSD = "BTCUSD"
	CodeUSD    = "USD"
)

// ExchangeRate is one stored rate row. For a given target code the most
// recently updated row wins.
type ExchangeRate struct {
	ID             int64           `json:"id"`
	BaseCurrency   string          `json:"base"`   // "USD" for every row today
	TargetCurrency string          `json:"target"` // currency code or pseudo-code
	Rate           decimal.Decimal `json:"rate"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// RateSnapshot is a consistent point-in-time view of the rates needed for a
// single conversion. All lookups for one computation must come from the same
// snapshot, so that a rate update arriving mid-computation cannot mix a fresh
// fee with a stale currency rate.
type RateSnapshot map[string]decimal.Decimal

// Rate returns the snapshot value for a code. Missing, zero and negative
// rates are equally invalid and reported as absent.
func (s RateSnapshot) Rate(code string) (decimal.Decimal, bool) {
	r, ok := s[strings.ToUpper(code)]
	if !ok || r.Sign() <= 0 {
		return decimal.Decimal{}, false
	}
	return r, true
}
