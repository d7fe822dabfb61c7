package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the persistence shape of one rate row.
// Note: Rate uses github.com/shopspring/decimal for precise money math.
type ExchangeRate struct {
	ID             int64
	BaseCurrency   string
	TargetCurrency string
	Rate           decimal.Decimal
	UpdatedAt      time.Time
}
