package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persistence shape of a remittance transaction, matching
// the transactions table.
type Transaction struct {
	ID                 int64
	UserID             *int64
	GuestKey           *string
	RecipientMSISDN    string
	AmountUSD          decimal.Decimal
	AmountCryptoBTC    decimal.Decimal
	FeeTotal           decimal.Decimal
	RecipientAmount    decimal.Decimal
	Currency           string
	Status             string
	UserMarkedComplete bool
	UserCompletedAt    *time.Time
	PaidAt             *time.Time
	CreatedAt          time.Time
}
