package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a remittance transaction.
type TransactionStatus string

const (
	TransactionPending  TransactionStatus = "pending"
	TransactionPaid     TransactionStatus = "paid"
	TransactionArchived TransactionStatus = "archived"
	// TransactionFailed is a creation-time outcome only; failed transactions
	// are never persisted.
	TransactionFailed TransactionStatus = "failed"
)

// IsTerminal reports whether no further status transition is permitted.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionPaid || s == TransactionArchived
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
// Re-marking a paid transaction as paid is legal (idempotent settlement); all
// other moves out of a terminal status are rejected.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	switch s {
	case TransactionPending:
		return next == TransactionPaid || next == TransactionArchived
	case TransactionPaid:
		return next == TransactionPaid
	default:
		return false
	}
}

// Transaction represents one remittance attempt. Monetary fields are fixed at
// creation; only Status and the completion/paid timestamps mutate afterwards.
type Transaction struct {
	ID                 int64             `json:"id"`
	UserID             *int64            `json:"userID,omitempty"` // nil for anonymous rows
	GuestKey           *string           `json:"-"`                // uuid bound at creation for guest transactions
	RecipientMSISDN    string            `json:"recipientMSISDN"`
	AmountUSD          decimal.Decimal   `json:"amountUSD"`
	AmountCryptoBTC    decimal.Decimal   `json:"amountCryptoBTC"` // 8dp precision
	FeeTotal           decimal.Decimal   `json:"feeTotal"`
	RecipientAmount    decimal.Decimal   `json:"recipientAmount"`
	Currency           string            `json:"currency"`
	Status             TransactionStatus `json:"status"`
	UserMarkedComplete bool              `json:"userMarkedComplete"`
	UserCompletedAt    *time.Time        `json:"userCompletedAt,omitempty"`
	PaidAt             *time.Time        `json:"paidAt,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
}

// AdminTransactionRow is a transaction joined with its sender's e-mail for the
// admin listing.
type AdminTransactionRow struct {
	Transaction
	SenderEmail string `json:"email"`
}

// StatusSummary is one row of the admin aggregate view.
type StatusSummary struct {
	Status   TransactionStatus `json:"status"`
	Count    int64             `json:"count"`
	TotalUSD decimal.Decimal   `json:"totalUSD"`
}
