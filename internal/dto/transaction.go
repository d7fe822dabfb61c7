package dto

import (
	"time"

	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the payload shared by the user and guest
// creation/preview endpoints. Client-sent IDs and admin flags are simply not
// part of the shape, so they can never be smuggled in.
type CreateTransactionRequest struct {
	AmountCryptoBTC decimal.Decimal `json:"amount_crypto_btc" binding:"required"`
	Currency        string          `json:"currency" binding:"omitempty,alpha,min=3,max=10"`
	RecipientMSISDN string          `json:"recipient_msisdn" binding:"required,msisdn"`
}

// GuestCompleteRequest marks a guest transaction as completed by its sender.
type GuestCompleteRequest struct {
	TxID     int64  `json:"tx_id" binding:"required"`
	GuestKey string `json:"guest_key" binding:"required,uuid4"`
}

// TransactionPreviewResponse mirrors what the frontend expects from the
// preview endpoints; no row is persisted for a preview.
type TransactionPreviewResponse struct {
	SenderEmail     string          `json:"sender_email"`
	AmountRecipient decimal.Decimal `json:"amount_recipient"`
	Currency        string          `json:"currency"`
	RecipientMSISDN string          `json:"recipient_msisdn"`
	AmountUSD       decimal.Decimal `json:"amount_usd"`
	FeeTotal        decimal.Decimal `json:"fee_total"`
}

// TransactionResponse is returned after a transaction has been created.
type TransactionResponse struct {
	ID              int64           `json:"id"`
	SenderEmail     string          `json:"sender_email"`
	AmountRecipient decimal.Decimal `json:"amount_recipient"`
	Currency        string          `json:"currency"`
	RecipientMSISDN string          `json:"recipient_msisdn"`
	AmountUSD       decimal.Decimal `json:"amount_usd"`
	FeeTotal        decimal.Decimal `json:"fee_total"`
	Status          string          `json:"status"`
	GuestKey        string          `json:"guest_key,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// GuestStatusResponse is the minimal safe field subset a guest may see.
type GuestStatusResponse struct {
	ID                 int64      `json:"id"`
	Status             string     `json:"status"`
	UserMarkedComplete bool       `json:"user_marked_complete"`
	UserCompletedAt    *time.Time `json:"user_completed_at,omitempty"`
	PaidAt             *time.Time `json:"paid_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// AdminTransactionResponse is one row of the admin listing.
type AdminTransactionResponse struct {
	ID              int64           `json:"id"`
	Email           string          `json:"email"`
	MSISDN          string          `json:"msisdn"`
	AmountRecipient decimal.Decimal `json:"amount_recipient"`
	AmountUSD       decimal.Decimal `json:"amount_usd"`
	AmountCryptoBTC decimal.Decimal `json:"amount_crypto_btc"`
	FeeTotal        decimal.Decimal `json:"fee_total"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// StatusSummaryResponse is one row of the admin aggregate view.
type StatusSummaryResponse struct {
	Status   string          `json:"status"`
	Count    int64           `json:"count"`
	TotalUSD decimal.Decimal `json:"total_usd"`
}

// ToTransactionResponse builds the creation response for a transaction and
// the e-mail of whoever sent it.
func ToTransactionResponse(txn *domain.Transaction, senderEmail string) TransactionResponse {
	resp := TransactionResponse{
		ID:              txn.ID,
		SenderEmail:     senderEmail,
		AmountRecipient: txn.RecipientAmount,
		Currency:        txn.Currency,
		RecipientMSISDN: txn.RecipientMSISDN,
		AmountUSD:       txn.AmountUSD,
		FeeTotal:        txn.FeeTotal,
		Status:          string(txn.Status),
		CreatedAt:       txn.CreatedAt,
	}
	if txn.GuestKey != nil {
		resp.GuestKey = *txn.GuestKey
	}
	return resp
}

// ToGuestStatusResponse converts a transaction to the guest-visible subset.
func ToGuestStatusResponse(txn *domain.Transaction) GuestStatusResponse {
	return GuestStatusResponse{
		ID:                 txn.ID,
		Status:             string(txn.Status),
		UserMarkedComplete: txn.UserMarkedComplete,
		UserCompletedAt:    txn.UserCompletedAt,
		PaidAt:             txn.PaidAt,
		CreatedAt:          txn.CreatedAt,
	}
}

// ToAdminTransactionResponse converts a joined admin row.
func ToAdminTransactionResponse(row domain.AdminTransactionRow) AdminTransactionResponse {
	return AdminTransactionResponse{
		ID:              row.ID,
		Email:           row.SenderEmail,
		MSISDN:          row.RecipientMSISDN,
		AmountRecipient: row.RecipientAmount,
		AmountUSD:       row.AmountUSD,
		AmountCryptoBTC: row.AmountCryptoBTC,
		FeeTotal:        row.FeeTotal,
		Currency:        row.Currency,
		Status:          string(row.Status),
		CreatedAt:       row.CreatedAt,
	}
}

// ToListAdminTransactionResponse converts a slice of joined admin rows.
func ToListAdminTransactionResponse(rows []domain.AdminTransactionRow) []AdminTransactionResponse {
	responses := make([]AdminTransactionResponse, len(rows))
	for i, row := range rows {
		responses[i] = ToAdminTransactionResponse(row)
	}
	return responses
}

// ToListStatusSummaryResponse converts the aggregate rows.
func ToListStatusSummaryResponse(summaries []domain.StatusSummary) []StatusSummaryResponse {
	responses := make([]StatusSummaryResponse, len(summaries))
	for i, s := range summaries {
		responses[i] = StatusSummaryResponse{
			Status:   string(s.Status),
			Count:    s.Count,
			TotalUSD: s.TotalUSD,
		}
	}
	return responses
}
