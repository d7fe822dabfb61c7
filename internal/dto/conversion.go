package dto

import (
	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertRequest runs the conversion engine without touching the ledger.
// Direction selects the entry point: a USD amount, a desired net local
// amount, or a crypto amount.
type ConvertRequest struct {
	Direction string          `json:"direction" binding:"required,oneof=usd local_net crypto"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Currency  string          `json:"currency" binding:"required,alpha,min=3,max=10"`
}

// ConversionResponse carries the three settlement figures, 2dp each.
type ConversionResponse struct {
	AmountUSD       decimal.Decimal `json:"amount_usd"`
	RecipientAmount decimal.Decimal `json:"recipient_amount"`
	FeeTotal        decimal.Decimal `json:"fee_total"`
	Currency        string          `json:"currency"`
}

// ToConversionResponse converts a domain conversion result.
func ToConversionResponse(r *domain.ConversionResult) ConversionResponse {
	return ConversionResponse{
		AmountUSD:       r.AmountUSD,
		RecipientAmount: r.RecipientAmount,
		FeeTotal:        r.FeeTotal,
		Currency:        r.Currency,
	}
}
