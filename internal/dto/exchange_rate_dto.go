package dto

import (
	"time"

	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertExchangeRateRequest inserts or refreshes one rate row. Target may be
// a currency code or one of the pseudo-codes FEE / BTCUSD.
type UpsertExchangeRateRequest struct {
	Base   string          `json:"base" binding:"omitempty,alpha,len=3"`
	Target string          `json:"target" binding:"required,alpha,min=3,max=10"`
	Rate   decimal.Decimal `json:"rate" binding:"required"`
}

// ExchangeRateResponse is the API shape of one stored rate.
type ExchangeRateResponse struct {
	ID        int64           `json:"id"`
	Base      string          `json:"base"`
	Target    string          `json:"target"`
	Rate      decimal.Decimal `json:"rate"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToExchangeRateResponse converts a domain rate to its API shape.
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ID:        rate.ID,
		Base:      rate.BaseCurrency,
		Target:    rate.TargetCurrency,
		Rate:      rate.Rate,
		UpdatedAt: rate.UpdatedAt,
	}
}

// ToListExchangeRateResponse converts a slice of domain rates.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
