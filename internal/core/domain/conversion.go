package domain

import "github.com/shopspring/decimal"

// ConversionDirection selects the entry point of a conversion.
type ConversionDirection string

const (
	DirectionUSD      ConversionDirection = "usd"
	DirectionLocalNet ConversionDirection = "local_net"
	DirectionCrypto   ConversionDirection = "crypto"
)

// ConversionResult carries the three settlement figures of a conversion.
// RecipientAmount and FeeTotal are in the target local currency and satisfy
// recipientAmount + feeTotal = amountUSD * usd2local before rounding.
// All three fields are rounded to 2dp at the point of output only.
type ConversionResult struct {
	AmountUSD       decimal.Decimal `json:"amount_usd"`
	RecipientAmount decimal.Decimal `json:"recipient_amount"`
	FeeTotal        decimal.Decimal `json:"fee_total"`
	Currency        string          `json:"currency"`
}
