package mapping

import (
	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	"github.com/kahawapay/kahawapay_backend/internal/models"
)

// ToModelTransaction converts a domain transaction to its persistence shape.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		ID:                 d.ID,
		UserID:             d.UserID,
		GuestKey:           d.GuestKey,
		RecipientMSISDN:    d.RecipientMSISDN,
		AmountUSD:          d.AmountUSD,
		AmountCryptoBTC:    d.AmountCryptoBTC,
		FeeTotal:           d.FeeTotal,
		RecipientAmount:    d.RecipientAmount,
		Currency:           d.Currency,
		Status:             string(d.Status),
		UserMarkedComplete: d.UserMarkedComplete,
		UserCompletedAt:    d.UserCompletedAt,
		PaidAt:             d.PaidAt,
		CreatedAt:          d.CreatedAt,
	}
}

// ToDomainTransaction converts a persistence row back into the domain shape.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:                 m.ID,
		UserID:             m.UserID,
		GuestKey:           m.GuestKey,
		RecipientMSISDN:    m.RecipientMSISDN,
		AmountUSD:          m.AmountUSD,
		AmountCryptoBTC:    m.AmountCryptoBTC,
		FeeTotal:           m.FeeTotal,
		RecipientAmount:    m.RecipientAmount,
		Currency:           m.Currency,
		Status:             domain.TransactionStatus(m.Status),
		UserMarkedComplete: m.UserMarkedComplete,
		UserCompletedAt:    m.UserCompletedAt,
		PaidAt:             m.PaidAt,
		CreatedAt:          m.CreatedAt,
	}
}
