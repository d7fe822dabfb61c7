package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kahawapay/kahawapay_backend/internal/apperrors"
	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	portsrepo "github.com/kahawapay/kahawapay_backend/internal/core/ports/repositories"
	portssvc "github.com/kahawapay/kahawapay_backend/internal/core/ports/services"
	"github.com/kahawapay/kahawapay_backend/internal/dto"
	"github.com/kahawapay/kahawapay_backend/internal/utils"
	"github.com/kahawapay/kahawapay_backend/pkg/rabbitmq"
)

// adminListLimit caps the admin listing, newest rows first.
const adminListLimit = 500

// transactionService is the ledger: it owns creation of pending transactions
// and the transitions out of pending. Monetary fields are computed once at
// creation and never touched again.
type transactionService struct {
	txRepo     portsrepo.TransactionRepository
	conversion portssvc.ConversionSvcFacade
	guest      portssvc.GuestSvcFacade
	supported  []string
	publisher  rabbitmq.Publisher
	logger     *slog.Logger
}

// NewTransactionService creates the ledger service. supportedCurrencies is
// the configured payout set; its first entry doubles as the default currency.
func NewTransactionService(
	txRepo portsrepo.TransactionRepository,
	conversion portssvc.ConversionSvcFacade,
	guest portssvc.GuestSvcFacade,
	supportedCurrencies []string,
	publisher rabbitmq.Publisher,
	logger *slog.Logger,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txRepo:     txRepo,
		conversion: conversion,
		guest:      guest,
		supported:  supportedCurrencies,
		publisher:  publisher,
		logger:     logger,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// validateRequest normalizes and validates the payload. It runs entirely
// before any rate lookup, so malformed input never touches the RateSource.
func (s *transactionService) validateRequest(req dto.CreateTransactionRequest) (msisdn, currency string, err error) {
	if req.AmountCryptoBTC.Sign() <= 0 {
		return "", "", fmt.Errorf("%w: amount_crypto_btc must be a positive number", apperrors.ErrValidation)
	}

	msisdn = utils.NormalizeMSISDN(req.RecipientMSISDN)
	if len(msisdn) != utils.MSISDNLength {
		return "", "", fmt.Errorf("%w: recipient_msisdn must be exactly 12 digits", apperrors.ErrValidation)
	}

	currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.supported[0]
	}
	if !slices.Contains(s.supported, currency) {
		return "", "", fmt.Errorf("%w: currency must be one of: %s", apperrors.ErrValidation, strings.Join(s.supported, ", "))
	}

	return msisdn, currency, nil
}

func (s *transactionService) PreviewUser(ctx context.Context, req dto.CreateTransactionRequest) (*domain.ConversionResult, error) {
	_, currency, err := s.validateRequest(req)
	if err != nil {
		return nil, err
	}
	return s.conversion.FromCrypto(ctx, req.AmountCryptoBTC, currency)
}

func (s *transactionService) PreviewGuest(ctx context.Context, req dto.CreateTransactionRequest) (*domain.ConversionResult, error) {
	result, err := s.PreviewUser(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.guest.CheckLimit(result.AmountUSD); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *transactionService) CreateUserTransaction(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	msisdn, currency, err := s.validateRequest(req)
	if err != nil {
		return nil, err
	}

	result, err := s.conversion.FromCrypto(ctx, req.AmountCryptoBTC, currency)
	if err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		UserID:          &userID,
		RecipientMSISDN: msisdn,
		AmountUSD:       result.AmountUSD,
		AmountCryptoBTC: req.AmountCryptoBTC,
		FeeTotal:        result.FeeTotal,
		RecipientAmount: result.RecipientAmount,
		Currency:        currency,
		Status:          domain.TransactionPending,
	}

	created, err := s.txRepo.CreateTransaction(ctx, txn)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.publishEvent(ctx, rabbitmq.RoutingKeyCreated, created)
	return created, nil
}

func (s *transactionService) CreateGuestTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, *domain.GuestIdentity, error) {
	msisdn, currency, err := s.validateRequest(req)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.conversion.FromCrypto(ctx, req.AmountCryptoBTC, currency)
	if err != nil {
		return nil, nil, err
	}

	// The cap is enforced on the computed USD figure, both at preview and
	// again here at create time.
	if err := s.guest.CheckLimit(result.AmountUSD); err != nil {
		return nil, nil, err
	}

	// A failed insert below leaves the issued guest row behind. Guest rows
	// carry no credentials, so the orphan is inert.
	identity, err := s.guest.IssueGuestIdentity(ctx)
	if err != nil {
		return nil, nil, err
	}

	guestKey := uuid.NewString()
	txn := domain.Transaction{
		UserID:          &identity.UserID,
		GuestKey:        &guestKey,
		RecipientMSISDN: msisdn,
		AmountUSD:       result.AmountUSD,
		AmountCryptoBTC: req.AmountCryptoBTC,
		FeeTotal:        result.FeeTotal,
		RecipientAmount: result.RecipientAmount,
		Currency:        currency,
		Status:          domain.TransactionPending,
	}

	created, err := s.txRepo.CreateTransaction(ctx, txn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create guest transaction: %w", err)
	}

	s.publishEvent(ctx, rabbitmq.RoutingKeyCreated, created)
	return created, identity, nil
}

func (s *transactionService) MarkPaid(ctx context.Context, id int64) (*domain.Transaction, error) {
	txn, changed, err := s.txRepo.MarkPaid(ctx, id)
	if err != nil {
		return nil, err
	}
	// A re-mark of an already paid transaction is a no-op; publishing again
	// would hand downstream consumers the same settlement twice.
	if changed {
		s.publishEvent(ctx, rabbitmq.RoutingKeyPaid, txn)
	}
	return txn, nil
}

func (s *transactionService) Archive(ctx context.Context, id int64) (*domain.Transaction, error) {
	txn, err := s.txRepo.Archive(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, rabbitmq.RoutingKeyArchived, txn)
	return txn, nil
}

func (s *transactionService) GuestMarkComplete(ctx context.Context, id int64, guestKey string) (*domain.Transaction, error) {
	return s.txRepo.MarkGuestComplete(ctx, id, guestKey)
}

func (s *transactionService) GetGuestStatus(ctx context.Context, id int64, guestKey string) (*domain.Transaction, error) {
	return s.txRepo.FindGuestTransaction(ctx, id, guestKey)
}

func (s *transactionService) ListTransactions(ctx context.Context) ([]domain.AdminTransactionRow, error) {
	return s.txRepo.ListTransactions(ctx, adminListLimit)
}

func (s *transactionService) Summary(ctx context.Context) ([]domain.StatusSummary, error) {
	return s.txRepo.SummarizeByStatus(ctx)
}

func (s *transactionService) ListUserTransactions(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	return s.txRepo.ListTransactionsByUser(ctx, userID)
}

// publishEvent sends a lifecycle event best-effort; the ledger state is the
// source of truth, so a broker failure is logged and swallowed.
func (s *transactionService) publishEvent(ctx context.Context, routingKey string, txn *domain.Transaction) {
	event := rabbitmq.TransactionEvent{
		TransactionID: txn.ID,
		Status:        string(txn.Status),
		AmountUSD:     txn.AmountUSD,
		Currency:      txn.Currency,
		Timestamp:     time.Now(),
	}
	if err := s.publisher.PublishTransactionEvent(ctx, routingKey, event); err != nil {
		s.logger.Error("failed to publish transaction event",
			slog.String("routing_key", routingKey),
			slog.Int64("transaction_id", txn.ID),
			slog.String("error", err.Error()))
	}
}
