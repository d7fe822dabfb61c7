package services_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kahawapay/kahawapay_backend/internal/apperrors"
	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	portssvc "github.com/kahawapay/kahawapay_backend/internal/core/ports/services"
	"github.com/kahawapay/kahawapay_backend/internal/core/services"
	"github.com/kahawapay/kahawapay_backend/internal/dto"
	"github.com/kahawapay/kahawapay_backend/pkg/rabbitmq"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockRateRepo  *MockExchangeRateRepository
	mockTxRepo    *MockTransactionRepository
	mockUserRepo  *MockUserRepository
	mockPublisher *MockPublisher
	service       portssvc.TransactionSvcFacade
	ctx           context.Context
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockTxRepo = new(MockTransactionRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockPublisher = new(MockPublisher)
	suite.ctx = context.Background()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	conversion := services.NewConversionService(suite.mockRateRepo)
	guest := services.NewGuestService(suite.mockUserRepo, decimal.NewFromInt(100))

	suite.service = services.NewTransactionService(
		suite.mockTxRepo,
		conversion,
		guest,
		[]string{"KES", "UGX", "TZS"},
		suite.mockPublisher,
		logger,
	)
}

// capSnapshot makes 0.001 BTC come out at exactly 100 USD, the guest cap.
func capSnapshot() domain.RateSnapshot {
	return domain.RateSnapshot{
		domain.CodeFee:    decimal.NewFromFloat(0.02),
		"KES":             decimal.NewFromInt(129),
		domain.CodeBTCUSD: decimal.NewFromInt(100000),
	}
}

func (suite *TransactionServiceTestSuite) expectSnapshot(currency string) {
	suite.mockRateRepo.On("GetRateSnapshot", mock.Anything, domain.CodeFee, currency, domain.CodeBTCUSD).
		Return(capSnapshot(), nil).Once()
}

func validRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		AmountCryptoBTC: decimal.NewFromFloat(0.001),
		Currency:        "KES",
		RecipientMSISDN: "254712345678",
	}
}

func (suite *TransactionServiceTestSuite) TestCreateGuestTransaction_AtCapSucceeds() {
	suite.expectSnapshot("KES")

	identity := &domain.GuestIdentity{UserID: 42, Sequence: 7, Email: domain.GuestEmail(7)}
	suite.mockUserRepo.On("CreateGuestIdentity", mock.Anything).Return(identity, nil).Once()

	suite.mockTxRepo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Status == domain.TransactionPending &&
			txn.UserID != nil && *txn.UserID == identity.UserID &&
			txn.GuestKey != nil && *txn.GuestKey != "" &&
			txn.AmountUSD.Equal(decimal.NewFromInt(100)) &&
			txn.RecipientMSISDN == "254712345678"
	})).Return(&domain.Transaction{ID: 1, Status: domain.TransactionPending, Currency: "KES", CreatedAt: time.Now()}, nil).Once()

	suite.mockPublisher.On("PublishTransactionEvent", mock.Anything, rabbitmq.RoutingKeyCreated, mock.Anything).
		Return(nil).Once()

	txn, ident, err := suite.service.CreateGuestTransaction(suite.ctx, validRequest())

	suite.Require().NoError(err)
	suite.Equal(int64(1), txn.ID)
	suite.Equal("guest-00007", ident.Label())
	suite.mockTxRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateGuestTransaction_OverCapRejected() {
	suite.expectSnapshot("KES")

	req := validRequest()
	// 0.0010001 BTC at 100000 USD/BTC is 100.01 USD, one cent over the cap
	req.AmountCryptoBTC = decimal.NewFromFloat(0.0010001)

	_, _, err := suite.service.CreateGuestTransaction(suite.ctx, req)

	suite.ErrorIs(err, apperrors.ErrLimitExceeded)
	suite.mockUserRepo.AssertNumberOfCalls(suite.T(), "CreateGuestIdentity", 0)
	suite.mockTxRepo.AssertNumberOfCalls(suite.T(), "CreateTransaction", 0)
}

func (suite *TransactionServiceTestSuite) TestCreateGuestTransaction_IdentityFailureAbortsCreate() {
	suite.expectSnapshot("KES")
	suite.mockUserRepo.On("CreateGuestIdentity", mock.Anything).
		Return(nil, fmt.Errorf("sequence exhausted")).Once()

	_, _, err := suite.service.CreateGuestTransaction(suite.ctx, validRequest())

	suite.Error(err)
	suite.mockTxRepo.AssertNumberOfCalls(suite.T(), "CreateTransaction", 0)
}

func (suite *TransactionServiceTestSuite) TestValidation_BadMSISDNNeverTouchesRates() {
	req := validRequest()
	req.RecipientMSISDN = "12345"

	_, err := suite.service.PreviewGuest(suite.ctx, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNumberOfCalls(suite.T(), "GetRateSnapshot", 0)
}

func (suite *TransactionServiceTestSuite) TestValidation_MSISDNNormalized() {
	suite.expectSnapshot("KES")

	req := validRequest()
	req.RecipientMSISDN = "+254-712-345-678"

	suite.mockTxRepo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.RecipientMSISDN == "254712345678"
	})).Return(&domain.Transaction{ID: 2, Status: domain.TransactionPending}, nil).Once()
	suite.mockPublisher.On("PublishTransactionEvent", mock.Anything, rabbitmq.RoutingKeyCreated, mock.Anything).
		Return(nil).Once()

	_, err := suite.service.CreateUserTransaction(suite.ctx, 9, req)

	suite.Require().NoError(err)
	suite.mockTxRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestValidation_UnsupportedCurrency() {
	req := validRequest()
	req.Currency = "EUR"

	_, err := suite.service.PreviewUser(suite.ctx, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNumberOfCalls(suite.T(), "GetRateSnapshot", 0)
}

func (suite *TransactionServiceTestSuite) TestValidation_EmptyCurrencyDefaults() {
	suite.expectSnapshot("KES")

	req := validRequest()
	req.Currency = ""

	result, err := suite.service.PreviewUser(suite.ctx, req)

	suite.Require().NoError(err)
	suite.Equal("KES", result.Currency)
}

func (suite *TransactionServiceTestSuite) TestMarkPaid_PublishesEvent() {
	paid := &domain.Transaction{ID: 3, Status: domain.TransactionPaid, AmountUSD: decimal.NewFromInt(60), Currency: "KES"}
	suite.mockTxRepo.On("MarkPaid", mock.Anything, int64(3)).Return(paid, true, nil).Once()
	suite.mockPublisher.On("PublishTransactionEvent", mock.Anything, rabbitmq.RoutingKeyPaid,
		mock.MatchedBy(func(e rabbitmq.TransactionEvent) bool {
			return e.TransactionID == 3 && e.Status == string(domain.TransactionPaid)
		})).Return(nil).Once()

	txn, err := suite.service.MarkPaid(suite.ctx, 3)

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionPaid, txn.Status)
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestMarkPaid_BrokerFailureDoesNotFailCall() {
	paid := &domain.Transaction{ID: 4, Status: domain.TransactionPaid}
	suite.mockTxRepo.On("MarkPaid", mock.Anything, int64(4)).Return(paid, true, nil).Once()
	suite.mockPublisher.On("PublishTransactionEvent", mock.Anything, rabbitmq.RoutingKeyPaid, mock.Anything).
		Return(fmt.Errorf("broker down")).Once()

	_, err := suite.service.MarkPaid(suite.ctx, 4)

	suite.NoError(err)
}

func (suite *TransactionServiceTestSuite) TestMarkPaid_RemarkKeepsPaidAtAndPublishesNothing() {
	// The repository sets paid_at via COALESCE(paid_at, NOW()), so a second
	// mark-paid returns the row with the original timestamp and changed=false.
	settledAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	paid := &domain.Transaction{ID: 8, Status: domain.TransactionPaid, PaidAt: &settledAt}
	suite.mockTxRepo.On("MarkPaid", mock.Anything, int64(8)).Return(paid, false, nil).Once()

	txn, err := suite.service.MarkPaid(suite.ctx, 8)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn.PaidAt)
	suite.True(txn.PaidAt.Equal(settledAt))
	suite.mockPublisher.AssertNumberOfCalls(suite.T(), "PublishTransactionEvent", 0)
}

func (suite *TransactionServiceTestSuite) TestArchive_InvalidTransitionPropagated() {
	suite.mockTxRepo.On("Archive", mock.Anything, int64(5)).
		Return(nil, fmt.Errorf("%w: cannot move transaction 5 from paid to archived", apperrors.ErrInvalidTransition)).Once()

	_, err := suite.service.Archive(suite.ctx, 5)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockPublisher.AssertNumberOfCalls(suite.T(), "PublishTransactionEvent", 0)
}

func (suite *TransactionServiceTestSuite) TestGuestMarkComplete_Delegates() {
	done := &domain.Transaction{ID: 6, Status: domain.TransactionPending, UserMarkedComplete: true}
	suite.mockTxRepo.On("MarkGuestComplete", mock.Anything, int64(6), "some-key").Return(done, nil).Once()

	txn, err := suite.service.GuestMarkComplete(suite.ctx, 6, "some-key")

	suite.Require().NoError(err)
	suite.True(txn.UserMarkedComplete)
	// completion never changes the payout status
	suite.Equal(domain.TransactionPending, txn.Status)
}

func (suite *TransactionServiceTestSuite) TestGetGuestStatus_KeyMismatchIsNotFound() {
	suite.mockTxRepo.On("FindGuestTransaction", mock.Anything, int64(7), "wrong-key").
		Return(nil, fmt.Errorf("%w: transaction 7", apperrors.ErrNotFound)).Once()

	_, err := suite.service.GetGuestStatus(suite.ctx, 7, "wrong-key")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
