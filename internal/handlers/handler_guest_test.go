package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kahawapay/kahawapay_backend/internal/apperrors"
	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	portssvc "github.com/kahawapay/kahawapay_backend/internal/core/ports/services"
	"github.com/kahawapay/kahawapay_backend/internal/dto"
	"github.com/kahawapay/kahawapay_backend/internal/handlers"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) PreviewUser(ctx context.Context, req dto.CreateTransactionRequest) (*domain.ConversionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}
func (m *MockTransactionService) PreviewGuest(ctx context.Context, req dto.CreateTransactionRequest) (*domain.ConversionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}
func (m *MockTransactionService) CreateUserTransaction(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) CreateGuestTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, *domain.GuestIdentity, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).(*domain.GuestIdentity), args.Error(2)
}
func (m *MockTransactionService) MarkPaid(ctx context.Context, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) Archive(ctx context.Context, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GuestMarkComplete(ctx context.Context, id int64, guestKey string) (*domain.Transaction, error) {
	args := m.Called(ctx, id, guestKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GetGuestStatus(ctx context.Context, id int64, guestKey string) (*domain.Transaction, error) {
	args := m.Called(ctx, id, guestKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context) ([]domain.AdminTransactionRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdminTransactionRow), args.Error(1)
}
func (m *MockTransactionService) Summary(ctx context.Context) ([]domain.StatusSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusSummary), args.Error(1)
}
func (m *MockTransactionService) ListUserTransactions(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite ---
type GuestHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockTransactionService *MockTransactionService
}

func (suite *GuestHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()

	suite.router = gin.New()
	suite.mockTransactionService = new(MockTransactionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterGuestRoutes(v1, suite.mockTransactionService)
}

func (suite *GuestHandlerTestSuite) postJSON(url string, body any) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *GuestHandlerTestSuite) TestCreateGuestTransaction_Success() {
	guestKey := uuid.NewString()
	txn := &domain.Transaction{
		ID:              1,
		GuestKey:        &guestKey,
		RecipientMSISDN: "254712345678",
		AmountUSD:       decimal.NewFromInt(60),
		RecipientAmount: decimal.RequireFromString("7585.20"),
		FeeTotal:        decimal.RequireFromString("154.80"),
		Currency:        "KES",
		Status:          domain.TransactionPending,
	}
	identity := &domain.GuestIdentity{UserID: 42, Sequence: 7, Email: domain.GuestEmail(7)}

	suite.mockTransactionService.On("CreateGuestTransaction", mock.Anything, mock.Anything).
		Return(txn, identity, nil).Once()

	w := suite.postJSON("/api/v1/transactions/guest", gin.H{
		"amount_crypto_btc": "0.001",
		"currency":          "KES",
		"recipient_msisdn":  "254712345678",
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(1), resp.ID)
	suite.Equal(guestKey, resp.GuestKey)
	suite.Equal(identity.Email, resp.SenderEmail)
	suite.Equal("pending", resp.Status)
}

func (suite *GuestHandlerTestSuite) TestCreateGuestTransaction_BadMSISDNRejectedAtBinding() {
	w := suite.postJSON("/api/v1/transactions/guest", gin.H{
		"amount_crypto_btc": "0.001",
		"recipient_msisdn":  "12345",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransactionService.AssertNumberOfCalls(suite.T(), "CreateGuestTransaction", 0)
}

func (suite *GuestHandlerTestSuite) TestCreateGuestTransaction_OverCap() {
	suite.mockTransactionService.On("CreateGuestTransaction", mock.Anything, mock.Anything).
		Return(nil, nil, fmt.Errorf("%w: guests cannot exceed $100", apperrors.ErrLimitExceeded)).Once()

	w := suite.postJSON("/api/v1/transactions/guest", gin.H{
		"amount_crypto_btc": "0.1",
		"recipient_msisdn":  "254712345678",
	})

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *GuestHandlerTestSuite) TestMarkComplete_RequiresUUIDKey() {
	w := suite.postJSON("/api/v1/transactions/guest/complete", gin.H{
		"tx_id":     1,
		"guest_key": "not-a-uuid",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransactionService.AssertNumberOfCalls(suite.T(), "GuestMarkComplete", 0)
}

func (suite *GuestHandlerTestSuite) TestStatus_KeyMismatchIs404() {
	key := uuid.NewString()
	suite.mockTransactionService.On("GetGuestStatus", mock.Anything, int64(9), key).
		Return(nil, fmt.Errorf("%w: transaction 9", apperrors.ErrNotFound)).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions/guest/status?id=9&key="+key, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *GuestHandlerTestSuite) TestStatus_MalformedID() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions/guest/status?id=abc&key="+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransactionService.AssertNumberOfCalls(suite.T(), "GetGuestStatus", 0)
}

func TestGuestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GuestHandlerTestSuite))
}
