package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kahawapay/kahawapay_backend/internal/apperrors"
	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	portssvc "github.com/kahawapay/kahawapay_backend/internal/core/ports/services"
	"github.com/kahawapay/kahawapay_backend/internal/core/services"
)

type ConversionServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockExchangeRateRepository
	service      portssvc.ConversionSvcFacade
	ctx          context.Context
}

func (suite *ConversionServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.service = services.NewConversionService(suite.mockRateRepo)
	suite.ctx = context.Background()
}

// kesSnapshot is the reference rate set used across tests: 2% fee, 129 KES
// per USD, 60000 USD per BTC.
func kesSnapshot() domain.RateSnapshot {
	return domain.RateSnapshot{
		domain.CodeFee:    decimal.NewFromFloat(0.02),
		"KES":             decimal.NewFromInt(129),
		domain.CodeBTCUSD: decimal.NewFromInt(60000),
	}
}

func (suite *ConversionServiceTestSuite) TestFromCrypto_ReferenceScenario() {
	suite.mockRateRepo.On("GetRateSnapshot", mock.Anything, domain.CodeFee, "KES", domain.CodeBTCUSD).
		Return(kesSnapshot(), nil).Once()

	result, err := suite.service.FromCrypto(suite.ctx, decimal.NewFromFloat(0.001), "KES")

	suite.Require().NoError(err)
	suite.Equal("60.00", result.AmountUSD.StringFixed(2))
	suite.Equal("7585.20", result.RecipientAmount.StringFixed(2))
	suite.Equal("154.80", result.FeeTotal.StringFixed(2))
	suite.Equal("KES", result.Currency)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestFromCrypto_RecipientAmountStrictlyIncreases() {
	amounts := []string{"0.0001", "0.0005", "0.001", "0.0025", "0.01", "0.1"}
	suite.mockRateRepo.On("GetRateSnapshot", mock.Anything, domain.CodeFee, "KES", domain.CodeBTCUSD).
		Return(kesSnapshot(), nil).Times(len(amounts))

	prev := decimal.Zero
	for _, amount := range amounts {
		result, err := suite.service.FromCrypto(suite.ctx, decimal.RequireFromString(amount), "KES")

		suite.Require().NoError(err)
		suite.True(result.RecipientAmount.GreaterThan(prev),
			"recipient for %s BTC is %s, not above %s", amount, result.RecipientAmount, prev)
		prev = result.RecipientAmount
	}
}

func (suite *ConversionServiceTestSuite) TestFromUSD_FeeAppliedOnce() {
	suite.mockRateRepo.On("GetRateSnapshot", mock.Anything, domain.CodeFee, "KES").
		Return(kesSnapshot(), nil).Once()

	result, err := suite.service.FromUSD(suite.ctx, decimal.NewFromInt(60), "KES")

	suite.Require().NoError(err)
	// recipient + fee must equal the gross local amount
	gross := decimal.NewFromInt(60).Mul(decimal.NewFromInt(129))
	suite.True(result.RecipientAmount.Add(result.FeeTotal).Equal(gross),
		"recipient %s + fee %s != gross %s", result.RecipientAmount, result.FeeTotal, gross)
}

func (suite *ConversionServiceTestSuite) TestFromLocalNet_InvertsFromUSD() {
	suite.mockRateRepo.On("GetRateSnapshot", mock.Anything, domain.CodeFee, "KES").
		Return(kesSnapshot(), nil).Twice()

	forward, err := suite.service.FromUSD(suite.ctx, decimal.NewFromInt(60), "KES")
	suite.Require().NoError(err)

	back, err := suite.service.FromLocalNet(suite.ctx, forward.RecipientAmount, "KES")
	suite.Require().NoError(err)

	diff := back.AmountUSD.Sub(decimal.NewFromInt(60)).Abs()
	suite.True(diff.LessThanOrEqual(decimal.NewFromFloat(0.01)),
		"round trip drifted by %s", diff)
}

func (suite *ConversionServiceTestSuite) TestFromUSD_USDNeedsNoStoredRate() {
	snap := domain.RateSnapshot{domain.CodeFee: decimal.NewFromFloat(0.02)}
	suite.mockRateRepo.On("GetRateSnapshot", mock.Anything, domain.CodeFee).
		Return(snap, nil).Once()

	result, err := suite.service.FromUSD(suite.ctx, decimal.NewFromInt(100), "USD")

	suite.Require().NoError(err)
	suite.Equal("98.00", result.RecipientAmount.StringFixed(2))
	suite.Equal("2.00", result.FeeTotal.StringFixed(2))
}

func (suite *ConversionServiceTestSuite) TestFromUSD_MissingFeeRate() {
	snap := domain.RateSnapshot{"KES": decimal.NewFromInt(129)}
	suite.mockRateRepo.On("GetRateSnapshot", mock.Anything, domain.CodeFee, "KES").
		Return(snap, nil).Once()

	_, err := suite.service.FromUSD(suite.ctx, decimal.NewFromInt(60), "KES")

	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
}

func (suite *ConversionServiceTestSuite) TestFromUSD_MissingCurrencyRate() {
	snap := domain.RateSnapshot{domain.CodeFee: decimal.NewFromFloat(0.02)}
	suite.mockRateRepo.On("GetRateSnapshot", mock.Anything, domain.CodeFee, "UGX").
		Return(snap, nil).Once()

	_, err := suite.service.FromUSD(suite.ctx, decimal.NewFromInt(60), "UGX")

	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
}

func (suite *ConversionServiceTestSuite) TestFromLocalNet_DegenerateFee() {
	snap := domain.RateSnapshot{
		domain.CodeFee: decimal.NewFromInt(1),
		"KES":          decimal.NewFromInt(129),
	}
	suite.mockRateRepo.On("GetRateSnapshot", mock.Anything, domain.CodeFee, "KES").
		Return(snap, nil).Once()

	_, err := suite.service.FromLocalNet(suite.ctx, decimal.NewFromInt(1000), "KES")

	suite.ErrorIs(err, apperrors.ErrDegenerateFee)
}

func (suite *ConversionServiceTestSuite) TestNonPositiveAmountsRejectedBeforeRateLookup() {
	_, err := suite.service.FromUSD(suite.ctx, decimal.Zero, "KES")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.FromLocalNet(suite.ctx, decimal.NewFromInt(-5), "KES")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.FromCrypto(suite.ctx, decimal.Zero, "KES")
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRateRepo.AssertNumberOfCalls(suite.T(), "GetRateSnapshot", 0)
}

func (suite *ConversionServiceTestSuite) TestConvert_Dispatch() {
	suite.mockRateRepo.On("GetRateSnapshot", mock.Anything, domain.CodeFee, "KES", domain.CodeBTCUSD).
		Return(kesSnapshot(), nil).Once()

	result, err := suite.service.Convert(suite.ctx, domain.DirectionCrypto, decimal.NewFromFloat(0.001), "KES")

	suite.Require().NoError(err)
	suite.Equal("60.00", result.AmountUSD.StringFixed(2))
}

func (suite *ConversionServiceTestSuite) TestConvert_UnknownDirection() {
	_, err := suite.service.Convert(suite.ctx, "sideways", decimal.NewFromInt(1), "KES")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestConversionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConversionServiceTestSuite))
}
