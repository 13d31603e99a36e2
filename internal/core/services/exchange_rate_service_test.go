package services_test

import (
	"context"
	"testing"

	"github.com/helvita/ledger-backend/internal/apperrors"
	portssvc "github.com/helvita/ledger-backend/internal/core/ports/services"
	"github.com/helvita/ledger-backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) GetRates(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, baseCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockProvider *MockRateProvider
	service      portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockProvider = new(MockRateProvider)
	suite.service = services.NewExchangeRateService(suite.mockProvider, decimal.RequireFromString("0.5"))
}

// --- GetExchangeRate ---

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_SameCurrency() {
	rate, err := suite.service.GetExchangeRate(context.Background(), "USD", "USD")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
	// Identical codes never hit the provider
	suite.mockProvider.AssertNotCalled(suite.T(), "GetRates", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_CaseInsensitive() {
	rate, err := suite.service.GetExchangeRate(context.Background(), "usd", "Usd")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_UnsupportedCurrency() {
	rate, err := suite.service.GetExchangeRate(context.Background(), "USD", "XAU")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.True(rate.IsZero())
	suite.mockProvider.AssertNotCalled(suite.T(), "GetRates", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_LiveRate() {
	ctx := context.Background()
	live := decimal.RequireFromString("0.9123")

	suite.mockProvider.On("GetRates", ctx, "USD").
		Return(map[string]decimal.Decimal{"EUR": live}, nil).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "USD", "EUR")

	suite.Require().NoError(err)
	suite.True(rate.Equal(live))
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_FallbackOnProviderError() {
	ctx := context.Background()

	suite.mockProvider.On("GetRates", ctx, "USD").
		Return(nil, assert.AnError).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "USD", "CAD")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.RequireFromString("1.36")))
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_FallbackOnMissingCurrency() {
	ctx := context.Background()

	// Provider answers but without the requested currency
	suite.mockProvider.On("GetRates", ctx, "EUR").
		Return(map[string]decimal.Decimal{"USD": decimal.RequireFromString("1.07")}, nil).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "EUR", "GBP")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.RequireFromString("0.85")))
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_InverseFallback() {
	ctx := context.Background()

	// CAD has no direct fallback table; the USD table quotes CAD at 1.36,
	// so CAD -> USD derives as 1/1.36 rounded to 8 places.
	suite.mockProvider.On("GetRates", ctx, "CAD").
		Return(nil, assert.AnError).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "CAD", "USD")

	suite.Require().NoError(err)
	expected := decimal.NewFromInt(1).DivRound(decimal.RequireFromString("1.36"), 8)
	suite.True(rate.Equal(expected))
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_NoFallbackPair() {
	ctx := context.Background()

	// Neither CAD nor JPY has a fallback table of its own
	suite.mockProvider.On("GetRates", ctx, "CAD").
		Return(nil, assert.AnError).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "CAD", "JPY")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrExternalService)
	suite.True(rate.IsZero())
}

// --- CalculateFee ---

func (suite *ExchangeRateServiceTestSuite) TestCalculateFee() {
	fee := suite.service.CalculateFee(decimal.NewFromInt(200), decimal.RequireFromString("0.5"))

	suite.True(fee.Equal(decimal.NewFromInt(1)))
}

func (suite *ExchangeRateServiceTestSuite) TestDefaultFeePercentage() {
	suite.True(suite.service.DefaultFeePercentage().Equal(decimal.RequireFromString("0.5")))
}

// --- ConvertAmount ---

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount() {
	ctx := context.Background()

	suite.mockProvider.On("GetRates", ctx, "USD").
		Return(map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.90")}, nil).Once()

	result, err := suite.service.ConvertAmount(ctx, decimal.NewFromInt(100), "USD", "EUR")

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal("USD", result.FromCurrency)
	suite.Equal("EUR", result.ToCurrency)
	// 0.5% of 100 = 0.5 fee, 99.5 net, 99.5 * 0.90 = 89.55 converted
	suite.True(result.Fee.Equal(decimal.RequireFromString("0.5")))
	suite.True(result.NetAmount.Equal(decimal.RequireFromString("99.5")))
	suite.True(result.ConvertedAmount.Equal(decimal.RequireFromString("89.55")))
	suite.True(result.Rate.Equal(decimal.RequireFromString("0.90")))
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_NonPositiveAmount() {
	result, err := suite.service.ConvertAmount(context.Background(), decimal.Zero, "USD", "EUR")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProvider.AssertNotCalled(suite.T(), "GetRates", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_RateUnavailable() {
	ctx := context.Background()

	suite.mockProvider.On("GetRates", ctx, "JPY").
		Return(nil, assert.AnError).Once()

	result, err := suite.service.ConvertAmount(ctx, decimal.NewFromInt(1000), "JPY", "CNY")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrExternalService)
}

// --- Run Suite ---
func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
