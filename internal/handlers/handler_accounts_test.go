package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/helvita/ledger-backend/internal/apperrors"
	"github.com/helvita/ledger-backend/internal/core/domain"
	portssvc "github.com/helvita/ledger-backend/internal/core/ports/services"
	"github.com/helvita/ledger-backend/internal/dto"
	"github.com/helvita/ledger-backend/internal/handlers"
	"github.com/helvita/ledger-backend/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) CreateAccount(ctx context.Context, userID, currencyCode string) (*domain.CurrencyAccount, error) {
	args := m.Called(ctx, userID, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyAccount), args.Error(1)
}

func (m *MockCurrencyService) ListAccounts(ctx context.Context, userID string) ([]domain.CurrencyAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyAccount), args.Error(1)
}

func (m *MockCurrencyService) GetAccount(ctx context.Context, userID, accountID string) (*domain.CurrencyAccount, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyAccount), args.Error(1)
}

func (m *MockCurrencyService) DeactivateAccount(ctx context.Context, userID, accountID string) error {
	args := m.Called(ctx, userID, accountID)
	return args.Error(0)
}

func (m *MockCurrencyService) ProcessTransaction(ctx context.Context, userID, accountID string, txnType domain.TransactionType, amount decimal.Decimal, description string, metadata domain.TransactionMetadata) (*domain.CurrencyTransaction, decimal.Decimal, error) {
	args := m.Called(ctx, userID, accountID, txnType, amount, description, metadata)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.CurrencyTransaction), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockCurrencyService) TransferBetweenAccounts(ctx context.Context, userID, fromAccountID, toAccountID string, amount decimal.Decimal, description string) error {
	args := m.Called(ctx, userID, fromAccountID, toAccountID, amount, description)
	return args.Error(0)
}

func (m *MockCurrencyService) ProcessLegs(ctx context.Context, userID string, legs []portssvc.LedgerLeg) ([]domain.CurrencyTransaction, error) {
	args := m.Called(ctx, userID, legs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyTransaction), args.Error(1)
}

func (m *MockCurrencyService) GetAccountBalance(ctx context.Context, userID, accountID string) (*dto.BalanceResponse, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BalanceResponse), args.Error(1)
}

func (m *MockCurrencyService) ListTransactions(ctx context.Context, userID, accountID string, page, limit int) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, accountID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockCurrencyService) ListRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.CurrencyTransaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyTransaction), args.Error(1)
}

func (m *MockCurrencyService) SupportedCurrencies() []domain.Currency {
	args := m.Called()
	return args.Get(0).([]domain.Currency)
}

// Ensure mock implements the interface
var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockCurrencyService *MockCurrencyService
	jwtSecret           string
}

// generateTestToken creates a signed JWT for test requests.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ledger-backend-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockCurrencyService = new(MockCurrencyService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterAccountRoutes(v1, suite.mockCurrencyService)
}

func (suite *AccountHandlerTestSuite) authedRequest(method, url string, body []byte, userID string) *http.Request {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Accept", "application/json")
	return req
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestListTransactions_Success() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	expected := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{
				TransactionID: "TXN-USD-TEST-1",
				AccountID:     accountID,
				Type:          domain.Deposit,
				Amount:        decimal.NewFromInt(100),
				CurrencyCode:  "USD",
				BalanceAfter:  decimal.NewFromInt(100),
				Status:        domain.StatusCompleted,
				CreatedAt:     time.Now(),
			},
		},
		Pagination: dto.Pagination{Page: 1, Limit: 20, Total: 1, Pages: 1},
	}

	suite.mockCurrencyService.On("ListTransactions",
		mock.Anything, userID, accountID, 1, 20,
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/accounts/%s/transactions", accountID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, url, nil, userID))

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ListTransactionsResponse
	err := json.Unmarshal(w.Body.Bytes(), &body)
	suite.Require().NoError(err)
	suite.Len(body.Transactions, 1)
	suite.Equal("TXN-USD-TEST-1", body.Transactions[0].TransactionID)
	suite.Equal(int64(1), body.Pagination.Total)

	suite.mockCurrencyService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockCurrencyService.On("GetAccount", mock.Anything, userID, accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/accounts/%s", accountID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, url, nil, userID))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockCurrencyService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeposit_Success() {
	userID := uuid.NewString()
	accountID := uuid.NewString()
	amount := decimal.NewFromInt(250)

	txn := &domain.CurrencyTransaction{
		TransactionID: "TXN-USD-TEST-2",
		UserID:        userID,
		AccountID:     accountID,
		Type:          domain.Deposit,
		Amount:        amount,
		CurrencyCode:  "USD",
		BalanceAfter:  decimal.NewFromInt(350),
		Status:        domain.StatusCompleted,
	}

	suite.mockCurrencyService.On("ProcessTransaction",
		mock.Anything, userID, accountID, domain.Deposit,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(amount) }),
		"Payday",
		domain.TransactionMetadata{},
	).Return(txn, decimal.NewFromInt(350), nil).Once()

	body, _ := json.Marshal(map[string]interface{}{
		"amount":      "250",
		"description": "Payday",
	})
	url := fmt.Sprintf("/api/v1/accounts/%s/deposit", accountID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, url, body, userID))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.MutationResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	suite.Require().NoError(err)
	suite.Equal("TXN-USD-TEST-2", resp.Transaction.TransactionID)
	suite.True(resp.NewBalance.Equal(decimal.NewFromInt(350)))

	suite.mockCurrencyService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestWithdraw_InsufficientBalance() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockCurrencyService.On("ProcessTransaction",
		mock.Anything, userID, accountID, domain.Withdrawal,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(900)) }),
		"",
		domain.TransactionMetadata{},
	).Return(nil, decimal.Zero, apperrors.ErrInsufficientBalance).Once()

	body, _ := json.Marshal(map[string]interface{}{"amount": "900"})
	url := fmt.Sprintf("/api/v1/accounts/%s/withdraw", accountID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, url, body, userID))

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockCurrencyService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestTransfer_InsufficientBalance() {
	userID := uuid.NewString()
	fromID := uuid.NewString()
	toID := uuid.NewString()

	suite.mockCurrencyService.On("TransferBetweenAccounts",
		mock.Anything, userID, fromID, toID,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(500)) }),
		"",
	).Return(apperrors.ErrInsufficientBalance).Once()

	body, _ := json.Marshal(map[string]interface{}{
		"fromAccountID": fromID,
		"toAccountID":   toID,
		"amount":        "500",
	})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/accounts/transfer", body, userID))

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockCurrencyService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_Success() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockCurrencyService.On("DeactivateAccount", mock.Anything, userID, accountID).
		Return(nil).Once()

	url := fmt.Sprintf("/api/v1/accounts/%s", accountID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodDelete, url, nil, userID))

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockCurrencyService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockCurrencyService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
