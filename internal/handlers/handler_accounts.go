package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/helvita/ledger-backend/internal/core/domain"
	portssvc "github.com/helvita/ledger-backend/internal/core/ports/services"
	"github.com/helvita/ledger-backend/internal/dto"
	"github.com/helvita/ledger-backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// accountHandler handles HTTP requests for currency accounts and their
// ledger history.
type accountHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

func newAccountHandler(cs portssvc.CurrencySvcFacade) *accountHandler {
	return &accountHandler{currencyService: cs}
}

// RegisterAccountRoutes registers routes related to currency accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newAccountHandler(currencyService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.DELETE("/:id", h.deactivateAccount)
		accounts.GET("/:id/balance", h.getBalance)
		accounts.GET("/:id/transactions", h.listTransactions)
		accounts.POST("/:id/deposit", h.deposit)
		accounts.POST("/:id/withdraw", h.withdraw)
		accounts.POST("/transfer", h.transfer)
	}
}

// createAccount godoc
// @Summary Open a currency account
// @Description Opens a new account in the given currency. One active account per currency.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Unsupported currency"
// @Failure 409 {object} ErrorResponse "Account already exists for currency"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	account, err := h.currencyService.CreateAccount(c.Request.Context(), userID, req.CurrencyCode)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List currency accounts
// @Description Lists the user's active accounts sorted by currency.
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.ListAccountsResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	accounts, err := h.currencyService.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToAccountResponses(accounts)})
}

// getAccount godoc
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	account, err := h.currencyService.GetAccount(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Close an account
// @Description Soft-closes a zero-balance account; the ledger history stays.
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 204 "Account closed"
// @Failure 400 {object} ErrorResponse "Account still holds a balance"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	accountID := c.Param("id")
	if err := h.currencyService.DeactivateAccount(c.Request.Context(), userID, accountID); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Account closed", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}

// getBalance godoc
// @Summary Get an account balance
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	balance, err := h.currencyService.GetAccountBalance(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

// listTransactions godoc
// @Summary List account transactions
// @Description Returns one page of the account's ledger history, newest first.
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/transactions [get]
func (h *accountHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid pagination parameters"})
		return
	}

	page, err := h.currencyService.ListTransactions(c.Request.Context(), userID, c.Param("id"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// deposit godoc
// @Summary Deposit into an account
// @Description Credits the account and records the ledger entry atomically.
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param deposit body dto.MutationRequest true "Deposit details"
// @Success 200 {object} dto.MutationResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/deposit [post]
func (h *accountHandler) deposit(c *gin.Context) {
	h.mutate(c, domain.Deposit)
}

// withdraw godoc
// @Summary Withdraw from an account
// @Description Debits the account and records the ledger entry atomically.
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param withdrawal body dto.MutationRequest true "Withdrawal details"
// @Success 200 {object} dto.MutationResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 422 {object} ErrorResponse "Insufficient balance"
// @Security BearerAuth
// @Router /accounts/{id}/withdraw [post]
func (h *accountHandler) withdraw(c *gin.Context) {
	h.mutate(c, domain.Withdrawal)
}

func (h *accountHandler) mutate(c *gin.Context, txnType domain.TransactionType) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.MutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ledger mutation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	accountID := c.Param("id")
	txn, newBalance, err := h.currencyService.ProcessTransaction(c.Request.Context(), userID, accountID, txnType, req.Amount, req.Description, domain.TransactionMetadata{})
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Ledger mutation completed",
		slog.String("account_id", accountID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txnType)))
	c.JSON(http.StatusOK, dto.MutationResponse{
		Transaction: dto.ToTransactionResponse(txn),
		NewBalance:  newBalance,
	})
}

// transferRequest is the body for moving funds between two same-currency
// accounts.
type transferRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description"`
}

// transfer godoc
// @Summary Transfer between own accounts
// @Description Moves funds between two of the user's accounts in the same currency, atomically.
// @Tags accounts
// @Accept json
// @Produce json
// @Param transfer body transferRequest true "Transfer details"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 422 {object} ErrorResponse "Insufficient balance"
// @Security BearerAuth
// @Router /accounts/transfer [post]
func (h *accountHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	err := h.currencyService.TransferBetweenAccounts(c.Request.Context(), userID, req.FromAccountID, req.ToAccountID, req.Amount, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Transfer completed",
		slog.String("from_account", req.FromAccountID),
		slog.String("to_account", req.ToAccountID))
	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}
