package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/helvita/ledger-backend/internal/core/ports/services"
	"github.com/helvita/ledger-backend/internal/dto"
	"github.com/helvita/ledger-backend/internal/middleware"
)

// bankHandler handles bank-link and bank-backed funding requests.
type bankHandler struct {
	bankService portssvc.BankIntegrationSvcFacade
}

func newBankHandler(bs portssvc.BankIntegrationSvcFacade) *bankHandler {
	return &bankHandler{bankService: bs}
}

// registerBankRoutes registers routes related to the linked bank.
func registerBankRoutes(rg *gin.RouterGroup, bankService portssvc.BankIntegrationSvcFacade) {
	h := newBankHandler(bankService)

	bank := rg.Group("/bank")
	{
		bank.GET("/info", h.bankInfo)
		bank.POST("/link", h.linkBank)
		bank.DELETE("/link", h.unlinkBank)
		bank.POST("/fund", h.fund)
		bank.POST("/withdraw", h.withdraw)
	}
}

// bankInfo godoc
// @Summary Get linked bank info
// @Description Reports whether a bank is linked and lists the accounts behind the connection.
// @Tags bank
// @Produce json
// @Success 200 {object} dto.BankInfoResponse
// @Security BearerAuth
// @Router /bank/info [get]
func (h *bankHandler) bankInfo(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	info, err := h.bankService.GetBankAccountInfo(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// linkBank godoc
// @Summary Link a bank account
// @Description Validates the access token against the bank feed and stores it.
// @Tags bank
// @Accept json
// @Produce json
// @Param link body dto.LinkBankRequest true "Bank link details"
// @Success 200 {object} dto.BankInfoResponse
// @Failure 400 {object} ErrorResponse "Missing access token"
// @Failure 412 {object} ErrorResponse "No accounts behind the connection"
// @Security BearerAuth
// @Router /bank/link [post]
func (h *bankHandler) linkBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LinkBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for linkBank", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	info, err := h.bankService.LinkBank(c.Request.Context(), userID, req.AccessToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// unlinkBank godoc
// @Summary Unlink the bank account
// @Tags bank
// @Produce json
// @Success 204 "Bank unlinked"
// @Security BearerAuth
// @Router /bank/link [delete]
func (h *bankHandler) unlinkBank(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.bankService.UnlinkBank(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// fund godoc
// @Summary Fund an account from the bank
// @Description Deposits into a currency account from the user's linked bank account.
// @Tags bank
// @Accept json
// @Produce json
// @Param fund body dto.BankTransferRequest true "Funding details"
// @Success 200 {object} dto.BankTransferResult
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 412 {object} ErrorResponse "No bank linked"
// @Security BearerAuth
// @Router /bank/fund [post]
func (h *bankHandler) fund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BankTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for fund", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.bankService.FundFromBank(c.Request.Context(), userID, req.AccountID, req.Amount, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// withdraw godoc
// @Summary Withdraw to the bank
// @Description Pays out from a currency account to the user's linked bank account.
// @Tags bank
// @Accept json
// @Produce json
// @Param withdraw body dto.BankTransferRequest true "Withdrawal details"
// @Success 200 {object} dto.BankTransferResult
// @Failure 412 {object} ErrorResponse "No bank linked"
// @Failure 422 {object} ErrorResponse "Insufficient balance"
// @Security BearerAuth
// @Router /bank/withdraw [post]
func (h *bankHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BankTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.bankService.WithdrawToBank(c.Request.Context(), userID, req.AccountID, req.Amount, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
