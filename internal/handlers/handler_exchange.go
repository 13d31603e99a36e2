package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/helvita/ledger-backend/internal/core/ports/services"
	"github.com/helvita/ledger-backend/internal/dto"
	"github.com/helvita/ledger-backend/internal/middleware"
)

// exchangeHandler handles currency exchange and rate quote requests.
type exchangeHandler struct {
	bankService portssvc.BankIntegrationSvcFacade
	rateService portssvc.ExchangeRateSvcFacade
}

func newExchangeHandler(bs portssvc.BankIntegrationSvcFacade, rs portssvc.ExchangeRateSvcFacade) *exchangeHandler {
	return &exchangeHandler{bankService: bs, rateService: rs}
}

// registerExchangeRoutes registers the authenticated exchange route.
func registerExchangeRoutes(rg *gin.RouterGroup, bankService portssvc.BankIntegrationSvcFacade, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeHandler(bankService, rateService)
	rg.POST("/exchange", h.exchange)
}

// registerRateQuoteRoute registers the public rate quote route.
func registerRateQuoteRoute(r *gin.Engine, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeHandler(nil, rateService)
	r.GET("/api/v1/exchange/rate", h.rateQuote)
}

// exchange godoc
// @Summary Exchange between currencies
// @Description Converts funds between two of the user's accounts held in different currencies. The fee is deducted from the source amount; the remainder converts at the quoted rate. Both legs commit atomically.
// @Tags exchange
// @Accept json
// @Produce json
// @Param exchange body dto.ExchangeRequest true "Exchange details"
// @Success 200 {object} dto.ExchangeResult
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 422 {object} ErrorResponse "Insufficient balance"
// @Failure 502 {object} ErrorResponse "No rate available"
// @Security BearerAuth
// @Router /exchange [post]
func (h *exchangeHandler) exchange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for exchange", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.bankService.ExchangeCurrency(c.Request.Context(), userID, req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// rateQuote godoc
// @Summary Quote an exchange rate
// @Description Returns the current rate for a currency pair. With an amount, the response includes the fee breakdown and converted amount.
// @Tags exchange
// @Produce json
// @Param from query string true "Source currency code"
// @Param to query string true "Target currency code"
// @Param amount query number false "Amount to quote"
// @Success 200 {object} dto.RateQuoteResponse
// @Failure 400 {object} ErrorResponse "Unsupported currency"
// @Failure 502 {object} ErrorResponse "No rate available"
// @Router /exchange/rate [get]
func (h *exchangeHandler) rateQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.RateQuoteParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for rateQuote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp := dto.RateQuoteResponse{
		FromCurrency:  params.From,
		ToCurrency:    params.To,
		FeePercentage: h.rateService.DefaultFeePercentage(),
		Timestamp:     time.Now().UTC(),
	}

	if params.Amount.IsPositive() {
		quote, err := h.rateService.ConvertAmount(c.Request.Context(), params.Amount, params.From, params.To)
		if err != nil {
			respondError(c, err)
			return
		}
		resp.Rate = quote.Rate
		resp.OriginalAmount = &quote.OriginalAmount
		resp.Fee = &quote.Fee
		resp.NetAmount = &quote.NetAmount
		resp.ConvertedAmount = &quote.ConvertedAmount
	} else {
		rate, err := h.rateService.GetExchangeRate(c.Request.Context(), params.From, params.To)
		if err != nil {
			respondError(c, err)
			return
		}
		resp.Rate = rate
	}

	c.JSON(http.StatusOK, resp)
}
