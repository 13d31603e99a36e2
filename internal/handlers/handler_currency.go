package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/helvita/ledger-backend/internal/core/ports/services"
	"github.com/helvita/ledger-backend/internal/dto"
)

// currencyHandler serves the static supported-currency set.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

// registerCurrencyRoutes registers the public currency routes.
func registerCurrencyRoutes(r *gin.Engine, currencyService portssvc.CurrencySvcFacade) {
	h := &currencyHandler{currencyService: currencyService}
	r.GET("/api/v1/currencies", h.listCurrencies)
}

// listCurrencies godoc
// @Summary List supported currencies
// @Tags currencies
// @Produce json
// @Success 200 {object} dto.SupportedCurrenciesResponse
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToSupportedCurrenciesResponse(h.currencyService.SupportedCurrencies()))
}
