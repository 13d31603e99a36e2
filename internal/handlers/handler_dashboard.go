package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/helvita/ledger-backend/internal/core/ports/services"
	"github.com/helvita/ledger-backend/internal/dto"
)

const recentTransactionLimit = 10

// dashboardHandler aggregates the overview screen data.
type dashboardHandler struct {
	currencyService portssvc.CurrencySvcFacade
	bankService     portssvc.BankIntegrationSvcFacade
}

func newDashboardHandler(cs portssvc.CurrencySvcFacade, bs portssvc.BankIntegrationSvcFacade) *dashboardHandler {
	return &dashboardHandler{currencyService: cs, bankService: bs}
}

// registerDashboardRoutes registers the dashboard route.
func registerDashboardRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade, bankService portssvc.BankIntegrationSvcFacade) {
	h := newDashboardHandler(currencyService, bankService)
	rg.GET("/dashboard", h.dashboard)
}

// dashboard godoc
// @Summary Account overview
// @Description Returns the user's accounts, recent transactions, and bank link state in one call.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) dashboard(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	accounts, err := h.currencyService.ListAccounts(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	recent, err := h.currencyService.ListRecentTransactions(ctx, userID, recentTransactionLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	bankInfo, err := h.bankService.GetBankAccountInfo(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DashboardResponse{
		Accounts:           dto.ToAccountResponses(accounts),
		RecentTransactions: dto.ToTransactionResponses(recent),
		Bank:               *bankInfo,
	})
}
