package services

import (
	portsrepo "github.com/helvita/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/helvita/ledger-backend/internal/core/ports/services"
	"github.com/helvita/ledger-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rateProvider portssvc.RateProvider, bankProvider portssvc.BankLinkProvider, publisher portssvc.EventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.AccountRepo, repos.TransactionRepo, publisher)
	container.ExchangeRate = NewExchangeRateService(rateProvider, cfg.ExchangeFeePercent)
	container.Bank = NewBankIntegrationService(repos.UserRepo, bankProvider, container.Currency, container.ExchangeRate)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.Events = publisher

	return container
}
