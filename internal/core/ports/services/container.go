package services

// ServiceContainer bundles the service facades for injection into the HTTP
// layer.
type ServiceContainer struct {
	Currency     CurrencySvcFacade
	ExchangeRate ExchangeRateSvcFacade
	Bank         BankIntegrationSvcFacade
	User         UserSvcFacade
	Token        TokenSvcFacade
	Events       EventPublisher
}
