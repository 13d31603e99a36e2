package repositories

// RepositoryProvider bundles the concrete repositories behind their port
// interfaces for injection into the service layer.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryWithTx
	TransactionRepo TransactionRepository
	UserRepo        UserRepository
}
