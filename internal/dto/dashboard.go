package dto

// DashboardResponse aggregates the data the account overview screen needs
// in a single round trip.
type DashboardResponse struct {
	Accounts           []AccountResponse     `json:"accounts"`
	RecentTransactions []TransactionResponse `json:"recentTransactions"`
	Bank               BankInfoResponse      `json:"bank"`
}
