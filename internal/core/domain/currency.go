package domain

// Currency describes one supported currency.
type Currency struct {
	Code     string `json:"code"`     // ISO 4217 code, e.g. "USD"
	Name     string `json:"name"`     // e.g. "US Dollar"
	Symbol   string `json:"symbol"`   // e.g. "$"
	Decimals int    `json:"decimals"` // display precision, 0 for JPY
}

// SupportedCurrencies is the closed set of currencies an account may hold.
// Order matters: it is the order returned to clients.
var SupportedCurrencies = []Currency{
	{Code: "USD", Name: "US Dollar", Symbol: "$", Decimals: 2},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$", Decimals: 2},
	{Code: "EUR", Name: "Euro", Symbol: "€", Decimals: 2},
	{Code: "GBP", Name: "British Pound", Symbol: "£", Decimals: 2},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥", Decimals: 0},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$", Decimals: 2},
	{Code: "CHF", Name: "Swiss Franc", Symbol: "CHF", Decimals: 2},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥", Decimals: 2},
	{Code: "NZD", Name: "New Zealand Dollar", Symbol: "NZ$", Decimals: 2},
	{Code: "HKD", Name: "Hong Kong Dollar", Symbol: "HK$", Decimals: 2},
}

// CurrencyByCode returns the descriptor for a supported currency code.
func CurrencyByCode(code string) (Currency, bool) {
	for _, c := range SupportedCurrencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// IsSupportedCurrency reports whether code belongs to the supported set.
func IsSupportedCurrency(code string) bool {
	_, ok := CurrencyByCode(code)
	return ok
}
