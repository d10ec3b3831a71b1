package models

// CurrencyInfo describes how a supported currency is displayed
type CurrencyInfo struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// supportedCurrencies is the fixed set the application can convert into.
// Symbols and precision follow the Riot store listings: USD totals are
// shown in whole dollars, everything else with two decimals.
var supportedCurrencies = []CurrencyInfo{
	{Code: "USD", Name: "United States Dollar", Symbol: "$", Decimals: 0},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$", Decimals: 2},
	{Code: "BRL", Name: "Brazilian Real", Symbol: "R$", Decimals: 2},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "CA$", Decimals: 2},
	{Code: "EUR", Name: "Euro", Symbol: "€", Decimals: 2},
	{Code: "INR", Name: "Indian Rupee", Symbol: "₹", Decimals: 2},
	{Code: "MYR", Name: "Malaysian Ringgit", Symbol: "MYR", Decimals: 2},
	{Code: "MXN", Name: "Mexican Peso", Symbol: "MX$", Decimals: 2},
	{Code: "NZD", Name: "New Zealand Dollar", Symbol: "NZ$", Decimals: 2},
	{Code: "RUB", Name: "Russian Ruble", Symbol: "₽", Decimals: 2},
	{Code: "SGD", Name: "Singapore Dollar", Symbol: "SGD", Decimals: 2},
	{Code: "TRY", Name: "Turkish Lira", Symbol: "₺", Decimals: 2},
	{Code: "GBP", Name: "Pound Sterling", Symbol: "£", Decimals: 2},
}

var currencyIndex = buildCurrencyIndex()

func buildCurrencyIndex() map[string]CurrencyInfo {
	idx := make(map[string]CurrencyInfo, len(supportedCurrencies))
	for _, c := range supportedCurrencies {
		idx[c.Code] = c
	}
	return idx
}

// SupportedCurrencies returns the full currency list in display order
func SupportedCurrencies() []CurrencyInfo {
	out := make([]CurrencyInfo, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// LookupCurrency returns the display info for a currency code
func LookupCurrency(code string) (CurrencyInfo, bool) {
	info, ok := currencyIndex[code]
	return info, ok
}

// IsSupportedCurrency reports whether the code is in the supported set
func IsSupportedCurrency(code string) bool {
	_, ok := currencyIndex[code]
	return ok
}
