// Package convert turns an aggregate VP total into a real-world currency
// amount using a fetched exchange rate table.
package convert

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/valorant-tools/skin-price-tracker/internal/models"
)

// USDPerVP is the store's reference rate: the 11,000 VP bundle sells for
// $99.99. This baseline is fixed, not scraped.
const USDPerVP = 99.99 / 11000.0

// ErrUnsupportedCurrency means the target currency is not in the
// application's supported set.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// MissingRateError means the currency is supported but absent from the
// fetched rate table. Conversion never silently substitutes a rate of 1.0.
type MissingRateError struct {
	Code string
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("no exchange rate for %s", e.Code)
}

var printer = message.NewPrinter(language.English)

// Convert computes the display price for a VP total in the target currency:
// totalVP * USDPerVP * rate(target).
func Convert(totalVP int, target string, table *models.RateTable) (*models.DisplayPrice, error) {
	info, ok := models.LookupCurrency(target)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, target)
	}

	rate, ok := table.Rate(target)
	if !ok {
		return nil, &MissingRateError{Code: target}
	}

	value := float64(totalVP) * USDPerVP * rate
	return &models.DisplayPrice{
		Currency:  target,
		Value:     value,
		Formatted: Format(value, info),
		TotalVP:   totalVP,
	}, nil
}

// Format renders a value with the currency's symbol, precision, and
// thousands separators, e.g. "$4,521" or "€4,139.55".
func Format(value float64, info models.CurrencyInfo) string {
	return info.Symbol + printer.Sprintf("%.*f", info.Decimals, value)
}
