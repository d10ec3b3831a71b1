package convert

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/valorant-tools/skin-price-tracker/internal/models"
)

func testRates() *models.RateTable {
	return &models.RateTable{
		Base: "USD",
		Rates: map[string]float64{
			"USD": 1.0,
			"EUR": 0.9,
			"GBP": 0.78,
			"INR": 83.2,
		},
		FetchedAt: time.Now(),
	}
}

func TestConvert(t *testing.T) {
	table := testRates()

	tests := []struct {
		name     string
		totalVP  int
		currency string
		want     float64
	}{
		{"EUR", 10000, "EUR", 10000 * USDPerVP * 0.9},
		{"USD identity rate", 10000, "USD", 10000 * USDPerVP},
		{"zero total", 0, "EUR", 0},
		{"large total", 1_000_000, "INR", 1_000_000 * USDPerVP * 83.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := Convert(tt.totalVP, tt.currency, table)
			if err != nil {
				t.Fatalf("Convert failed: %v", err)
			}
			if math.Abs(price.Value-tt.want) > 1e-6 {
				t.Errorf("Convert(%d, %s) = %f, want %f", tt.totalVP, tt.currency, price.Value, tt.want)
			}
			if price.Currency != tt.currency {
				t.Errorf("Currency = %s, want %s", price.Currency, tt.currency)
			}
			if price.TotalVP != tt.totalVP {
				t.Errorf("TotalVP = %d, want %d", price.TotalVP, tt.totalVP)
			}
		})
	}
}

func TestConvertUnsupportedCurrency(t *testing.T) {
	// JPY is a real currency but not in the supported set
	for _, code := range []string{"JPY", "CHF", "xyz", ""} {
		_, err := Convert(10000, code, testRates())
		if !errors.Is(err, ErrUnsupportedCurrency) {
			t.Errorf("Convert with %q: expected ErrUnsupportedCurrency, got %v", code, err)
		}
	}
}

func TestConvertMissingRate(t *testing.T) {
	// TRY is supported by the application but absent from this table;
	// conversion must fail rather than assume a rate.
	_, err := Convert(10000, "TRY", testRates())

	var missing *MissingRateError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingRateError, got %v", err)
	}
	if missing.Code != "TRY" {
		t.Errorf("MissingRateError.Code = %s, want TRY", missing.Code)
	}
}

func TestFormat(t *testing.T) {
	usd, _ := models.LookupCurrency("USD")
	eur, _ := models.LookupCurrency("EUR")
	inr, _ := models.LookupCurrency("INR")

	tests := []struct {
		name  string
		value float64
		info  models.CurrencyInfo
		want  string
	}{
		{"usd whole dollars", 4521.4, usd, "$4,521"},
		{"usd small", 9.09, usd, "$9"},
		{"eur two decimals", 4139.551, eur, "€4,139.55"},
		{"inr large", 376308.9, inr, "₹376,308.90"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.value, tt.info); got != tt.want {
				t.Errorf("Format(%f, %s) = %q, want %q", tt.value, tt.info.Code, got, tt.want)
			}
		})
	}
}
