package models

import "time"

// RateTable holds exchange rates relative to a base currency
type RateTable struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt time.Time          `json:"fetchedAt"`
}

// Rate returns the rate for a currency code and whether it is present.
// Absent codes are reported to the caller, never defaulted.
func (t *RateTable) Rate(code string) (float64, bool) {
	if t == nil || t.Rates == nil {
		return 0, false
	}
	rate, ok := t.Rates[code]
	return rate, ok
}
