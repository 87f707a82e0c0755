package domain

import (
	"fmt"
	"strconv"
)

// Money is an amount in a single currency. The amount is kept as the
// decimal string the upstream API uses on the wire; it is never parsed into
// a float inside the adapter except for sorting comparisons.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Zero returns a zero-valued amount in the given currency.
func Zero(currencyCode string) Money {
	return Money{Amount: "0.00", CurrencyCode: currencyCode}
}

// ParseCents reads a non-negative decimal money string into whole cents.
// Cart math in every backend goes through this so totals stay exact.
func ParseCents(amount string) (int64, error) {
	whole, frac := amount, ""
	if i := len(amount) - 3; i >= 0 && amount[i] == '.' {
		whole, frac = amount[:i], amount[i+1:]
	} else if j := len(amount) - 2; j >= 0 && amount[j] == '.' {
		whole, frac = amount[:j], amount[j+1:]+"0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, err
	}
	cents := w * 100
	if frac != "" {
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, err
		}
		cents += f
	}
	return cents, nil
}

// FormatCents renders cents back into the wire's decimal string form.
func FormatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
