package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is an amount of currency stored as paisa (hundredths of a rupee).
// Keeping amounts integral avoids float drift when summing ledgers.
type Money int64

var ErrInvalidAmount = fmt.Errorf("amount must be a positive number with at most two decimal places")

// ParseMoney converts a decimal string such as "450" or "450.50" to Money.
// More than two fraction digits, non-numeric input, and non-positive values
// are rejected.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidAmount
	}

	whole := s
	frac := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		whole = s[:idx]
		frac = s[idx+1:]
	}
	if whole == "" || len(frac) > 2 {
		return 0, ErrInvalidAmount
	}

	rupees, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	paisa := int64(0)
	if frac != "" {
		// ParseInt accepts a leading sign, so check digits explicitly.
		for _, c := range frac {
			if c < '0' || c > '9' {
				return 0, ErrInvalidAmount
			}
		}
		paisa, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
		if len(frac) == 1 {
			paisa *= 10
		}
	}

	m := Money(rupees*100 + paisa)
	if m <= 0 {
		return 0, ErrInvalidAmount
	}
	return m, nil
}

// MoneyFromFloat converts a float amount (as found in JSON numbers) to Money,
// rounding to the nearest paisa.
func MoneyFromFloat(f float64) Money {
	if f < 0 {
		return 0
	}
	return Money(f*100 + 0.5)
}

// Float64 returns the amount in rupees for JSON responses.
func (m Money) Float64() float64 {
	return float64(m) / 100
}

// String formats the amount with two decimal places, e.g. "450.00".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
