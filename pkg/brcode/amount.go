package brcode

import (
	"fmt"
	"math"
)

// FormatAmount renders centavos with exactly two fraction digits, e.g.
// 700 -> "7.00", 123450 -> "1234.50".
func FormatAmount(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// AmountToCents converts a decimal amount in reais to centavos, rounding half
// away from zero. Zero, negative and non-finite amounts are rejected.
func AmountToCents(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrInvalidAmount
	}
	cents := math.Round(amount * 100)
	if cents <= 0 || cents > math.MaxInt64/2 {
		return 0, ErrInvalidAmount
	}
	return int64(cents), nil
}

// CentsToAmount converts centavos back to reais.
func CentsToAmount(cents int64) float64 {
	return float64(cents) / 100
}
