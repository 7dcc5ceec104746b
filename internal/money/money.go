// Package money provides the fixed-precision arithmetic used for every
// monetary value in the system.
package money

import (
	"fmt"
	"math"
	"strconv"
)

// Round2 rounds an amount to two decimal places, half away from zero.
// Every computed amount (compensation, line total, invoice total) must pass
// through Round2 before it is stored or returned, so cent-level totals stay
// reproducible regardless of upstream floating-point drift.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// FormatEUR renders an amount in nl-NL currency notation, with a dot as the
// thousands separator and a comma before the cents.
func FormatEUR(v float64) string {
	cents := int64(math.Round(math.Abs(v) * 100))
	euros := cents / 100
	rest := cents % 100

	digits := strconv.FormatInt(euros, 10)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}

	sign := ""
	if v < 0 && cents > 0 {
		sign = "-"
	}
	return fmt.Sprintf("€ %s%s,%02d", sign, grouped, rest)
}
