package invoicepdf

import (
	"fmt"
	"strconv"
	"time"
)

var dutchMonths = [...]string{
	"januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december",
}

// billingPeriod renders the billing month the way nl-NL spells it, e.g.
// "oktober 2025".
func billingPeriod(year, month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%d-%02d", year, month)
	}
	return fmt.Sprintf("%s %d", dutchMonths[month-1], year)
}

// formatDateNL renders a date in the Dutch day-month-year order.
func formatDateNL(t time.Time) string {
	return t.Format("02-01-2006")
}

func formatPercentage(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
