package service

import (
	"regexp"
	"strconv"
	"strings"

	invoicedomain "github.com/fatouralabs/fatoura/internal/invoice/domain"
	"github.com/fatouralabs/fatoura/internal/money"
)

// Revenue-share tiers: inclusive lower bound, exclusive upper bound,
// evaluated in order.
const (
	tierMidLowerBound  = 1000.0
	tierHighLowerBound = 1500.0

	tierLowPercentage  = 35.0
	tierMidPercentage  = 40.0
	tierHighPercentage = 45.0
)

var durationPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// computeRevenueShare derives the compensation percentage and amount for a
// daily revenue figure. Pure; negative input must be rejected upstream.
func computeRevenueShare(dailyRevenue float64) (percentage, amount float64) {
	switch {
	case dailyRevenue < tierMidLowerBound:
		percentage = tierLowPercentage
	case dailyRevenue < tierHighLowerBound:
		percentage = tierMidPercentage
	default:
		percentage = tierHighPercentage
	}
	return percentage, money.Round2(dailyRevenue * percentage / 100)
}

// computeHourly derives the amount for a parsed duration and hourly rate.
func computeHourly(hours, minutes int, ratePerHour float64) float64 {
	totalHours := float64(hours) + float64(minutes)/60
	return money.Round2(totalHours * ratePerHour)
}

// parseDuration accepts "H:MM" or "HH:MM" with minutes below 60.
func parseDuration(raw string) (hours, minutes int, err error) {
	raw = strings.TrimSpace(raw)
	if !durationPattern.MatchString(raw) {
		return 0, 0, &invoicedomain.ValidationError{Field: "duration", Reason: "must match H:MM or HH:MM"}
	}

	parts := strings.SplitN(raw, ":", 2)
	hours, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, &invoicedomain.ValidationError{Field: "duration", Reason: "hours not numeric"}
	}
	minutes, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, &invoicedomain.ValidationError{Field: "duration", Reason: "minutes not numeric"}
	}
	if minutes >= 60 {
		return 0, 0, &invoicedomain.ValidationError{Field: "duration", Reason: "minutes must be below 60"}
	}
	return hours, minutes, nil
}
