package service

import (
	"context"
	"strings"
	"time"

	customerdomain "github.com/fatouralabs/fatoura/internal/customer/domain"
	invoicedomain "github.com/fatouralabs/fatoura/internal/invoice/domain"
	"github.com/fatouralabs/fatoura/internal/money"
)

const dateLayout = "2006-01-02"

// buildLineItem validates raw input against the customer's rule, strips any
// fields belonging to the other rule, and derives the monetary fields. It
// returns a LineItem without ID/InvoiceID; the caller assigns those.
func (s *Service) buildLineItem(
	ctx context.Context,
	cust *customerdomain.Customer,
	in invoicedomain.LineItemInput,
) (*invoicedomain.LineItem, error) {
	date, err := s.resolveDate(ctx, in.Date)
	if err != nil {
		return nil, err
	}

	item := &invoicedomain.LineItem{Date: date}
	if desc := strings.TrimSpace(in.Description); desc != "" {
		item.Description = &desc
	}

	switch cust.Rule {
	case customerdomain.RuleRevenueShare:
		if in.DailyRevenue == nil {
			return nil, &invoicedomain.ValidationError{Field: "daily_revenue", Reason: "required for revenue-share customers"}
		}
		revenue := *in.DailyRevenue
		if revenue < 0 {
			return nil, &invoicedomain.ValidationError{Field: "daily_revenue", Reason: "must not be negative"}
		}
		percentage, amount := computeRevenueShare(revenue)
		item.DailyRevenue = &revenue
		item.CompensationPercentage = &percentage
		item.CompensationAmount = &amount
		item.Total = amount

	case customerdomain.RuleHourly:
		if in.Duration == nil || strings.TrimSpace(*in.Duration) == "" {
			return nil, &invoicedomain.ValidationError{Field: "duration", Reason: "required for hourly customers"}
		}
		hours, minutes, err := parseDuration(*in.Duration)
		if err != nil {
			return nil, err
		}
		rate, err := resolveHourlyRate(in.RatePerHour, cust.DefaultHourlyRate)
		if err != nil {
			return nil, err
		}
		duration := strings.TrimSpace(*in.Duration)
		item.Duration = &duration
		item.RatePerHour = &rate
		item.Total = computeHourly(hours, minutes, rate)

	default:
		return nil, invoicedomain.ErrUnknownRule
	}

	return item, nil
}

// resolveHourlyRate prefers the request rate, then the customer default,
// then zero.
func resolveHourlyRate(requested, customerDefault *float64) (float64, error) {
	if requested != nil {
		if *requested < 0 {
			return 0, &invoicedomain.ValidationError{Field: "rate_per_hour", Reason: "must not be negative"}
		}
		return *requested, nil
	}
	if customerDefault != nil && *customerDefault > 0 {
		return *customerDefault, nil
	}
	return 0, nil
}

func (s *Service) resolveDate(ctx context.Context, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		now := s.clock.Now(ctx)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, &invoicedomain.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return date, nil
}

// lineItemTotal re-derives a stored item's contribution, rejecting rows that
// carry both field groups.
func lineItemTotal(item *invoicedomain.LineItem) (float64, error) {
	hasRevenueGroup := item.DailyRevenue != nil || item.CompensationAmount != nil
	hasHourlyGroup := item.Duration != nil || item.RatePerHour != nil
	if hasRevenueGroup && hasHourlyGroup {
		return 0, invoicedomain.ErrConflictingFieldGroups
	}
	return item.Total, nil
}

// sumLineItems is the totals aggregation: plain sum of already-rounded item
// totals plus the flat extra, rounded once. Valid for an empty item set.
func sumLineItems(items []*invoicedomain.LineItem, extra float64) (float64, error) {
	subtotal := 0.0
	for _, item := range items {
		total, err := lineItemTotal(item)
		if err != nil {
			return 0, err
		}
		subtotal += total
	}
	return money.Round2(subtotal + extra), nil
}

// computeDueDate derives the due date by calendar arithmetic so month and
// year rollovers behave.
func computeDueDate(invoiceDate time.Time) time.Time {
	return invoiceDate.AddDate(0, 0, 30)
}
