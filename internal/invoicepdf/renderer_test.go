package invoicepdf

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	customerdomain "github.com/fatouralabs/fatoura/internal/customer/domain"
	invoicedomain "github.com/fatouralabs/fatoura/internal/invoice/domain"
)

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

func testOperator() invoicedomain.Operator {
	return invoicedomain.Operator{
		Name:    "Fatoura Administratie",
		Address: "Herengracht 1, 1015 BA Amsterdam",
		Email:   "administratie@example.com",
		IBAN:    "NL02ABNA0123456789",
		KvK:     "12345678",
	}
}

func TestRenderRevenueShareInvoice(t *testing.T) {
	r := NewRenderer(zap.NewNop())

	address := "Dorpsstraat 12\n1234 AB Ons Dorp"
	detail := &invoicedomain.InvoiceDetail{
		Invoice: &invoicedomain.Invoice{
			InvoiceNumber: "C1-2025-10",
			InvoiceDate:   time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC),
			DueDate:       time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC),
			BillingMonth:  10,
			BillingYear:   2025,
			Extra:         50,
			Total:         1340,
			Status:        invoicedomain.StatusDraft,
			CustomerID:    "C1",
		},
		Customer: &customerdomain.Customer{
			ID: "C1", Name: "Bakkerij Jansen", Email: "jansen@example.com",
			Address: &address, Rule: customerdomain.RuleRevenueShare,
		},
		Items: []*invoicedomain.LineItem{
			{
				Date:                   time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
				DailyRevenue:           floatPtr(1200),
				CompensationPercentage: floatPtr(40),
				CompensationAmount:     floatPtr(480),
				Total:                  480,
			},
			{
				Date:                   time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC),
				DailyRevenue:           floatPtr(1800),
				CompensationPercentage: floatPtr(45),
				CompensationAmount:     floatPtr(810),
				Total:                  810,
			},
		},
	}

	data, err := r.Render(context.Background(), detail, testOperator())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderHourlyInvoice(t *testing.T) {
	r := NewRenderer(zap.NewNop())

	detail := &invoicedomain.InvoiceDetail{
		Invoice: &invoicedomain.Invoice{
			InvoiceNumber: "H1-2025-10",
			InvoiceDate:   time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC),
			DueDate:       time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC),
			BillingMonth:  10,
			BillingYear:   2025,
			Total:         127.50,
			Status:        invoicedomain.StatusSubmitted,
			CustomerID:    "H1",
		},
		Customer: &customerdomain.Customer{
			ID: "H1", Name: "Advies BV", Email: "advies@example.com",
			Rule: customerdomain.RuleHourly,
		},
		Items: []*invoicedomain.LineItem{
			{
				Date:        time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC),
				Description: strPtr("Consultancy"),
				Duration:    strPtr("1:30"),
				RatePerHour: floatPtr(85),
				Total:       127.50,
			},
		},
	}

	data, err := r.Render(context.Background(), detail, testOperator())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}
