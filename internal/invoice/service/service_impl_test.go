package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatouralabs/fatoura/internal/clock"
	"github.com/fatouralabs/fatoura/internal/config"
	customerdomain "github.com/fatouralabs/fatoura/internal/customer/domain"
	customerrepo "github.com/fatouralabs/fatoura/internal/customer/repository"
	invoicedomain "github.com/fatouralabs/fatoura/internal/invoice/domain"
	invoicerepo "github.com/fatouralabs/fatoura/internal/invoice/repository"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now(context.Context) time.Time { return c.at }

func newTestService(t *testing.T) (invoicedomain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&customerdomain.Customer{},
		&invoicedomain.Invoice{},
		&invoicedomain.LineItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Clock:        fixedClock{at: time.Date(2025, 10, 3, 12, 0, 0, 0, time.UTC)},
		Config:       &config.Config{},
		Repo:         invoicerepo.Provide(),
		CustomerRepo: customerrepo.Provide(),
	})
	return svc, db
}

func seedCustomer(t *testing.T, db *gorm.DB, cust *customerdomain.Customer) {
	t.Helper()
	require.NoError(t, customerrepo.Provide().Insert(context.Background(), db, cust))
}

var _ clock.Clock = fixedClock{}

func TestCreateInvoiceRevenueShareEndToEnd(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	seedCustomer(t, db, &customerdomain.Customer{
		ID: "C1", Name: "Bakkerij Jansen", Email: "jansen@example.com",
		Rule: customerdomain.RuleRevenueShare, Currency: "EUR",
	})

	detail, err := svc.Create(ctx, invoicedomain.CreateRequest{
		CustomerID:   "C1",
		BillingMonth: 10,
		BillingYear:  2025,
		InvoiceDate:  "2025-10-03",
		LineItems: []invoicedomain.LineItemInput{
			{Date: "2025-10-01", DailyRevenue: floatPtr(1200)},
			{Date: "2025-10-02", DailyRevenue: floatPtr(1800)},
		},
	})
	require.NoError(t, err)

	inv := detail.Invoice
	assert.Equal(t, "C1-2025-10", inv.InvoiceNumber)
	assert.Equal(t, invoicedomain.StatusDraft, inv.Status)
	assert.Equal(t, 1290.00, inv.Total)
	assert.Equal(t, time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC), inv.DueDate)

	require.Len(t, detail.Items, 2)
	assert.Equal(t, 480.00, detail.Items[0].Total)
	assert.Equal(t, 40.0, *detail.Items[0].CompensationPercentage)
	assert.Equal(t, 810.00, detail.Items[1].Total)
	assert.Equal(t, 45.0, *detail.Items[1].CompensationPercentage)

	// Adding an extra amount on the draft re-derives the total.
	updated, err := svc.Update(ctx, inv.ID.String(), invoicedomain.UpdateRequest{Extra: floatPtr(50)})
	require.NoError(t, err)
	assert.Equal(t, 50.0, updated.Extra)
	assert.Equal(t, 1340.00, updated.Total)
}

func TestCreateInvoiceNumberCollision(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	seedCustomer(t, db, &customerdomain.Customer{
		ID: "C1", Name: "Bakkerij Jansen", Email: "jansen@example.com",
		Rule: customerdomain.RuleRevenueShare,
	})

	req := invoicedomain.CreateRequest{
		CustomerID:   "C1",
		BillingMonth: 10,
		BillingYear:  2025,
		LineItems:    []invoicedomain.LineItemInput{{Date: "2025-10-01", DailyRevenue: floatPtr(500)}},
	}

	first, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "C1-2025-10", first.Invoice.InvoiceNumber)

	second, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "C1-2025-10-1", second.Invoice.InvoiceNumber)

	third, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "C1-2025-10-2", third.Invoice.InvoiceNumber)
}

func TestCreateInvoiceRejectsBadInput(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	seedCustomer(t, db, &customerdomain.Customer{
		ID: "C1", Name: "Bakkerij Jansen", Email: "jansen@example.com",
		Rule: customerdomain.RuleRevenueShare,
	})

	var verr *invoicedomain.ValidationError

	_, err := svc.Create(ctx, invoicedomain.CreateRequest{CustomerID: "C1", BillingMonth: 13, BillingYear: 2025})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "billing_month", verr.Field)

	_, err = svc.Create(ctx, invoicedomain.CreateRequest{CustomerID: "C1", BillingMonth: 10, BillingYear: 2025, Extra: -1})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "extra", verr.Field)

	_, err = svc.Create(ctx, invoicedomain.CreateRequest{CustomerID: "nope", BillingMonth: 10, BillingYear: 2025})
	assert.ErrorIs(t, err, customerdomain.ErrNotFound)
}

func TestLineItemMutationsRecomputeTotal(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	seedCustomer(t, db, &customerdomain.Customer{
		ID: "H1", Name: "Advies BV", Email: "advies@example.com",
		Rule: customerdomain.RuleHourly, DefaultHourlyRate: floatPtr(85),
	})

	detail, err := svc.Create(ctx, invoicedomain.CreateRequest{
		CustomerID:   "H1",
		BillingMonth: 10,
		BillingYear:  2025,
	})
	require.NoError(t, err)
	inv := detail.Invoice
	assert.Equal(t, 0.0, inv.Total)

	item, err := svc.CreateLineItem(ctx, inv.ID.String(), invoicedomain.LineItemInput{
		Date:     "2025-10-06",
		Duration: strPtr("1:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, 127.50, item.Total)

	got, err := svc.Get(ctx, inv.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 127.50, got.Invoice.Total)

	// Updating with an explicit rate overrides the customer default.
	item, err = svc.UpdateLineItem(ctx, inv.ID.String(), item.ID.String(), invoicedomain.LineItemInput{
		Date:        "2025-10-06",
		Duration:    strPtr("2:00"),
		RatePerHour: floatPtr(100),
	})
	require.NoError(t, err)
	assert.Equal(t, 200.00, item.Total)

	got, err = svc.Get(ctx, inv.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 200.00, got.Invoice.Total)

	require.NoError(t, svc.DeleteLineItem(ctx, inv.ID.String(), item.ID.String()))
	got, err = svc.Get(ctx, inv.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Invoice.Total)

	_, err = svc.GetLineItem(ctx, inv.ID.String(), item.ID.String())
	assert.ErrorIs(t, err, invoicedomain.ErrLineItemNotFound)
}

func TestSubmittedInvoiceIsFrozen(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	seedCustomer(t, db, &customerdomain.Customer{
		ID: "C1", Name: "Bakkerij Jansen", Email: "jansen@example.com",
		Rule: customerdomain.RuleRevenueShare,
	})

	detail, err := svc.Create(ctx, invoicedomain.CreateRequest{
		CustomerID:   "C1",
		BillingMonth: 10,
		BillingYear:  2025,
		LineItems:    []invoicedomain.LineItemInput{{Date: "2025-10-01", DailyRevenue: floatPtr(1200)}},
	})
	require.NoError(t, err)
	inv := detail.Invoice
	item := detail.Items[0]

	res, err := svc.TransitionStatus(ctx, inv.ID.String(), invoicedomain.StatusSubmitted)
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.StatusDraft, res.PreviousStatus)
	assert.Equal(t, invoicedomain.StatusSubmitted, res.Invoice.Status)

	_, err = svc.CreateLineItem(ctx, inv.ID.String(), invoicedomain.LineItemInput{
		Date: "2025-10-02", DailyRevenue: floatPtr(900),
	})
	assert.ErrorIs(t, err, invoicedomain.ErrNotDraft)

	_, err = svc.UpdateLineItem(ctx, inv.ID.String(), item.ID.String(), invoicedomain.LineItemInput{
		Date: "2025-10-01", DailyRevenue: floatPtr(900),
	})
	assert.ErrorIs(t, err, invoicedomain.ErrNotDraft)

	err = svc.DeleteLineItem(ctx, inv.ID.String(), item.ID.String())
	assert.ErrorIs(t, err, invoicedomain.ErrNotDraft)

	_, err = svc.Update(ctx, inv.ID.String(), invoicedomain.UpdateRequest{Extra: floatPtr(10)})
	assert.ErrorIs(t, err, invoicedomain.ErrNotDraft)

	// Reading is still allowed on a frozen invoice.
	got, err := svc.Get(ctx, inv.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 480.00, got.Invoice.Total)
}

func TestStatusRegressionClearsDocumentLink(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	seedCustomer(t, db, &customerdomain.Customer{
		ID: "C1", Name: "Bakkerij Jansen", Email: "jansen@example.com",
		Rule: customerdomain.RuleRevenueShare,
	})

	detail, err := svc.Create(ctx, invoicedomain.CreateRequest{
		CustomerID:   "C1",
		BillingMonth: 10,
		BillingYear:  2025,
		LineItems:    []invoicedomain.LineItemInput{{Date: "2025-10-01", DailyRevenue: floatPtr(1200)}},
	})
	require.NoError(t, err)
	inv := detail.Invoice

	_, err = svc.TransitionStatus(ctx, inv.ID.String(), invoicedomain.StatusSubmitted)
	require.NoError(t, err)

	// Simulate a stored document on the submitted invoice.
	path := "2025/C1/C1-2025-10.pdf"
	require.NoError(t, db.Model(&invoicedomain.Invoice{}).
		Where("id = ?", inv.ID).
		Update("link_to_pdf", path).Error)

	res, err := svc.TransitionStatus(ctx, inv.ID.String(), invoicedomain.StatusDraft)
	require.NoError(t, err)
	assert.Nil(t, res.Invoice.PDFPath)

	got, err := svc.Get(ctx, inv.ID.String())
	require.NoError(t, err)
	assert.Nil(t, got.Invoice.PDFPath)

	// Back in draft, line items are mutable again.
	_, err = svc.CreateLineItem(ctx, inv.ID.String(), invoicedomain.LineItemInput{
		Date: "2025-10-02", DailyRevenue: floatPtr(900),
	})
	require.NoError(t, err)
}

func TestIllegalTransitionsRejected(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	seedCustomer(t, db, &customerdomain.Customer{
		ID: "C1", Name: "Bakkerij Jansen", Email: "jansen@example.com",
		Rule: customerdomain.RuleRevenueShare,
	})

	detail, err := svc.Create(ctx, invoicedomain.CreateRequest{
		CustomerID:   "C1",
		BillingMonth: 10,
		BillingYear:  2025,
	})
	require.NoError(t, err)
	id := detail.Invoice.ID.String()

	var terr *invoicedomain.TransitionError
	_, err = svc.TransitionStatus(ctx, id, invoicedomain.StatusCompleted)
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, invoicedomain.StatusDraft, terr.From)
	assert.Equal(t, invoicedomain.StatusCompleted, terr.To)

	_, err = svc.TransitionStatus(ctx, id, invoicedomain.InvoiceStatus("archived"))
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidStatus)

	_, err = svc.TransitionStatus(ctx, id, invoicedomain.StatusSubmitted)
	require.NoError(t, err)
	_, err = svc.TransitionStatus(ctx, id, invoicedomain.StatusCompleted)
	require.NoError(t, err)

	// Completed is terminal.
	_, err = svc.TransitionStatus(ctx, id, invoicedomain.StatusDraft)
	require.ErrorAs(t, err, &terr)
}

func TestDeleteInvoiceCascadesLineItems(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	seedCustomer(t, db, &customerdomain.Customer{
		ID: "C1", Name: "Bakkerij Jansen", Email: "jansen@example.com",
		Rule: customerdomain.RuleRevenueShare,
	})

	detail, err := svc.Create(ctx, invoicedomain.CreateRequest{
		CustomerID:   "C1",
		BillingMonth: 10,
		BillingYear:  2025,
		LineItems: []invoicedomain.LineItemInput{
			{Date: "2025-10-01", DailyRevenue: floatPtr(1200)},
			{Date: "2025-10-02", DailyRevenue: floatPtr(800)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, detail.Invoice.ID.String()))

	_, err = svc.Get(ctx, detail.Invoice.ID.String())
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&invoicedomain.LineItem{}).
		Where("invoice_id = ?", detail.Invoice.ID).
		Count(&count).Error)
	assert.Zero(t, count)
}

func TestListInvoicesFilters(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	seedCustomer(t, db, &customerdomain.Customer{
		ID: "C1", Name: "Bakkerij Jansen", Email: "jansen@example.com",
		Rule: customerdomain.RuleRevenueShare,
	})
	seedCustomer(t, db, &customerdomain.Customer{
		ID: "H1", Name: "Advies BV", Email: "advies@example.com",
		Rule: customerdomain.RuleHourly,
	})

	first, err := svc.Create(ctx, invoicedomain.CreateRequest{CustomerID: "C1", BillingMonth: 9, BillingYear: 2025})
	require.NoError(t, err)
	_, err = svc.Create(ctx, invoicedomain.CreateRequest{CustomerID: "H1", BillingMonth: 9, BillingYear: 2025})
	require.NoError(t, err)

	_, err = svc.TransitionStatus(ctx, first.Invoice.ID.String(), invoicedomain.StatusSubmitted)
	require.NoError(t, err)

	all, err := svc.List(ctx, invoicedomain.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	submitted, err := svc.List(ctx, invoicedomain.ListOptions{Status: invoicedomain.StatusSubmitted})
	require.NoError(t, err)
	require.Len(t, submitted, 1)
	assert.Equal(t, first.Invoice.ID, submitted[0].ID)

	byCustomer, err := svc.List(ctx, invoicedomain.ListOptions{CustomerID: "H1"})
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, "H1", byCustomer[0].CustomerID)

	_, err = svc.List(ctx, invoicedomain.ListOptions{Status: invoicedomain.InvoiceStatus("archived")})
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidStatus)
}
