// Package invoicepdf renders invoice documents and keeps them on disk.
package invoicepdf

import (
	"context"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotoconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"go.uber.org/zap"

	customerdomain "github.com/fatouralabs/fatoura/internal/customer/domain"
	invoicedomain "github.com/fatouralabs/fatoura/internal/invoice/domain"
	"github.com/fatouralabs/fatoura/internal/money"
)

type Renderer struct {
	log *zap.Logger
}

func NewRenderer(log *zap.Logger) *Renderer {
	return &Renderer{log: log.Named("invoicepdf.renderer")}
}

// Render produces the invoice PDF: operator letterhead, invoice and customer
// details, a line-item table shaped by the customer's compensation rule, and
// the totals block.
func (r *Renderer) Render(_ context.Context, detail *invoicedomain.InvoiceDetail, operator invoicedomain.Operator) ([]byte, error) {
	m := maroto.New(marotoconfig.NewBuilder().
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(20).
		WithBottomMargin(20).
		Build())

	inv := detail.Invoice
	cust := detail.Customer

	addLetterhead(m, operator)

	m.AddRow(14, text.NewCol(12, "FACTUUR", props.Text{Size: 22, Style: fontstyle.Bold}))
	m.AddRow(8, text.NewCol(12, "Factuurnummer: "+inv.InvoiceNumber, props.Text{Size: 10}))
	m.AddRow(6, col.New(12))

	addDetailColumns(m, detail)
	m.AddRow(8, col.New(12))

	m.AddRow(8, text.NewCol(12, "Factuurregels", props.Text{Size: 11, Style: fontstyle.Bold}))
	addLineItemTable(m, cust.Rule, detail.Items)

	m.AddRow(6, col.New(12))
	addTotals(m, detail)

	addFooter(m, operator)

	doc, err := m.Generate()
	if err != nil {
		r.log.Error("failed to render invoice document", zap.Error(err), zap.String("invoice_number", inv.InvoiceNumber))
		return nil, err
	}
	return doc.GetBytes(), nil
}

func addLetterhead(m core.Maroto, operator invoicedomain.Operator) {
	if operator.Name == "" {
		return
	}
	m.AddRow(6, text.NewCol(12, operator.Name, props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}))
	for _, entry := range []string{operator.Address, operator.Email, operator.Phone} {
		if entry == "" {
			continue
		}
		m.AddRow(4, text.NewCol(12, entry, props.Text{Size: 8, Align: align.Right}))
	}
	m.AddRow(8, col.New(12))
}

func addDetailColumns(m core.Maroto, detail *invoicedomain.InvoiceDetail) {
	inv := detail.Invoice
	cust := detail.Customer

	left := []string{
		"Factuurdatum: " + formatDateNL(inv.InvoiceDate),
		"Vervaldatum: " + formatDateNL(inv.DueDate),
		"Maandfacturatie: " + billingPeriod(inv.BillingYear, inv.BillingMonth),
	}
	if inv.PurchaseNumber != nil {
		left = append(left, "Purchase nummer: "+*inv.PurchaseNumber)
	}
	left = append(left, "Status: "+statusLabel(inv.Status))

	right := []string{cust.Name}
	if cust.Address != nil {
		for _, l := range strings.Split(*cust.Address, "\n") {
			if l = strings.TrimSpace(l); l != "" {
				right = append(right, l)
			}
		}
	}
	if cust.Email != "" {
		right = append(right, cust.Email)
	}

	m.AddRow(7,
		text.NewCol(6, "Factuurgegevens", props.Text{Size: 11, Style: fontstyle.Bold}),
		text.NewCol(6, "Factuuradres", props.Text{Size: 11, Style: fontstyle.Bold}),
	)
	for i := 0; i < len(left) || i < len(right); i++ {
		var l, rgt string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			rgt = right[i]
		}
		m.AddRow(5,
			text.NewCol(6, l, props.Text{Size: 9}),
			text.NewCol(6, rgt, props.Text{Size: 9}),
		)
	}
}

func addLineItemTable(m core.Maroto, rule customerdomain.CompensationRule, items []*invoicedomain.LineItem) {
	header := props.Text{Size: 9, Style: fontstyle.Bold}
	cell := props.Text{Size: 9}
	amount := props.Text{Size: 9, Align: align.Right}

	if rule == customerdomain.RuleHourly {
		m.AddRow(7,
			text.NewCol(2, "Datum", header),
			text.NewCol(4, "Beschrijving", header),
			text.NewCol(2, "Duur", header),
			text.NewCol(2, "Tarief", header),
			text.NewCol(2, "Totaal", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		)
	} else {
		m.AddRow(7,
			text.NewCol(3, "Datum", header),
			text.NewCol(3, "Dag omzet", header),
			text.NewCol(2, "Percentage", header),
			text.NewCol(2, "Vergoeding", header),
			text.NewCol(2, "Totaal", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		)
	}
	m.AddRows(line.NewRow(2))

	for _, item := range items {
		if rule == customerdomain.RuleHourly {
			m.AddRow(6,
				text.NewCol(2, formatDateNL(item.Date), cell),
				text.NewCol(4, strDeref(item.Description), cell),
				text.NewCol(2, strDeref(item.Duration), cell),
				text.NewCol(2, money.FormatEUR(floatDeref(item.RatePerHour)), cell),
				text.NewCol(2, money.FormatEUR(item.Total), amount),
			)
		} else {
			m.AddRow(6,
				text.NewCol(3, formatDateNL(item.Date), cell),
				text.NewCol(3, money.FormatEUR(floatDeref(item.DailyRevenue)), cell),
				text.NewCol(2, formatPercentage(floatDeref(item.CompensationPercentage)), cell),
				text.NewCol(2, money.FormatEUR(floatDeref(item.CompensationAmount)), cell),
				text.NewCol(2, money.FormatEUR(item.Total), amount),
			)
		}
	}
}

func addTotals(m core.Maroto, detail *invoicedomain.InvoiceDetail) {
	inv := detail.Invoice

	var subtotal float64
	for _, item := range detail.Items {
		subtotal += item.Total
	}

	label := props.Text{Size: 9, Align: align.Right}
	value := props.Text{Size: 9, Align: align.Right}

	m.AddRows(line.NewRow(2))
	m.AddRow(6,
		text.NewCol(8, "", label),
		text.NewCol(2, "Subtotaal:", label),
		text.NewCol(2, money.FormatEUR(subtotal), value),
	)
	if inv.Extra > 0 {
		m.AddRow(6,
			text.NewCol(8, "", label),
			text.NewCol(2, "Extra kosten:", label),
			text.NewCol(2, money.FormatEUR(inv.Extra), value),
		)
	}
	m.AddRow(7,
		text.NewCol(8, "", label),
		text.NewCol(2, "Totaal:", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, money.FormatEUR(inv.Total), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)
}

func addFooter(m core.Maroto, operator invoicedomain.Operator) {
	m.AddRow(12, col.New(12))
	m.AddRows(line.NewRow(2))

	var payment []string
	if operator.IBAN != "" {
		payment = append(payment, "IBAN: "+operator.IBAN)
	}
	if operator.KvK != "" {
		payment = append(payment, "KvK: "+operator.KvK)
	}
	if len(payment) > 0 {
		m.AddRow(5, text.NewCol(12, strings.Join(payment, "  |  "), props.Text{Size: 8, Align: align.Center}))
	}
	m.AddRow(5, text.NewCol(12, "Bedankt voor uw opdracht!", props.Text{Size: 8, Align: align.Center}))
}

func statusLabel(s invoicedomain.InvoiceStatus) string {
	switch s {
	case invoicedomain.StatusDraft:
		return "Concept"
	case invoicedomain.StatusSubmitted:
		return "Ingediend"
	case invoicedomain.StatusCompleted:
		return "Afgerond"
	case invoicedomain.StatusSent:
		return "Verzonden"
	}
	return string(s)
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatDeref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
