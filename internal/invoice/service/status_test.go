package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	invoicedomain "github.com/fatouralabs/fatoura/internal/invoice/domain"
)

func TestTransitionTable(t *testing.T) {
	all := []invoicedomain.InvoiceStatus{
		invoicedomain.StatusDraft,
		invoicedomain.StatusSubmitted,
		invoicedomain.StatusCompleted,
		invoicedomain.StatusSent,
	}
	legal := map[invoicedomain.InvoiceStatus]map[invoicedomain.InvoiceStatus]bool{
		invoicedomain.StatusDraft:     {invoicedomain.StatusSubmitted: true},
		invoicedomain.StatusSubmitted: {invoicedomain.StatusDraft: true, invoicedomain.StatusCompleted: true, invoicedomain.StatusSent: true},
	}

	for _, from := range all {
		for _, to := range all {
			want := legal[from][to]
			assert.Equal(t, want, transitionAllowed(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, from := range []invoicedomain.InvoiceStatus{invoicedomain.StatusCompleted, invoicedomain.StatusSent} {
		for _, to := range []invoicedomain.InvoiceStatus{
			invoicedomain.StatusDraft,
			invoicedomain.StatusSubmitted,
			invoicedomain.StatusCompleted,
			invoicedomain.StatusSent,
		} {
			assert.False(t, transitionAllowed(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTransitionUpdatesClearsDocumentLinkOnDraftRegression(t *testing.T) {
	updates := transitionUpdates(invoicedomain.StatusSubmitted, invoicedomain.StatusDraft)
	link, present := updates["link_to_pdf"]
	assert.True(t, present)
	assert.Nil(t, link)

	updates = transitionUpdates(invoicedomain.StatusDraft, invoicedomain.StatusSubmitted)
	_, present = updates["link_to_pdf"]
	assert.False(t, present)
}
