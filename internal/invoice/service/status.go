package service

import (
	invoicedomain "github.com/fatouralabs/fatoura/internal/invoice/domain"
)

// statusTransitions is the full legal transition table. Completed and sent
// are terminal.
var statusTransitions = map[invoicedomain.InvoiceStatus][]invoicedomain.InvoiceStatus{
	invoicedomain.StatusDraft:     {invoicedomain.StatusSubmitted},
	invoicedomain.StatusSubmitted: {invoicedomain.StatusDraft, invoicedomain.StatusCompleted, invoicedomain.StatusSent},
	invoicedomain.StatusCompleted: {},
	invoicedomain.StatusSent:      {},
}

func transitionAllowed(from, to invoicedomain.InvoiceStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// transitionUpdates builds the column updates for a legal transition.
// Regressing to draft clears the stored document link: a draft invoice's
// content is no longer guaranteed to match any previously rendered document.
func transitionUpdates(from, to invoicedomain.InvoiceStatus) map[string]any {
	updates := map[string]any{"status": to}
	if to == invoicedomain.StatusDraft && from != invoicedomain.StatusDraft {
		updates["link_to_pdf"] = nil
	}
	return updates
}
