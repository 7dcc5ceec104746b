package service

import "fmt"

// buildInvoiceNumber derives the human-facing base candidate from customer
// and billing period, e.g. "C1-2025-01".
func buildInvoiceNumber(customerID string, year, month int) string {
	return fmt.Sprintf("%s-%d-%02d", customerID, year, month)
}

// resolveInvoiceNumber returns the base candidate, or the first suffixed
// variant ("-1", "-2", ...) not present in existing. Suffixes are probed
// sequentially from 1 so gaps in the existing set are reused.
func resolveInvoiceNumber(base string, existing map[string]struct{}) string {
	if _, taken := existing[base]; !taken {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, taken := existing[candidate]; !taken {
			return candidate
		}
	}
}
