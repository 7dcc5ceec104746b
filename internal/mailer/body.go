package mailer

import (
	"fmt"
	"html"
	"strings"

	invoicedomain "github.com/fatouralabs/fatoura/internal/invoice/domain"
	"github.com/fatouralabs/fatoura/internal/money"
)

const defaultGreeting = "Hierbij ontvangt u de factuur voor de geleverde diensten."

func textBody(email invoicedomain.InvoiceEmail) string {
	message := strings.TrimSpace(email.Message)
	if message == "" {
		message = defaultGreeting
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Factuur %s\n\n", email.InvoiceNumber)
	fmt.Fprintf(&b, "Beste %s,\n\n", email.CustomerName)
	fmt.Fprintf(&b, "%s\n\n", message)
	b.WriteString("Factuurgegevens:\n")
	fmt.Fprintf(&b, "- Factuurnummer: %s\n", email.InvoiceNumber)
	fmt.Fprintf(&b, "- Factuurdatum: %s\n", email.InvoiceDate)
	fmt.Fprintf(&b, "- Vervaldatum: %s\n", email.DueDate)
	fmt.Fprintf(&b, "- Totaalbedrag: %s\n\n", money.FormatEUR(email.Total))
	b.WriteString("De factuur is als PDF bijgevoegd bij deze email.\n\n")
	b.WriteString("Voor vragen kunt u contact met ons opnemen.\n\n")
	b.WriteString("Met vriendelijke groet,\n\n")
	b.WriteString("---\n")
	b.WriteString("Deze email is automatisch gegenereerd door het facturatiesysteem.\n")
	return b.String()
}

func htmlBody(email invoicedomain.InvoiceEmail) string {
	message := strings.TrimSpace(email.Message)
	if message == "" {
		message = defaultGreeting
	}

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html lang="nl"><body>`)
	fmt.Fprintf(&b, "<h1>Factuur %s</h1>", html.EscapeString(email.InvoiceNumber))
	fmt.Fprintf(&b, "<p>Beste %s,</p>", html.EscapeString(email.CustomerName))
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(message))
	b.WriteString("<h3>Factuurgegevens</h3><ul>")
	fmt.Fprintf(&b, "<li><strong>Factuurnummer:</strong> %s</li>", html.EscapeString(email.InvoiceNumber))
	fmt.Fprintf(&b, "<li><strong>Factuurdatum:</strong> %s</li>", html.EscapeString(email.InvoiceDate))
	fmt.Fprintf(&b, "<li><strong>Vervaldatum:</strong> %s</li>", html.EscapeString(email.DueDate))
	fmt.Fprintf(&b, "<li><strong>Totaalbedrag:</strong> %s</li>", money.FormatEUR(email.Total))
	b.WriteString("</ul>")
	b.WriteString("<p>De factuur is als PDF bijgevoegd bij deze email.</p>")
	b.WriteString("<p>Voor vragen kunt u contact met ons opnemen.</p>")
	b.WriteString("<p>Met vriendelijke groet,</p>")
	b.WriteString("<hr><p><small>Deze email is automatisch gegenereerd door het facturatiesysteem.</small></p>")
	b.WriteString("</body></html>")
	return b.String()
}
