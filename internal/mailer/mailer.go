// Package mailer delivers invoices to customers over SMTP.
package mailer

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/fatouralabs/fatoura/internal/config"
	invoicedomain "github.com/fatouralabs/fatoura/internal/invoice/domain"
)

// Dialer is the transport seam; *gomail.Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type Mailer struct {
	dialer Dialer
	from   string
	log    *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) *Mailer {
	from := cfg.SMTP.From
	if from == "" {
		from = cfg.SMTP.Username
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password),
		from:   from,
		log:    log.Named("mailer"),
	}
}

// SendInvoice mails the invoice with its PDF attached. Subject and body are
// in Dutch, matching the documents themselves.
func (m *Mailer) SendInvoice(_ context.Context, email invoicedomain.InvoiceEmail) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email.To)
	msg.SetHeader("Subject", "Factuur "+email.InvoiceNumber)
	msg.SetBody("text/plain", textBody(email))
	msg.AddAlternative("text/html", htmlBody(email))

	if len(email.Attachment) > 0 {
		attachment := email.Attachment
		msg.Attach(
			fmt.Sprintf("factuur-%s.pdf", email.InvoiceNumber),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(attachment)
				return err
			}),
		)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Error("failed to send invoice email",
			zap.Error(err),
			zap.String("invoice_number", email.InvoiceNumber),
			zap.String("to", email.To),
		)
		return fmt.Errorf("send invoice email: %w", err)
	}

	m.log.Info("invoice email sent",
		zap.String("invoice_number", email.InvoiceNumber),
		zap.String("to", email.To),
	)
	return nil
}
