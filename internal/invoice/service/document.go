package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	invoicedomain "github.com/fatouralabs/fatoura/internal/invoice/domain"
)

var errRenderingUnavailable = errors.New("document rendering is not configured")

// RenderPDF renders the invoice document, stores it under the document
// store's year/customer layout and records the path on the invoice.
func (s *Service) RenderPDF(ctx context.Context, id string) (*invoicedomain.Invoice, []byte, error) {
	if s.renderer == nil || s.docStore == nil {
		return nil, nil, errRenderingUnavailable
	}

	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.renderer.Render(ctx, detail, s.operator)
	if err != nil {
		return nil, nil, err
	}

	inv := detail.Invoice
	path, err := s.docStore.Save(data, inv.CustomerID, inv.BillingYear, inv.InvoiceNumber)
	if err != nil {
		// Still serve the rendered document; only the stored link is lost.
		s.log.Warn("failed to store invoice document", zap.Error(err), zap.String("invoice_id", inv.ID.String()))
		return inv, data, nil
	}

	if err := s.repo.UpdateInvoice(ctx, s.db, inv.ID, map[string]any{
		"link_to_pdf": path,
		"updated_at":  s.clock.Now(ctx),
	}); err != nil {
		return nil, nil, err
	}
	inv.PDFPath = &path

	return inv, data, nil
}

// Send emails the invoice to its customer with the rendered document
// attached, then applies the transition to sent. The transition table
// governs: sending is only legal from submitted.
func (s *Service) Send(ctx context.Context, id string, message string) (*invoicedomain.Invoice, error) {
	if s.email == nil {
		return nil, errors.New("email delivery is not configured")
	}

	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	inv := detail.Invoice
	cust := detail.Customer

	if strings.TrimSpace(cust.Email) == "" {
		return nil, invoicedomain.ErrMissingCustomerEmail
	}
	if !transitionAllowed(inv.Status, invoicedomain.StatusSent) {
		return nil, &invoicedomain.TransitionError{From: inv.Status, To: invoicedomain.StatusSent}
	}

	attachment, err := s.loadOrRenderDocument(ctx, detail)
	if err != nil {
		return nil, err
	}

	err = s.email.SendInvoice(ctx, invoicedomain.InvoiceEmail{
		To:            cust.Email,
		CustomerName:  cust.Name,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   formatDate(inv.InvoiceDate),
		DueDate:       formatDate(inv.DueDate),
		Total:         inv.Total,
		Currency:      cust.Currency,
		Message:       message,
		Attachment:    attachment,
	})
	if err != nil {
		return nil, err
	}

	result, err := s.TransitionStatus(ctx, id, invoicedomain.StatusSent)
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice sent",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("to", cust.Email),
	)
	return result.Invoice, nil
}

// loadOrRenderDocument reuses a previously stored document when one exists,
// rendering fresh otherwise.
func (s *Service) loadOrRenderDocument(ctx context.Context, detail *invoicedomain.InvoiceDetail) ([]byte, error) {
	inv := detail.Invoice
	if s.docStore != nil {
		data, ok, err := s.docStore.Read(inv.CustomerID, inv.BillingYear, inv.InvoiceNumber)
		if err == nil && ok {
			return data, nil
		}
		if err != nil {
			s.log.Warn("failed to read stored invoice document", zap.Error(err), zap.String("invoice_id", inv.ID.String()))
		}
	}
	if s.renderer == nil {
		return nil, errRenderingUnavailable
	}
	return s.renderer.Render(ctx, detail, s.operator)
}
