package domain

import (
	"context"
	"errors"
	"fmt"

	customerdomain "github.com/fatouralabs/fatoura/internal/customer/domain"
)

var (
	ErrNotFound         = errors.New("invoice not found")
	ErrLineItemNotFound = errors.New("line item not found")
	ErrInvalidID        = errors.New("invalid_invoice_id")
	ErrInvalidStatus    = errors.New("invalid_status")

	// ErrNotDraft rejects line-item mutations on an invoice that has left
	// draft: its content is frozen until it regresses to draft.
	ErrNotDraft = errors.New("invoice_not_draft")

	// ErrUnknownRule guards against a stored customer rule outside the known
	// set. Validator gating should make this unreachable; it is checked so a
	// bad row fails loudly instead of producing a wrong total.
	ErrUnknownRule = errors.New("unknown_compensation_rule")

	// ErrConflictingFieldGroups guards a stored line item carrying both the
	// revenue-share and hourly field groups.
	ErrConflictingFieldGroups = errors.New("conflicting_line_item_field_groups")

	ErrMissingCustomerEmail = errors.New("customer_email_missing")
)

// ValidationError reports a rejected input with the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}

// TransitionError reports a status change not permitted by the transition
// table, carrying the attempted pair.
type TransitionError struct {
	From InvoiceStatus
	To   InvoiceStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change status from %s to %s", e.From, e.To)
}

// LineItemInput is the raw, untrusted shape accepted from forms and API
// bodies. Fields belonging to the customer's rule are validated; fields of
// the other rule are stripped and never persisted.
type LineItemInput struct {
	Date         string   `json:"date"`
	Description  string   `json:"description"`
	DailyRevenue *float64 `json:"daily_revenue"`
	Duration     *string  `json:"duration"`
	RatePerHour  *float64 `json:"rate_per_hour"`
}

type CreateRequest struct {
	CustomerID     string
	BillingMonth   int
	BillingYear    int
	InvoiceDate    string
	PurchaseNumber string
	Extra          float64
	LineItems      []LineItemInput
}

// UpdateRequest mutates header fields of a draft invoice. Total and
// invoice number are derived and cannot be set.
type UpdateRequest struct {
	InvoiceDate    *string
	PurchaseNumber *string
	Extra          *float64
}

type ListOptions struct {
	Status     InvoiceStatus
	CustomerID string
}

type InvoiceDetail struct {
	Invoice  *Invoice                 `json:"invoice"`
	Customer *customerdomain.Customer `json:"customer"`
	Items    []*LineItem              `json:"line_items"`
}

type TransitionResult struct {
	Invoice        *Invoice      `json:"invoice"`
	PreviousStatus InvoiceStatus `json:"previous_status"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*InvoiceDetail, error)
	Get(ctx context.Context, id string) (*InvoiceDetail, error)
	List(ctx context.Context, opts ListOptions) ([]*Invoice, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Invoice, error)
	Delete(ctx context.Context, id string) error

	TransitionStatus(ctx context.Context, id string, to InvoiceStatus) (*TransitionResult, error)

	CreateLineItem(ctx context.Context, invoiceID string, in LineItemInput) (*LineItem, error)
	UpdateLineItem(ctx context.Context, invoiceID, lineItemID string, in LineItemInput) (*LineItem, error)
	DeleteLineItem(ctx context.Context, invoiceID, lineItemID string) error
	GetLineItem(ctx context.Context, invoiceID, lineItemID string) (*LineItem, error)
	ListLineItems(ctx context.Context, invoiceID string) ([]*LineItem, error)

	// RenderPDF renders the invoice document, stores it and records its path.
	RenderPDF(ctx context.Context, id string) (*Invoice, []byte, error)
	// Send emails the invoice with its document attached and applies the
	// transition to sent.
	Send(ctx context.Context, id string, message string) (*Invoice, error)
}

// Renderer produces the invoice document bytes.
type Renderer interface {
	Render(ctx context.Context, detail *InvoiceDetail, operator Operator) ([]byte, error)
}

// DocumentStore persists rendered documents and hands back a stable path.
type DocumentStore interface {
	Save(data []byte, customerID string, year int, invoiceNumber string) (string, error)
	Read(customerID string, year int, invoiceNumber string) ([]byte, bool, error)
}

// Operator mirrors config.Operator without importing it into the domain.
type Operator struct {
	Name    string
	Address string
	Email   string
	Phone   string
	IBAN    string
	KvK     string
}

type InvoiceEmail struct {
	To            string
	CustomerName  string
	InvoiceNumber string
	InvoiceDate   string
	DueDate       string
	Total         float64
	Currency      string
	Message       string
	Attachment    []byte
}

// EmailSender delivers a rendered invoice to the customer.
type EmailSender interface {
	SendInvoice(ctx context.Context, email InvoiceEmail) error
}
