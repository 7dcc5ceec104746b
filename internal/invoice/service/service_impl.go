package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatouralabs/fatoura/internal/clock"
	"github.com/fatouralabs/fatoura/internal/config"
	customerdomain "github.com/fatouralabs/fatoura/internal/customer/domain"
	invoicedomain "github.com/fatouralabs/fatoura/internal/invoice/domain"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Config       *config.Config
	Repo         invoicedomain.Repository
	CustomerRepo customerdomain.Repository

	Renderer invoicedomain.Renderer      `optional:"true"`
	DocStore invoicedomain.DocumentStore `optional:"true"`
	Email    invoicedomain.EmailSender   `optional:"true"`
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	operator     invoicedomain.Operator
	repo         invoicedomain.Repository
	customerRepo customerdomain.Repository
	renderer     invoicedomain.Renderer
	docStore     invoicedomain.DocumentStore
	email        invoicedomain.EmailSender
}

func New(p Params) invoicedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("invoice.service"),
		genID: p.GenID,
		clock: p.Clock,
		operator: invoicedomain.Operator{
			Name:    p.Config.Operator.Name,
			Address: p.Config.Operator.Address,
			Email:   p.Config.Operator.Email,
			Phone:   p.Config.Operator.Phone,
			IBAN:    p.Config.Operator.IBAN,
			KvK:     p.Config.Operator.KvK,
		},
		repo:         p.Repo,
		customerRepo: p.CustomerRepo,
		renderer:     p.Renderer,
		docStore:     p.DocStore,
		email:        p.Email,
	}
}

func (s *Service) Create(ctx context.Context, req invoicedomain.CreateRequest) (*invoicedomain.InvoiceDetail, error) {
	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		return nil, &invoicedomain.ValidationError{Field: "customer_id", Reason: "required"}
	}
	if req.BillingMonth < 1 || req.BillingMonth > 12 {
		return nil, &invoicedomain.ValidationError{Field: "billing_month", Reason: "must be between 1 and 12"}
	}
	if req.BillingYear <= 0 {
		return nil, &invoicedomain.ValidationError{Field: "billing_year", Reason: "required"}
	}
	if req.Extra < 0 {
		return nil, &invoicedomain.ValidationError{Field: "extra", Reason: "must not be negative"}
	}

	cust, err := s.customerRepo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return nil, err
	}
	if cust == nil {
		return nil, customerdomain.ErrNotFound
	}

	invoiceDate, err := s.resolveDate(ctx, req.InvoiceDate)
	if err != nil {
		return nil, err
	}

	items := make([]*invoicedomain.LineItem, 0, len(req.LineItems))
	for _, in := range req.LineItems {
		item, err := s.buildLineItem(ctx, cust, in)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	total, err := sumLineItems(items, req.Extra)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now(ctx)
	inv := &invoicedomain.Invoice{
		ID:           s.genID.Generate(),
		InvoiceDate:  invoiceDate,
		DueDate:      computeDueDate(invoiceDate),
		BillingMonth: req.BillingMonth,
		BillingYear:  req.BillingYear,
		Extra:        req.Extra,
		Total:        total,
		Status:       invoicedomain.StatusDraft,
		CustomerID:   cust.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if pn := strings.TrimSpace(req.PurchaseNumber); pn != "" {
		inv.PurchaseNumber = &pn
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		numbers, err := s.repo.ListInvoiceNumbers(ctx, tx)
		if err != nil {
			return err
		}
		existing := make(map[string]struct{}, len(numbers))
		for _, n := range numbers {
			existing[n] = struct{}{}
		}
		inv.InvoiceNumber = resolveInvoiceNumber(
			buildInvoiceNumber(cust.ID, req.BillingYear, req.BillingMonth),
			existing,
		)

		if err := s.repo.InsertInvoice(ctx, tx, inv); err != nil {
			return err
		}
		for _, item := range items {
			item.ID = s.genID.Generate()
			item.InvoiceID = inv.ID
			if err := s.repo.InsertLineItem(ctx, tx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("customer_id", cust.ID),
		zap.Float64("total", inv.Total),
	)

	return &invoicedomain.InvoiceDetail{Invoice: inv, Customer: cust, Items: items}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*invoicedomain.InvoiceDetail, error) {
	inv, err := s.loadInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	cust, err := s.customerRepo.FindByID(ctx, s.db, inv.CustomerID)
	if err != nil {
		return nil, err
	}
	if cust == nil {
		return nil, customerdomain.ErrNotFound
	}
	items, err := s.repo.ListLineItems(ctx, s.db, inv.ID)
	if err != nil {
		return nil, err
	}
	return &invoicedomain.InvoiceDetail{Invoice: inv, Customer: cust, Items: items}, nil
}

func (s *Service) List(ctx context.Context, opts invoicedomain.ListOptions) ([]*invoicedomain.Invoice, error) {
	if opts.Status != "" && !opts.Status.Valid() {
		return nil, invoicedomain.ErrInvalidStatus
	}
	return s.repo.ListInvoices(ctx, s.db, opts)
}

func (s *Service) Update(ctx context.Context, id string, req invoicedomain.UpdateRequest) (*invoicedomain.Invoice, error) {
	inv, err := s.loadInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != invoicedomain.StatusDraft {
		return nil, invoicedomain.ErrNotDraft
	}

	updates := map[string]any{}
	if req.InvoiceDate != nil {
		date, err := s.resolveDate(ctx, *req.InvoiceDate)
		if err != nil {
			return nil, err
		}
		inv.InvoiceDate = date
		inv.DueDate = computeDueDate(date)
		updates["invoice_date"] = inv.InvoiceDate
		updates["due_date"] = inv.DueDate
	}
	if req.PurchaseNumber != nil {
		pn := strings.TrimSpace(*req.PurchaseNumber)
		if pn == "" {
			inv.PurchaseNumber = nil
		} else {
			inv.PurchaseNumber = &pn
		}
		updates["purchase_number"] = inv.PurchaseNumber
	}
	if req.Extra != nil {
		if *req.Extra < 0 {
			return nil, &invoicedomain.ValidationError{Field: "extra", Reason: "must not be negative"}
		}
		inv.Extra = *req.Extra
		updates["extra"] = inv.Extra
	}

	if len(updates) == 0 {
		return inv, nil
	}
	updates["updated_at"] = s.clock.Now(ctx)
	if err := s.repo.UpdateInvoice(ctx, s.db, inv.ID, updates); err != nil {
		return nil, err
	}

	if req.Extra != nil {
		if err := s.recomputeTotal(ctx, inv); err != nil {
			return nil, err
		}
		refreshed, err := s.repo.FindInvoiceByID(ctx, s.db, inv.ID)
		if err != nil {
			return nil, err
		}
		if refreshed != nil {
			inv = refreshed
		}
	}
	return inv, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	inv, err := s.loadInvoice(ctx, id)
	if err != nil {
		return err
	}
	// Line items are an owned composition; they go with the invoice.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeleteLineItemsByInvoice(ctx, tx, inv.ID); err != nil {
			return err
		}
		return s.repo.DeleteInvoice(ctx, tx, inv.ID)
	})
}

func (s *Service) TransitionStatus(ctx context.Context, id string, to invoicedomain.InvoiceStatus) (*invoicedomain.TransitionResult, error) {
	if !to.Valid() {
		return nil, invoicedomain.ErrInvalidStatus
	}
	inv, err := s.loadInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	from := inv.Status
	if !transitionAllowed(from, to) {
		return nil, &invoicedomain.TransitionError{From: from, To: to}
	}

	updates := transitionUpdates(from, to)
	updates["updated_at"] = s.clock.Now(ctx)
	if err := s.repo.UpdateInvoice(ctx, s.db, inv.ID, updates); err != nil {
		return nil, err
	}

	inv.Status = to
	if _, cleared := updates["link_to_pdf"]; cleared {
		inv.PDFPath = nil
	}

	s.log.Info("invoice status changed",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return &invoicedomain.TransitionResult{Invoice: inv, PreviousStatus: from}, nil
}

func (s *Service) CreateLineItem(ctx context.Context, invoiceID string, in invoicedomain.LineItemInput) (*invoicedomain.LineItem, error) {
	inv, cust, err := s.loadDraftInvoiceWithCustomer(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	item, err := s.buildLineItem(ctx, cust, in)
	if err != nil {
		return nil, err
	}
	item.ID = s.genID.Generate()
	item.InvoiceID = inv.ID

	if err := s.repo.InsertLineItem(ctx, s.db, item); err != nil {
		return nil, err
	}
	if err := s.recomputeTotal(ctx, inv); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) UpdateLineItem(ctx context.Context, invoiceID, lineItemID string, in invoicedomain.LineItemInput) (*invoicedomain.LineItem, error) {
	inv, cust, err := s.loadDraftInvoiceWithCustomer(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	existing, err := s.loadLineItem(ctx, inv, lineItemID)
	if err != nil {
		return nil, err
	}

	item, err := s.buildLineItem(ctx, cust, in)
	if err != nil {
		return nil, err
	}
	item.ID = existing.ID
	item.InvoiceID = inv.ID

	// Full-row update so fields of the other rule can never linger.
	updates := map[string]any{
		"date":                    item.Date,
		"description":             item.Description,
		"daily_revenue":           item.DailyRevenue,
		"compensation_percentage": item.CompensationPercentage,
		"compensation_amount":     item.CompensationAmount,
		"duration":                item.Duration,
		"rate_per_hour":           item.RatePerHour,
		"total":                   item.Total,
	}
	if err := s.repo.UpdateLineItem(ctx, s.db, existing.ID, updates); err != nil {
		return nil, err
	}
	if err := s.recomputeTotal(ctx, inv); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) DeleteLineItem(ctx context.Context, invoiceID, lineItemID string) error {
	inv, _, err := s.loadDraftInvoiceWithCustomer(ctx, invoiceID)
	if err != nil {
		return err
	}
	existing, err := s.loadLineItem(ctx, inv, lineItemID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteLineItem(ctx, s.db, existing.ID); err != nil {
		return err
	}
	return s.recomputeTotal(ctx, inv)
}

func (s *Service) GetLineItem(ctx context.Context, invoiceID, lineItemID string) (*invoicedomain.LineItem, error) {
	inv, err := s.loadInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return s.loadLineItem(ctx, inv, lineItemID)
}

func (s *Service) ListLineItems(ctx context.Context, invoiceID string) ([]*invoicedomain.LineItem, error) {
	inv, err := s.loadInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListLineItems(ctx, s.db, inv.ID)
}

// recomputeTotal refetches the full line-item set and rewrites the invoice
// total. Recomputing from scratch instead of applying a delta keeps the
// operation idempotent, so a lost race on total self-heals on the next
// mutation.
func (s *Service) recomputeTotal(ctx context.Context, inv *invoicedomain.Invoice) error {
	items, err := s.repo.ListLineItems(ctx, s.db, inv.ID)
	if err != nil {
		return err
	}
	total, err := sumLineItems(items, inv.Extra)
	if err != nil {
		return err
	}
	return s.repo.UpdateInvoice(ctx, s.db, inv.ID, map[string]any{
		"total":      total,
		"updated_at": s.clock.Now(ctx),
	})
}

func (s *Service) loadInvoice(ctx context.Context, id string) (*invoicedomain.Invoice, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, invoicedomain.ErrInvalidID
	}
	inv, err := s.repo.FindInvoiceByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, invoicedomain.ErrNotFound
	}
	return inv, nil
}

func (s *Service) loadDraftInvoiceWithCustomer(ctx context.Context, invoiceID string) (*invoicedomain.Invoice, *customerdomain.Customer, error) {
	inv, err := s.loadInvoice(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	if inv.Status != invoicedomain.StatusDraft {
		return nil, nil, invoicedomain.ErrNotDraft
	}
	cust, err := s.customerRepo.FindByID(ctx, s.db, inv.CustomerID)
	if err != nil {
		return nil, nil, err
	}
	if cust == nil {
		return nil, nil, customerdomain.ErrNotFound
	}
	return inv, cust, nil
}

func (s *Service) loadLineItem(ctx context.Context, inv *invoicedomain.Invoice, lineItemID string) (*invoicedomain.LineItem, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(lineItemID))
	if err != nil {
		return nil, invoicedomain.ErrLineItemNotFound
	}
	item, err := s.repo.FindLineItemByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if item == nil || item.InvoiceID != inv.ID {
		return nil, invoicedomain.ErrLineItemNotFound
	}
	return item, nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
