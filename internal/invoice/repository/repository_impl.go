package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	invoicedomain "github.com/fatouralabs/fatoura/internal/invoice/domain"
)

type repo struct{}

func Provide() invoicedomain.Repository {
	return &repo{}
}

func (r *repo) InsertInvoice(ctx context.Context, db *gorm.DB, inv *invoicedomain.Invoice) error {
	return db.WithContext(ctx).Create(inv).Error
}

func (r *repo) FindInvoiceByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*invoicedomain.Invoice, error) {
	var inv invoicedomain.Invoice
	err := db.WithContext(ctx).First(&inv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repo) ListInvoices(ctx context.Context, db *gorm.DB, opts invoicedomain.ListOptions) ([]*invoicedomain.Invoice, error) {
	query := db.WithContext(ctx).Model(&invoicedomain.Invoice{})
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}
	if opts.CustomerID != "" {
		query = query.Where("customer_id = ?", opts.CustomerID)
	}

	var items []*invoicedomain.Invoice
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateInvoice(ctx context.Context, db *gorm.DB, id snowflake.ID, updates map[string]any) error {
	return db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repo) DeleteInvoice(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&invoicedomain.Invoice{}, "id = ?", id).Error
}

func (r *repo) ListInvoiceNumbers(ctx context.Context, db *gorm.DB) ([]string, error) {
	var numbers []string
	err := db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Pluck("invoice_number", &numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

func (r *repo) InsertLineItem(ctx context.Context, db *gorm.DB, item *invoicedomain.LineItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) FindLineItemByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*invoicedomain.LineItem, error) {
	var item invoicedomain.LineItem
	err := db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repo) ListLineItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]*invoicedomain.LineItem, error) {
	var items []*invoicedomain.LineItem
	err := db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("date ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateLineItem(ctx context.Context, db *gorm.DB, id snowflake.ID, updates map[string]any) error {
	return db.WithContext(ctx).
		Model(&invoicedomain.LineItem{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repo) DeleteLineItem(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&invoicedomain.LineItem{}, "id = ?", id).Error
}

func (r *repo) DeleteLineItemsByInvoice(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) error {
	return db.WithContext(ctx).Delete(&invoicedomain.LineItem{}, "invoice_id = ?", invoiceID).Error
}
