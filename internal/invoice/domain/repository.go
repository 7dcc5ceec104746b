package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertInvoice(ctx context.Context, db *gorm.DB, inv *Invoice) error
	FindInvoiceByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	ListInvoices(ctx context.Context, db *gorm.DB, opts ListOptions) ([]*Invoice, error)
	UpdateInvoice(ctx context.Context, db *gorm.DB, id snowflake.ID, updates map[string]any) error
	DeleteInvoice(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	ListInvoiceNumbers(ctx context.Context, db *gorm.DB) ([]string, error)

	InsertLineItem(ctx context.Context, db *gorm.DB, item *LineItem) error
	FindLineItemByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*LineItem, error)
	ListLineItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]*LineItem, error)
	UpdateLineItem(ctx context.Context, db *gorm.DB, id snowflake.ID, updates map[string]any) error
	DeleteLineItem(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	DeleteLineItemsByInvoice(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) error
}
