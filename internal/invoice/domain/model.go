// Package domain holds the invoice and line-item models and contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "draft"
	StatusSubmitted InvoiceStatus = "submitted"
	StatusCompleted InvoiceStatus = "completed"
	StatusSent      InvoiceStatus = "sent"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusCompleted, StatusSent:
		return true
	}
	return false
}

type Invoice struct {
	ID             snowflake.ID  `gorm:"primaryKey" json:"id"`
	InvoiceNumber  string        `gorm:"type:varchar(100);uniqueIndex;not null" json:"invoice_number"`
	InvoiceDate    time.Time     `gorm:"not null" json:"invoice_date"`
	DueDate        time.Time     `gorm:"not null" json:"due_date"`
	BillingMonth   int           `gorm:"not null" json:"billing_month"`
	BillingYear    int           `gorm:"not null" json:"billing_year"`
	PurchaseNumber *string       `gorm:"type:varchar(100)" json:"purchase_number,omitempty"`
	Extra          float64       `gorm:"not null;default:0" json:"extra"`
	Total          float64       `gorm:"not null" json:"total"`
	PDFPath        *string       `gorm:"column:link_to_pdf;type:varchar(500)" json:"link_to_pdf,omitempty"`
	Status         InvoiceStatus `gorm:"type:varchar(20);not null;default:draft" json:"status"`
	CustomerID     string        `gorm:"type:varchar(50);not null;index" json:"customer_id"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

// LineItem carries exactly one field group, matching the owning customer's
// compensation rule: {DailyRevenue, CompensationPercentage,
// CompensationAmount} for revenue share, {Duration, RatePerHour} for hourly.
// Total is always derived, never taken from client input.
type LineItem struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID   snowflake.ID `gorm:"not null;index" json:"invoice_id"`
	Date        time.Time    `gorm:"not null" json:"date"`
	Description *string      `gorm:"type:text" json:"description,omitempty"`

	DailyRevenue           *float64 `json:"daily_revenue,omitempty"`
	CompensationPercentage *float64 `json:"compensation_percentage,omitempty"`
	CompensationAmount     *float64 `json:"compensation_amount,omitempty"`

	Duration    *string  `gorm:"type:varchar(10)" json:"duration,omitempty"`
	RatePerHour *float64 `json:"rate_per_hour,omitempty"`

	Total float64 `gorm:"not null" json:"total"`
}

func (LineItem) TableName() string { return "invoice_line_items" }
