// Package domain holds the customer model and contracts.
package domain

import "errors"

// CompensationRule selects the calculation path for every line item on a
// customer's invoices. It is fixed per customer.
type CompensationRule string

const (
	// RuleRevenueShare pays a tiered percentage of a daily revenue figure
	// (the "omzet" rule).
	RuleRevenueShare CompensationRule = "revenue_share"
	// RuleHourly pays duration times an hourly rate.
	RuleHourly CompensationRule = "hourly"
)

func (r CompensationRule) Valid() bool {
	return r == RuleRevenueShare || r == RuleHourly
}

type Customer struct {
	ID             string  `gorm:"primaryKey;type:varchar(50)" json:"id"`
	Name           string  `gorm:"type:varchar(255);not null" json:"name"`
	Address        *string `gorm:"type:text" json:"address,omitempty"`
	Email          string  `gorm:"type:varchar(255);not null" json:"email"`
	ContractNumber *string `gorm:"type:varchar(100)" json:"contract_number,omitempty"`

	Rule CompensationRule `gorm:"column:rule;type:varchar(20);not null" json:"rule"`

	// DefaultHourlyRate applies when an hourly line item carries no rate of
	// its own. Ignored for revenue-share customers.
	DefaultHourlyRate *float64 `gorm:"column:hourly_rate" json:"hourly_rate,omitempty"`

	Currency string `gorm:"type:varchar(10);default:EUR" json:"currency"`
}

func (Customer) TableName() string { return "customers" }

var (
	ErrNotFound     = errors.New("customer not found")
	ErrInvalidID    = errors.New("invalid_customer_id")
	ErrInvalidName  = errors.New("invalid_customer_name")
	ErrInvalidEmail = errors.New("invalid_customer_email")
	ErrInvalidRule  = errors.New("invalid_compensation_rule")
	ErrDuplicateID  = errors.New("customer_id_already_exists")
)
