package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrExpenseDateRequired = errors.New("expense date is required")
	ErrNegativeAmount      = errors.New("expense amount cannot be negative")
	ErrInvalidCategory     = errors.New("invalid expense category")
)

// Expense represents a single spending record, the raw input of every
// analytics computation. Amounts are non-negative; the sign convention of
// bank feeds is resolved at import time, not here.
type Expense struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Date            time.Time       `gorm:"type:date;not null;index" json:"date"`
	Place           string          `gorm:"type:varchar(255);index" json:"place"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Category        string          `gorm:"type:varchar(50);not null;index" json:"category"`
	PaymentMethodID *uuid.UUID      `gorm:"type:uuid;index" json:"payment_method_id,omitempty"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`

	// Associations
	PaymentMethod *PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"-"`
}

// BeforeCreate hook for Expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}

	return e.Validate()
}

// BeforeUpdate hook for Expense
func (e *Expense) BeforeUpdate(tx *gorm.DB) error {
	e.UpdatedAt = time.Now()
	return e.Validate()
}

// Validate validates the expense fields
func (e *Expense) Validate() error {
	if e.Date.IsZero() {
		return ErrExpenseDateRequired
	}

	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	if !IsValidCategory(e.Category) {
		return ErrInvalidCategory
	}

	return nil
}

// YearMonth identifies a distinct calendar month in the ledger.
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Before reports whether ym falls strictly before other in calendar order.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// ExpenseFilters defines the filter criteria for expense listing
type ExpenseFilters struct {
	Category  string
	Place     string
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}
