package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrBudgetLimitNotPositive = errors.New("budget monthly limit must be positive")
	ErrBudgetInvalidCategory  = errors.New("budget category is invalid")
)

// Budget is a per-category monthly spending limit.
type Budget struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Category     string          `gorm:"type:varchar(50);not null;uniqueIndex" json:"category"`
	MonthlyLimit decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"monthly_limit"`
	Notes        string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Budget
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}

	return b.Validate()
}

// BeforeUpdate hook for Budget
func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	b.UpdatedAt = time.Now()
	return b.Validate()
}

// Validate validates the budget fields
func (b *Budget) Validate() error {
	if !IsValidCategory(b.Category) {
		return ErrBudgetInvalidCategory
	}

	if !b.MonthlyLimit.IsPositive() {
		return ErrBudgetLimitNotPositive
	}

	return nil
}

// BudgetProgress relates a month of actual spending to a budget's limit.
// PercentUsed is 0 when the limit is zero.
type BudgetProgress struct {
	BudgetID     uuid.UUID       `json:"budget_id"`
	Category     string          `json:"category"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	PercentUsed  float64         `json:"percent_used"`
	OverBudget   bool            `json:"over_budget"`
}
