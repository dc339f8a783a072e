package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

var (
	ErrInvoiceAmountNotPositive = errors.New("invoice amount must be positive")
	ErrInvoiceInvalidStatus     = errors.New("invalid invoice status")
	ErrInvoiceDueBeforeIssued   = errors.New("invoice due date cannot precede issue date")
)

// Invoice is a billable document tracked alongside expenses.
type Invoice struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Number     string          `gorm:"type:varchar(50);not null;uniqueIndex" json:"number"`
	PersonID   *uuid.UUID      `gorm:"type:uuid;index" json:"person_id,omitempty"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	IssuedDate time.Time       `gorm:"type:date;not null" json:"issued_date"`
	DueDate    time.Time       `gorm:"type:date;not null" json:"due_date"`
	Status     string          `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
	Notes      string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`

	// Associations
	Person *Person `gorm:"foreignKey:PersonID" json:"-"`
}

// IsValidInvoiceStatus checks if a status string is a known invoice status
func IsValidInvoiceStatus(status string) bool {
	switch status {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// BeforeCreate hook for Invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}

	if i.Status == "" {
		i.Status = InvoiceStatusDraft
	}

	now := time.Now()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	if i.UpdatedAt.IsZero() {
		i.UpdatedAt = now
	}

	return i.Validate()
}

// BeforeUpdate hook for Invoice
func (i *Invoice) BeforeUpdate(tx *gorm.DB) error {
	i.UpdatedAt = time.Now()
	return i.Validate()
}

// Validate validates the invoice fields
func (i *Invoice) Validate() error {
	if !i.Amount.IsPositive() {
		return ErrInvoiceAmountNotPositive
	}

	if !IsValidInvoiceStatus(i.Status) {
		return ErrInvoiceInvalidStatus
	}

	if i.DueDate.Before(i.IssuedDate) {
		return ErrInvoiceDueBeforeIssued
	}

	return nil
}

// EffectiveStatus resolves the invoice status as of a given day, promoting
// unpaid sent invoices past their due date to overdue.
func (i *Invoice) EffectiveStatus(asOf time.Time) string {
	if i.Status == InvoiceStatusSent && asOf.After(i.DueDate) {
		return InvoiceStatusOverdue
	}
	return i.Status
}
