package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentMethodKindCash = "cash"
	PaymentMethodKindCard = "card"
	PaymentMethodKindBank = "bank"
)

var (
	ErrPaymentMethodNameRequired = errors.New("payment method name is required")
	ErrPaymentMethodInvalidKind  = errors.New("invalid payment method kind")
)

// PaymentMethod is a way of paying for expenses (a card, account or cash).
type PaymentMethod struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Kind      string    `gorm:"type:varchar(20);not null" json:"kind"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// IsValidPaymentMethodKind checks if a kind string is valid
func IsValidPaymentMethodKind(kind string) bool {
	switch kind {
	case PaymentMethodKindCash, PaymentMethodKindCard, PaymentMethodKindBank:
		return true
	}
	return false
}

// BeforeCreate hook for PaymentMethod
func (pm *PaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if pm.ID == uuid.Nil {
		pm.ID = uuid.New()
	}

	now := time.Now()
	if pm.CreatedAt.IsZero() {
		pm.CreatedAt = now
	}
	if pm.UpdatedAt.IsZero() {
		pm.UpdatedAt = now
	}

	return pm.Validate()
}

// BeforeUpdate hook for PaymentMethod
func (pm *PaymentMethod) BeforeUpdate(tx *gorm.DB) error {
	pm.UpdatedAt = time.Now()
	return pm.Validate()
}

// Validate validates the payment method fields
func (pm *PaymentMethod) Validate() error {
	if pm.Name == "" {
		return ErrPaymentMethodNameRequired
	}

	if !IsValidPaymentMethodKind(pm.Kind) {
		return ErrPaymentMethodInvalidKind
	}

	return nil
}
