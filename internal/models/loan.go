package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrLoanPrincipalNotPositive = errors.New("loan principal must be positive")
	ErrLoanRateNegative         = errors.New("loan annual rate cannot be negative")
	ErrLoanTermNotPositive      = errors.New("loan term must be at least one month")
	ErrLoanStartDateRequired    = errors.New("loan start date is required")
)

// Loan is a fixed-rate installment loan amortized over a monthly schedule.
// AnnualRatePercent is the nominal annual interest rate, e.g. 4.25 for 4.25%.
type Loan struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name              string          `gorm:"type:varchar(255);not null" json:"name"`
	Lender            string          `gorm:"type:varchar(255)" json:"lender,omitempty"`
	Principal         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"principal"`
	AnnualRatePercent decimal.Decimal `gorm:"type:decimal(7,4);not null" json:"annual_rate_percent"`
	TermMonths        int             `gorm:"not null" json:"term_months"`
	StartDate         time.Time       `gorm:"type:date;not null" json:"start_date"`
	CreatedAt         time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Loan
func (l *Loan) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}

	now := time.Now()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = now
	}

	return l.Validate()
}

// BeforeUpdate hook for Loan
func (l *Loan) BeforeUpdate(tx *gorm.DB) error {
	l.UpdatedAt = time.Now()
	return l.Validate()
}

// Validate validates the loan fields
func (l *Loan) Validate() error {
	if !l.Principal.IsPositive() {
		return ErrLoanPrincipalNotPositive
	}

	if l.AnnualRatePercent.IsNegative() {
		return ErrLoanRateNegative
	}

	if l.TermMonths < 1 {
		return ErrLoanTermNotPositive
	}

	if l.StartDate.IsZero() {
		return ErrLoanStartDateRequired
	}

	return nil
}

// AmortizationRow is one scheduled payment of a loan.
type AmortizationRow struct {
	PaymentNumber    int             `json:"payment_number"`
	DueDate          time.Time       `json:"due_date"`
	Payment          decimal.Decimal `json:"payment"`
	PrincipalPortion decimal.Decimal `json:"principal_portion"`
	InterestPortion  decimal.Decimal `json:"interest_portion"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// LoanBalance is the remaining balance of a loan at a point in time.
type LoanBalance struct {
	LoanID           uuid.UUID       `json:"loan_id"`
	AsOf             time.Time       `json:"as_of"`
	PaymentsMade     int             `json:"payments_made"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	TotalInterest    decimal.Decimal `json:"total_interest_paid"`
}
