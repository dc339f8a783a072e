package dto

import (
	"spendtrack/internal/models"

	"github.com/shopspring/decimal"
)

// Loan Request DTOs

// CreateLoanRequest represents the request payload for registering a loan
type CreateLoanRequest struct {
	Name              string `json:"name" validate:"required,min=1,max=255"`
	Lender            string `json:"lender" validate:"max=255"`
	Principal         string `json:"principal" validate:"required"`
	AnnualRatePercent string `json:"annualRatePercent" validate:"required"`
	TermMonths        int    `json:"termMonths" validate:"required,min=1,max=600"`
	StartDate         string `json:"startDate" validate:"required,datetime=2006-01-02"`
}

// Loan Response DTOs

// LoanResponse represents a single loan in API responses
type LoanResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Lender            string `json:"lender,omitempty"`
	Principal         string `json:"principal"`
	AnnualRatePercent string `json:"annualRatePercent"`
	TermMonths        int    `json:"termMonths"`
	StartDate         string `json:"startDate"`
	MonthlyPayment    string `json:"monthlyPayment"`
}

// LoanListResponse represents all registered loans
type LoanListResponse struct {
	Loans []LoanResponse `json:"loans"`
}

// AmortizationResponse represents the full payment schedule for a loan
type AmortizationResponse struct {
	LoanID   string                   `json:"loanId"`
	Schedule []models.AmortizationRow `json:"schedule"`
}

// LoanBalanceResponse reports the outstanding balance of a loan as of a date
type LoanBalanceResponse struct {
	Balance models.LoanBalance `json:"balance"`
}

// NewLoanResponse maps a loan model to its API representation. The monthly
// payment is computed by the loan service and passed through.
func NewLoanResponse(l *models.Loan, monthlyPayment decimal.Decimal) LoanResponse {
	return LoanResponse{
		ID:                l.ID.String(),
		Name:              l.Name,
		Lender:            l.Lender,
		Principal:         l.Principal.StringFixed(2),
		AnnualRatePercent: l.AnnualRatePercent.String(),
		TermMonths:        l.TermMonths,
		StartDate:         l.StartDate.Format("2006-01-02"),
		MonthlyPayment:    monthlyPayment.StringFixed(2),
	}
}
