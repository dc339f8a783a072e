package services

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"spendtrack/internal/dto"
	"spendtrack/internal/models"
	"spendtrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrLoanNotFound      = errors.New("loan not found")
	ErrInvalidLoanTerm   = errors.New("loan term must be at least one month")
	ErrInvalidLoanRate   = errors.New("loan rate must not be negative")
	ErrInvalidLoanAmount = errors.New("loan principal must be positive")
	ErrInvalidLoanStart  = errors.New("invalid loan start date")
)

// loanService implements LoanServiceInterface
type loanService struct {
	loanRepo repositories.LoanRepositoryInterface
	logger   *slog.Logger
}

// NewLoanService creates a loan service
func NewLoanService(
	loanRepo repositories.LoanRepositoryInterface,
	logger *slog.Logger,
) LoanServiceInterface {
	return &loanService{
		loanRepo: loanRepo,
		logger:   logger,
	}
}

// CreateLoan registers a fixed-rate installment loan
func (s *loanService) CreateLoan(req *dto.CreateLoanRequest) (*models.Loan, error) {
	principal, err := decimal.NewFromString(req.Principal)
	if err != nil || !principal.IsPositive() {
		return nil, ErrInvalidLoanAmount
	}

	rate, err := decimal.NewFromString(req.AnnualRatePercent)
	if err != nil || rate.IsNegative() {
		return nil, ErrInvalidLoanRate
	}

	if req.TermMonths < 1 {
		return nil, ErrInvalidLoanTerm
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrInvalidLoanStart
	}

	loan := &models.Loan{
		Name:              req.Name,
		Lender:            req.Lender,
		Principal:         principal,
		AnnualRatePercent: rate,
		TermMonths:        req.TermMonths,
		StartDate:         startDate,
	}
	if err := s.loanRepo.Create(loan); err != nil {
		return nil, fmt.Errorf("failed to create loan: %w", err)
	}

	s.logger.Info("loan created", "loan_id", loan.ID, "name", loan.Name, "principal", loan.Principal.StringFixed(2))
	return loan, nil
}

// GetLoanByID fetches a single loan
func (s *loanService) GetLoanByID(id uuid.UUID) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrLoanNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	return loan, nil
}

// GetAllLoans returns every registered loan
func (s *loanService) GetAllLoans() ([]models.Loan, error) {
	loans, err := s.loanRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}

// DeleteLoan removes a loan
func (s *loanService) DeleteLoan(id uuid.UUID) error {
	if err := s.loanRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrLoanNotFound) {
			return ErrLoanNotFound
		}
		return fmt.Errorf("failed to delete loan: %w", err)
	}
	return nil
}

// GetAmortizationSchedule builds the full fixed-payment schedule for a loan.
// The last payment absorbs rounding drift so the balance lands exactly on
// zero.
func (s *loanService) GetAmortizationSchedule(id uuid.UUID) ([]models.AmortizationRow, error) {
	loan, err := s.GetLoanByID(id)
	if err != nil {
		return nil, err
	}
	return AmortizationSchedule(loan), nil
}

// GetLoanBalance reports the outstanding balance after the payments due on
// or before asOf. Before the first due date the balance is the principal.
func (s *loanService) GetLoanBalance(id uuid.UUID, asOf time.Time) (*models.LoanBalance, error) {
	loan, err := s.GetLoanByID(id)
	if err != nil {
		return nil, err
	}

	schedule := AmortizationSchedule(loan)
	balance := &models.LoanBalance{
		LoanID:           loan.ID,
		AsOf:             asOf,
		RemainingBalance: loan.Principal,
	}
	totalInterest := decimal.Zero
	for i := range schedule {
		if schedule[i].DueDate.After(asOf) {
			break
		}
		balance.PaymentsMade = i + 1
		balance.RemainingBalance = schedule[i].RemainingBalance
		totalInterest = totalInterest.Add(schedule[i].InterestPortion)
	}
	balance.TotalInterest = totalInterest
	return balance, nil
}

// MonthlyPayment returns the fixed monthly payment for a loan using the
// standard annuity formula. A zero-rate loan divides the principal evenly.
func MonthlyPayment(loan *models.Loan) decimal.Decimal {
	principal := loan.Principal.InexactFloat64()
	monthlyRate := loan.AnnualRatePercent.InexactFloat64() / 100 / 12
	n := float64(loan.TermMonths)

	var payment float64
	if monthlyRate == 0 {
		payment = principal / n
	} else {
		factor := math.Pow(1+monthlyRate, n)
		payment = principal * monthlyRate * factor / (factor - 1)
	}
	return decimal.NewFromFloat(payment).Round(2)
}

// AmortizationSchedule expands a loan into its per-payment breakdown.
// Payments fall due monthly starting one month after the start date.
func AmortizationSchedule(loan *models.Loan) []models.AmortizationRow {
	payment := MonthlyPayment(loan)
	monthlyRate := loan.AnnualRatePercent.Div(decimal.NewFromInt(1200))

	schedule := make([]models.AmortizationRow, 0, loan.TermMonths)
	balance := loan.Principal
	for i := 1; i <= loan.TermMonths; i++ {
		interest := balance.Mul(monthlyRate).Round(2)
		principalPortion := payment.Sub(interest)
		rowPayment := payment

		if i == loan.TermMonths || principalPortion.GreaterThan(balance) {
			// Final payment clears the remaining balance exactly.
			principalPortion = balance
			rowPayment = principalPortion.Add(interest)
		}
		balance = balance.Sub(principalPortion)

		schedule = append(schedule, models.AmortizationRow{
			PaymentNumber:    i,
			DueDate:          loan.StartDate.AddDate(0, i, 0),
			Payment:          rowPayment,
			PrincipalPortion: principalPortion,
			InterestPortion:  interest,
			RemainingBalance: balance,
		})

		if balance.IsZero() {
			break
		}
	}
	return schedule
}
