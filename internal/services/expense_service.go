package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"spendtrack/internal/dto"
	"spendtrack/internal/models"
	"spendtrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidDateRange  = errors.New("end date must not be before start date")
	ErrPaymentMethodGone = errors.New("payment method not found")
)

// expenseService implements ExpenseServiceInterface
type expenseService struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	methodRepo  repositories.PaymentMethodRepositoryInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewExpenseService creates an expense service
func NewExpenseService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	methodRepo repositories.PaymentMethodRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ExpenseServiceInterface {
	return &expenseService{
		expenseRepo: expenseRepo,
		methodRepo:  methodRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// CreateExpense records a new expense
func (s *expenseService) CreateExpense(req *dto.CreateExpenseRequest) (*models.Expense, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	if !models.IsValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}

	expense := &models.Expense{
		Date:     date,
		Place:    req.Place,
		Notes:    req.Notes,
		Amount:   amount,
		Category: req.Category,
	}

	if req.PaymentMethodID != "" {
		methodID, err := uuid.Parse(req.PaymentMethodID)
		if err != nil {
			return nil, ErrPaymentMethodGone
		}
		if _, err := s.methodRepo.GetByID(methodID); err != nil {
			if errors.Is(err, repositories.ErrPaymentMethodNotFound) {
				return nil, ErrPaymentMethodGone
			}
			return nil, fmt.Errorf("failed to verify payment method: %w", err)
		}
		expense.PaymentMethodID = &methodID
	}

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.metrics.RecordExpenseCreated(expense.Category)
	s.logger.Info("expense created",
		"expense_id", expense.ID,
		"category", expense.Category,
		"amount", expense.Amount.StringFixed(2),
	)
	return expense, nil
}

// GetExpenseByID fetches a single expense
func (s *expenseService) GetExpenseByID(id uuid.UUID) (*models.Expense, error) {
	expense, err := s.expenseRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// UpdateExpense applies the supplied fields to an existing expense
func (s *expenseService) UpdateExpense(id uuid.UUID, req *dto.UpdateExpenseRequest) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		expense.Date = date
	}
	if req.Place != nil {
		expense.Place = *req.Place
	}
	if req.Notes != nil {
		expense.Notes = *req.Notes
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil || amount.IsNegative() {
			return nil, ErrInvalidAmount
		}
		expense.Amount = amount
	}
	if req.Category != nil {
		if !models.IsValidCategory(*req.Category) {
			return nil, ErrInvalidCategory
		}
		expense.Category = *req.Category
	}
	if req.PaymentMethodID != nil {
		if *req.PaymentMethodID == "" {
			expense.PaymentMethodID = nil
		} else {
			methodID, err := uuid.Parse(*req.PaymentMethodID)
			if err != nil {
				return nil, ErrPaymentMethodGone
			}
			if _, err := s.methodRepo.GetByID(methodID); err != nil {
				if errors.Is(err, repositories.ErrPaymentMethodNotFound) {
					return nil, ErrPaymentMethodGone
				}
				return nil, fmt.Errorf("failed to verify payment method: %w", err)
			}
			expense.PaymentMethodID = &methodID
		}
	}

	if err := s.expenseRepo.Update(expense); err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return expense, nil
}

// DeleteExpense removes an expense
func (s *expenseService) DeleteExpense(id uuid.UUID) error {
	if err := s.expenseRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	s.metrics.RecordExpenseDeleted()
	return nil
}

// ListExpenses returns a filtered, paginated page of expenses
func (s *expenseService) ListExpenses(filters models.ExpenseFilters, offset, limit int) ([]models.Expense, int64, error) {
	if filters.StartDate != nil && filters.EndDate != nil && filters.EndDate.Before(*filters.StartDate) {
		return nil, 0, ErrInvalidDateRange
	}

	expenses, total, err := s.expenseRepo.List(filters, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, total, nil
}
