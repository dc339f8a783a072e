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
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrBudgetAlreadyExists = errors.New("budget already exists for category")
	ErrInvalidBudgetLimit  = errors.New("budget limit must be positive")
)

// budgetService implements BudgetServiceInterface
type budgetService struct {
	budgetRepo  repositories.BudgetRepositoryInterface
	expenseRepo repositories.ExpenseRepositoryInterface
	logger      *slog.Logger
}

// NewBudgetService creates a budget service
func NewBudgetService(
	budgetRepo repositories.BudgetRepositoryInterface,
	expenseRepo repositories.ExpenseRepositoryInterface,
	logger *slog.Logger,
) BudgetServiceInterface {
	return &budgetService{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

// CreateBudget creates a monthly spending limit for one category
func (s *budgetService) CreateBudget(req *dto.CreateBudgetRequest) (*models.Budget, error) {
	if !models.IsValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}

	limit, err := decimal.NewFromString(req.MonthlyLimit)
	if err != nil || !limit.IsPositive() {
		return nil, ErrInvalidBudgetLimit
	}

	budget := &models.Budget{
		Category:     req.Category,
		MonthlyLimit: limit,
		Notes:        req.Notes,
	}
	if err := s.budgetRepo.Create(budget); err != nil {
		if errors.Is(err, repositories.ErrBudgetAlreadyExists) {
			return nil, ErrBudgetAlreadyExists
		}
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	s.logger.Info("budget created", "category", budget.Category, "limit", budget.MonthlyLimit.StringFixed(2))
	return budget, nil
}

// GetBudgetByID fetches a single budget
func (s *budgetService) GetBudgetByID(id uuid.UUID) (*models.Budget, error) {
	budget, err := s.budgetRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return budget, nil
}

// GetAllBudgets returns every configured budget
func (s *budgetService) GetAllBudgets() ([]models.Budget, error) {
	budgets, err := s.budgetRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

// UpdateBudget changes a budget's limit or notes
func (s *budgetService) UpdateBudget(id uuid.UUID, req *dto.UpdateBudgetRequest) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(id)
	if err != nil {
		return nil, err
	}

	if req.MonthlyLimit != nil {
		limit, err := decimal.NewFromString(*req.MonthlyLimit)
		if err != nil || !limit.IsPositive() {
			return nil, ErrInvalidBudgetLimit
		}
		budget.MonthlyLimit = limit
	}
	if req.Notes != nil {
		budget.Notes = *req.Notes
	}

	if err := s.budgetRepo.Update(budget); err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return budget, nil
}

// DeleteBudget removes a budget
func (s *budgetService) DeleteBudget(id uuid.UUID) error {
	if err := s.budgetRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return ErrBudgetNotFound
		}
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}

// GetBudgetProgress reports month-to-date spending against every budget for
// the given calendar month. Categories without expenses report zero spend.
func (s *budgetService) GetBudgetProgress(year, month int) ([]models.BudgetProgress, error) {
	budgets, err := s.budgetRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	expenses, err := s.expenseRepo.GetByDateRange(&monthStart, &monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	spentByCategory := make(map[string]decimal.Decimal)
	for i := range expenses {
		category := expenses[i].Category
		spentByCategory[category] = spentByCategory[category].Add(expenses[i].Amount)
	}

	progress := make([]models.BudgetProgress, 0, len(budgets))
	for i := range budgets {
		budget := &budgets[i]
		spent := spentByCategory[budget.Category]
		remaining := budget.MonthlyLimit.Sub(spent)

		var percentUsed float64
		if budget.MonthlyLimit.IsPositive() {
			percentUsed = spent.Div(budget.MonthlyLimit).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}

		progress = append(progress, models.BudgetProgress{
			BudgetID:     budget.ID,
			Category:     budget.Category,
			Year:         year,
			Month:        month,
			MonthlyLimit: budget.MonthlyLimit,
			Spent:        spent,
			Remaining:    remaining,
			PercentUsed:  percentUsed,
			OverBudget:   spent.GreaterThan(budget.MonthlyLimit),
		})
	}

	return progress, nil
}
