package repositories

import (
	"errors"
	"fmt"
	"time"

	"spendtrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
)

// expenseRepository implements ExpenseRepositoryInterface
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepositoryInterface {
	return &expenseRepository{
		db: db,
	}
}

// Create creates a new expense
func (r *expenseRepository) Create(expense *models.Expense) error {
	if err := r.db.Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// GetByID retrieves an expense by ID
func (r *expenseRepository) GetByID(id uuid.UUID) (*models.Expense, error) {
	expense := &models.Expense{ID: id}
	if err := r.db.First(expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// Update saves changes to an existing expense. The populated entity is
// passed as the model so the BeforeUpdate hook validates the new values.
func (r *expenseRepository) Update(expense *models.Expense) error {
	result := r.db.Model(expense).
		Where("id = ?", expense.ID).
		Updates(map[string]interface{}{
			"date":              expense.Date,
			"place":             expense.Place,
			"notes":             expense.Notes,
			"amount":            expense.Amount,
			"category":          expense.Category,
			"payment_method_id": expense.PaymentMethodID,
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

// Delete removes an expense by ID
func (r *expenseRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Expense{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

// List retrieves expenses matching the filters with pagination
func (r *expenseRepository) List(filters models.ExpenseFilters, offset, limit int) ([]models.Expense, int64, error) {
	query := r.db.Model(&models.Expense{})

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Place != "" {
		query = query.Where("place LIKE ?", "%"+filters.Place+"%")
	}
	if filters.StartDate != nil {
		query = query.Where("date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("date <= ?", *filters.EndDate)
	}
	if filters.MinAmount != nil {
		query = query.Where("amount >= ?", *filters.MinAmount)
	}
	if filters.MaxAmount != nil {
		query = query.Where("amount <= ?", *filters.MaxAmount)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	var expenses []models.Expense
	if err := query.Offset(offset).Limit(limit).
		Order("date DESC, created_at DESC").
		Find(&expenses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}

	return expenses, total, nil
}

// GetByDateRange retrieves expenses within a date range, inclusive on both
// ends. Nil bounds leave that side unbounded.
func (r *expenseRepository) GetByDateRange(startDate, endDate *time.Time) ([]models.Expense, error) {
	query := r.db.Model(&models.Expense{})

	if startDate != nil {
		query = query.Where("date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("date <= ?", *endDate)
	}

	var expenses []models.Expense
	if err := query.Order("date ASC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to get expenses by date range: %w", err)
	}
	return expenses, nil
}

// GetByCategory retrieves expenses for a category, optionally since a date
func (r *expenseRepository) GetByCategory(category string, since *time.Time) ([]models.Expense, error) {
	query := r.db.Where("category = ?", category)
	if since != nil {
		query = query.Where("date >= ?", *since)
	}

	var expenses []models.Expense
	if err := query.Order("date ASC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to get expenses by category: %w", err)
	}
	return expenses, nil
}

// GetDistinctMonths returns the distinct (year, month) pairs that have at
// least one expense, oldest first. Dates are deduplicated in memory to stay
// portable across the sqlite and postgres dialects.
func (r *expenseRepository) GetDistinctMonths() ([]models.YearMonth, error) {
	var dates []time.Time
	if err := r.db.Model(&models.Expense{}).
		Order("date ASC").
		Pluck("date", &dates).Error; err != nil {
		return nil, fmt.Errorf("failed to get expense dates: %w", err)
	}

	seen := make(map[models.YearMonth]bool, len(dates))
	months := make([]models.YearMonth, 0)
	for _, d := range dates {
		ym := models.YearMonth{Year: d.Year(), Month: int(d.Month())}
		if !seen[ym] {
			seen[ym] = true
			months = append(months, ym)
		}
	}
	return months, nil
}
