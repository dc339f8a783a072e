package repositories

import (
	"errors"
	"fmt"
	"time"

	"spendtrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrLoanNotFound = errors.New("loan not found")

// loanRepository implements LoanRepositoryInterface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepositoryInterface {
	return &loanRepository{
		db: db,
	}
}

// Create creates a new loan
func (r *loanRepository) Create(loan *models.Loan) error {
	if err := r.db.Create(loan).Error; err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	return nil
}

// GetByID retrieves a loan by ID
func (r *loanRepository) GetByID(id uuid.UUID) (*models.Loan, error) {
	loan := &models.Loan{ID: id}
	if err := r.db.First(loan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	return loan, nil
}

// GetAll retrieves all loans
func (r *loanRepository) GetAll() ([]models.Loan, error) {
	var loans []models.Loan
	if err := r.db.Order("start_date ASC").Find(&loans).Error; err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}

// Update saves changes to an existing loan
func (r *loanRepository) Update(loan *models.Loan) error {
	result := r.db.Model(loan).
		Where("id = ?", loan.ID).
		Updates(map[string]interface{}{
			"name":                loan.Name,
			"lender":              loan.Lender,
			"principal":           loan.Principal,
			"annual_rate_percent": loan.AnnualRatePercent,
			"term_months":         loan.TermMonths,
			"start_date":          loan.StartDate,
			"updated_at":          time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update loan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrLoanNotFound
	}
	return nil
}

// Delete removes a loan by ID
func (r *loanRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Loan{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete loan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrLoanNotFound
	}
	return nil
}
