package repositories

import (
	"time"

	"spendtrack/internal/models"

	"github.com/google/uuid"
)

// ExpenseRepositoryInterface defines the contract for expense storage. The
// three read methods at the bottom are the only storage capability the
// analytics services consume.
type ExpenseRepositoryInterface interface {
	Create(expense *models.Expense) error
	GetByID(id uuid.UUID) (*models.Expense, error)
	Update(expense *models.Expense) error
	Delete(id uuid.UUID) error
	List(filters models.ExpenseFilters, offset, limit int) ([]models.Expense, int64, error)

	// Analytics reads. Nil bounds mean unbounded on that side; date bounds
	// are inclusive on both ends.
	GetByDateRange(startDate, endDate *time.Time) ([]models.Expense, error)
	GetByCategory(category string, since *time.Time) ([]models.Expense, error)
	GetDistinctMonths() ([]models.YearMonth, error)
}

// BudgetRepositoryInterface defines the contract for budget storage
type BudgetRepositoryInterface interface {
	Create(budget *models.Budget) error
	GetByID(id uuid.UUID) (*models.Budget, error)
	GetByCategory(category string) (*models.Budget, error)
	GetAll() ([]models.Budget, error)
	Update(budget *models.Budget) error
	Delete(id uuid.UUID) error
}

// LoanRepositoryInterface defines the contract for loan storage
type LoanRepositoryInterface interface {
	Create(loan *models.Loan) error
	GetByID(id uuid.UUID) (*models.Loan, error)
	GetAll() ([]models.Loan, error)
	Update(loan *models.Loan) error
	Delete(id uuid.UUID) error
}

// InvoiceRepositoryInterface defines the contract for invoice storage
type InvoiceRepositoryInterface interface {
	Create(invoice *models.Invoice) error
	GetByID(id uuid.UUID) (*models.Invoice, error)
	GetByNumber(number string) (*models.Invoice, error)
	List(status string, offset, limit int) ([]models.Invoice, int64, error)
	Update(invoice *models.Invoice) error
	Delete(id uuid.UUID) error
}

// PersonRepositoryInterface defines the contract for person storage
type PersonRepositoryInterface interface {
	Create(person *models.Person) error
	GetByID(id uuid.UUID) (*models.Person, error)
	GetAll() ([]models.Person, error)
	Update(person *models.Person) error
	Delete(id uuid.UUID) error
}

// PaymentMethodRepositoryInterface defines the contract for payment method storage
type PaymentMethodRepositoryInterface interface {
	Create(method *models.PaymentMethod) error
	GetByID(id uuid.UUID) (*models.PaymentMethod, error)
	GetAll() ([]models.PaymentMethod, error)
	Update(method *models.PaymentMethod) error
	Delete(id uuid.UUID) error
}
