package services

import (
	"time"

	"spendtrack/internal/dto"
	"spendtrack/internal/models"

	"github.com/google/uuid"
)

// SufficiencyServiceInterface scores how much historical evidence the ledger
// holds. Every analytics response derives its confidence level from this
// single source.
type SufficiencyServiceInterface interface {
	CheckDataSufficiency() (*models.DataSufficiency, error)
}

// PatternServiceInterface derives day-of-week, seasonal, and recurring
// spending patterns from the expense ledger
type PatternServiceInterface interface {
	GetDayOfWeekPatterns(startDate, endDate *time.Time) (*models.DayOfWeekReport, error)
	GetSeasonalAnalysis(monthsBack int) (*models.SeasonalReport, error)
	GetRecurringPatterns() ([]models.RecurringPattern, error)
}

// AnomalyServiceInterface flags expenses that deviate abnormally from their
// category's historical amount distribution
type AnomalyServiceInterface interface {
	CalculateCategoryBaseline(category string, lookbackDays int) (*models.CategoryBaseline, error)
	DetectAnomalies(lookbackDays int) ([]models.Anomaly, error)
	DismissAnomaly(expenseID uuid.UUID)
	ClearDismissedAnomalies()
}

// PredictionServiceInterface projects month-end spending and compares months
// against their own history
type PredictionServiceInterface interface {
	GetMonthEndPrediction(year, month int) (*models.Prediction, error)
	GetHistoricalComparison(year, month int) (*models.HistoricalComparison, error)
}

// ExpenseServiceInterface defines expense CRUD business operations
type ExpenseServiceInterface interface {
	CreateExpense(req *dto.CreateExpenseRequest) (*models.Expense, error)
	GetExpenseByID(id uuid.UUID) (*models.Expense, error)
	UpdateExpense(id uuid.UUID, req *dto.UpdateExpenseRequest) (*models.Expense, error)
	DeleteExpense(id uuid.UUID) error
	ListExpenses(filters models.ExpenseFilters, offset, limit int) ([]models.Expense, int64, error)
}

// BudgetServiceInterface defines budget CRUD and progress operations
type BudgetServiceInterface interface {
	CreateBudget(req *dto.CreateBudgetRequest) (*models.Budget, error)
	GetBudgetByID(id uuid.UUID) (*models.Budget, error)
	GetAllBudgets() ([]models.Budget, error)
	UpdateBudget(id uuid.UUID, req *dto.UpdateBudgetRequest) (*models.Budget, error)
	DeleteBudget(id uuid.UUID) error
	GetBudgetProgress(year, month int) ([]models.BudgetProgress, error)
}

// LoanServiceInterface defines loan registration and amortization math
type LoanServiceInterface interface {
	CreateLoan(req *dto.CreateLoanRequest) (*models.Loan, error)
	GetLoanByID(id uuid.UUID) (*models.Loan, error)
	GetAllLoans() ([]models.Loan, error)
	DeleteLoan(id uuid.UUID) error
	GetAmortizationSchedule(id uuid.UUID) ([]models.AmortizationRow, error)
	GetLoanBalance(id uuid.UUID, asOf time.Time) (*models.LoanBalance, error)
}

// InvoiceServiceInterface defines invoice lifecycle operations
type InvoiceServiceInterface interface {
	CreateInvoice(req *dto.CreateInvoiceRequest) (*models.Invoice, error)
	GetInvoiceByID(id uuid.UUID) (*models.Invoice, error)
	ListInvoices(status string) ([]models.Invoice, error)
	UpdateInvoiceStatus(id uuid.UUID, status string) (*models.Invoice, error)
	DeleteInvoice(id uuid.UUID) error
}

// PersonServiceInterface defines person reference-data operations
type PersonServiceInterface interface {
	CreatePerson(req *dto.CreatePersonRequest) (*models.Person, error)
	GetPersonByID(id uuid.UUID) (*models.Person, error)
	GetAllPeople() ([]models.Person, error)
	DeletePerson(id uuid.UUID) error
}

// PaymentMethodServiceInterface defines payment method reference-data operations
type PaymentMethodServiceInterface interface {
	CreatePaymentMethod(req *dto.CreatePaymentMethodRequest) (*models.PaymentMethod, error)
	GetPaymentMethodByID(id uuid.UUID) (*models.PaymentMethod, error)
	GetAllPaymentMethods() ([]models.PaymentMethod, error)
	DeletePaymentMethod(id uuid.UUID) error
}

// AuthServiceInterface authenticates the ledger owner and issues tokens
type AuthServiceInterface interface {
	Login(email, password string) (*dto.TokenResponse, error)
}

// TokenServiceInterface defines JWT token generation and validation
type TokenServiceInterface interface {
	GenerateAccessToken(email string) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.OwnerClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// PasswordServiceInterface defines password hashing and verification
type PasswordServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hashedPassword, password string) error
}

// MetricsRecorderInterface records operational metrics for analytics and CRUD
// request handling
type MetricsRecorderInterface interface {
	RecordAnalyticsRequest(operation, status string)
	RecordAnalyticsDuration(operation string, duration time.Duration)
	RecordAnomaliesDetected(count int)
	RecordAnomalyDismissed()
	RecordExpenseCreated(category string)
	RecordExpenseDeleted()
	SetLedgerMonths(months int)
	RecordAuthenticationEvent(event, status string)
}
