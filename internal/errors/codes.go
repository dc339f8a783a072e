package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
	AuthMissingToken       ErrorCode = "AUTH_002"
	AuthExpiredToken       ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat ErrorCode = "AUTH_004"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_005"
)

// Expense error codes (EXPENSE_*)
const (
	ExpenseNotFound         ErrorCode = "EXPENSE_001"
	ExpenseInvalidID        ErrorCode = "EXPENSE_002"
	ExpenseInvalidAmount    ErrorCode = "EXPENSE_003"
	ExpenseInvalidCategory  ErrorCode = "EXPENSE_004"
	ExpenseInvalidDateRange ErrorCode = "EXPENSE_005"
)

// Budget error codes (BUDGET_*)
const (
	BudgetNotFound      ErrorCode = "BUDGET_001"
	BudgetAlreadyExists ErrorCode = "BUDGET_002"
	BudgetInvalidLimit  ErrorCode = "BUDGET_003"
)

// Loan error codes (LOAN_*)
const (
	LoanNotFound    ErrorCode = "LOAN_001"
	LoanInvalidTerm ErrorCode = "LOAN_002"
	LoanInvalidRate ErrorCode = "LOAN_003"
)

// Invoice error codes (INVOICE_*)
const (
	InvoiceNotFound      ErrorCode = "INVOICE_001"
	InvoiceNumberTaken   ErrorCode = "INVOICE_002"
	InvoiceInvalidStatus ErrorCode = "INVOICE_003"
	InvoiceAlreadyPaid   ErrorCode = "INVOICE_004"
)

// Person error codes (PERSON_*)
const (
	PersonNotFound ErrorCode = "PERSON_001"
)

// Payment method error codes (PAYMENT_*)
const (
	PaymentMethodNotFound    ErrorCode = "PAYMENT_001"
	PaymentMethodInvalidKind ErrorCode = "PAYMENT_002"
)

// Analytics error codes (ANALYTICS_*)
const (
	AnalyticsInvalidPeriod   ErrorCode = "ANALYTICS_001"
	AnalyticsInvalidLookback ErrorCode = "ANALYTICS_002"
	AnalyticsAnomalyNotFound ErrorCode = "ANALYTICS_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials: "Invalid email or password",
	AuthMissingToken:       "Authorization token is required",
	AuthExpiredToken:       "Authorization token has expired",
	AuthInvalidTokenFormat: "Invalid authorization token format",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidDate:   "Invalid date format or range",

	// Expense errors
	ExpenseNotFound:         "Expense not found",
	ExpenseInvalidID:        "Invalid expense ID format",
	ExpenseInvalidAmount:    "Expense amount must not be negative",
	ExpenseInvalidCategory:  "Unknown expense category",
	ExpenseInvalidDateRange: "End date must not be before start date",

	// Budget errors
	BudgetNotFound:      "Budget not found",
	BudgetAlreadyExists: "A budget for this category already exists",
	BudgetInvalidLimit:  "Budget monthly limit must be positive",

	// Loan errors
	LoanNotFound:    "Loan not found",
	LoanInvalidTerm: "Loan term must be at least one month",
	LoanInvalidRate: "Loan rate must not be negative",

	// Invoice errors
	InvoiceNotFound:      "Invoice not found",
	InvoiceNumberTaken:   "An invoice with this number already exists",
	InvoiceInvalidStatus: "Invalid invoice status",
	InvoiceAlreadyPaid:   "Invoice has already been paid",

	// Person errors
	PersonNotFound: "Person not found",

	// Payment method errors
	PaymentMethodNotFound:    "Payment method not found",
	PaymentMethodInvalidKind: "Invalid payment method kind",

	// Analytics errors
	AnalyticsInvalidPeriod:   "Invalid year or month for analytics period",
	AnalyticsInvalidLookback: "Lookback days must be between 1 and 3650",
	AnalyticsAnomalyNotFound: "Anomaly not found for the given expense ID",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
