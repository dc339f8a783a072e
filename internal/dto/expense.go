package dto

import (
	"time"

	"spendtrack/internal/models"
)

// Expense Request DTOs

// CreateExpenseRequest represents the request payload for recording an expense
type CreateExpenseRequest struct {
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Place           string `json:"place" validate:"max=255"`
	Notes           string `json:"notes" validate:"max=1000"`
	Amount          string `json:"amount" validate:"required"`
	Category        string `json:"category" validate:"required,expensecategory"`
	PaymentMethodID string `json:"paymentMethodId" validate:"omitempty,uuid"`
}

// UpdateExpenseRequest represents the request payload for updating an expense
// All fields are optional; only supplied fields are changed
type UpdateExpenseRequest struct {
	Date            *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Place           *string `json:"place" validate:"omitempty,max=255"`
	Notes           *string `json:"notes" validate:"omitempty,max=1000"`
	Amount          *string `json:"amount"`
	Category        *string `json:"category" validate:"omitempty,expensecategory"`
	PaymentMethodID *string `json:"paymentMethodId" validate:"omitempty,uuid"`
}

// ExpenseQueryParams contains filtering and pagination options for expense listings
type ExpenseQueryParams struct {
	Category  string `query:"category"`
	Place     string `query:"place"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	MinAmount string `query:"minAmount"`
	MaxAmount string `query:"maxAmount"`
	Offset    int    `query:"offset"`
	Limit     int    `query:"limit"`
}

// Expense Response DTOs

// ExpenseResponse represents a single expense in API responses
type ExpenseResponse struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`
	Place           string    `json:"place,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Amount          string    `json:"amount"`
	Category        string    `json:"category"`
	PaymentMethodID string    `json:"paymentMethodId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ExpenseListResponse represents a paginated list of expenses
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    int64             `json:"total"`
	Offset   int               `json:"offset"`
	Limit    int               `json:"limit"`
}

// NewExpenseResponse maps an expense model to its API representation
func NewExpenseResponse(e *models.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:        e.ID.String(),
		Date:      e.Date.Format("2006-01-02"),
		Place:     e.Place,
		Notes:     e.Notes,
		Amount:    e.Amount.StringFixed(2),
		Category:  e.Category,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if e.PaymentMethodID != nil {
		resp.PaymentMethodID = e.PaymentMethodID.String()
	}
	return resp
}

// NewExpenseListResponse maps a page of expenses to the list representation
func NewExpenseListResponse(expenses []models.Expense, total int64, offset, limit int) ExpenseListResponse {
	items := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		items = append(items, NewExpenseResponse(&expenses[i]))
	}
	return ExpenseListResponse{
		Expenses: items,
		Total:    total,
		Offset:   offset,
		Limit:    limit,
	}
}
