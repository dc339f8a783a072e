package dto

import (
	"spendtrack/internal/models"
)

// Budget Request DTOs

// CreateBudgetRequest represents the request payload for creating a category budget
type CreateBudgetRequest struct {
	Category     string `json:"category" validate:"required,expensecategory"`
	MonthlyLimit string `json:"monthlyLimit" validate:"required"`
	Notes        string `json:"notes" validate:"max=1000"`
}

// UpdateBudgetRequest represents the request payload for updating a budget
type UpdateBudgetRequest struct {
	MonthlyLimit *string `json:"monthlyLimit"`
	Notes        *string `json:"notes" validate:"omitempty,max=1000"`
}

// BudgetProgressParams contains the period for budget progress queries
type BudgetProgressParams struct {
	Year  int `query:"year"`
	Month int `query:"month"`
}

// Budget Response DTOs

// BudgetResponse represents a single budget in API responses
type BudgetResponse struct {
	ID           string `json:"id"`
	Category     string `json:"category"`
	MonthlyLimit string `json:"monthlyLimit"`
	Notes        string `json:"notes,omitempty"`
}

// BudgetListResponse represents all configured budgets
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// BudgetProgressResponse reports spending against each budget for a month
type BudgetProgressResponse struct {
	Year     int                     `json:"year"`
	Month    int                     `json:"month"`
	Progress []models.BudgetProgress `json:"progress"`
}

// NewBudgetResponse maps a budget model to its API representation
func NewBudgetResponse(b *models.Budget) BudgetResponse {
	return BudgetResponse{
		ID:           b.ID.String(),
		Category:     b.Category,
		MonthlyLimit: b.MonthlyLimit.StringFixed(2),
		Notes:        b.Notes,
	}
}
