package handlers

import (
	"errors"
	"net/http"
	"time"

	"spendtrack/internal/dto"
	apierrors "spendtrack/internal/errors"
	"spendtrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService services.BudgetServiceInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgetService services.BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudget configures a monthly spending limit for a category
// @Summary Create a budget
// @Description Configure a monthly spending limit for one expense category
// @Tags Budgets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateBudgetRequest true "Budget details"
// @Success 201 {object} dto.BudgetResponse "Budget created"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or BUDGET_003 - Invalid limit"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 409 {object} errors.ErrorResponse "BUDGET_002 - Budget already exists for category"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /budgets [post]
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	var req dto.CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	budget, err := h.budgetService.CreateBudget(&req)
	if err != nil {
		return h.sendBudgetError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewBudgetResponse(budget))
}

// GetBudget retrieves one budget by ID
// @Summary Get a budget
// @Description Retrieve a single budget by its ID
// @Tags Budgets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Budget ID (UUID)"
// @Success 200 {object} dto.BudgetResponse "Budget details"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid budget ID"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "BUDGET_001 - Budget not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid budget ID"))
	}

	budget, err := h.budgetService.GetBudgetByID(id)
	if err != nil {
		return h.sendBudgetError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewBudgetResponse(budget))
}

// ListBudgets retrieves all configured budgets
// @Summary List budgets
// @Description Retrieve every configured category budget
// @Tags Budgets
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.BudgetListResponse "Configured budgets"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /budgets [get]
func (h *BudgetHandler) ListBudgets(c echo.Context) error {
	budgets, err := h.budgetService.GetAllBudgets()
	if err != nil {
		return h.sendBudgetError(c, err)
	}

	items := make([]dto.BudgetResponse, 0, len(budgets))
	for i := range budgets {
		items = append(items, dto.NewBudgetResponse(&budgets[i]))
	}

	return c.JSON(http.StatusOK, dto.BudgetListResponse{Budgets: items})
}

// UpdateBudget updates the limit or notes of an existing budget
// @Summary Update a budget
// @Description Update the monthly limit or notes of an existing budget
// @Tags Budgets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Budget ID (UUID)"
// @Param request body dto.UpdateBudgetRequest true "Fields to update"
// @Success 200 {object} dto.BudgetResponse "Updated budget"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "BUDGET_001 - Budget not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid budget ID"))
	}

	var req dto.UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	budget, err := h.budgetService.UpdateBudget(id, &req)
	if err != nil {
		return h.sendBudgetError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewBudgetResponse(budget))
}

// DeleteBudget removes a budget
// @Summary Delete a budget
// @Description Remove a category budget
// @Tags Budgets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Budget ID (UUID)"
// @Success 200 {object} SuccessResponse "Budget deleted"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid budget ID"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "BUDGET_001 - Budget not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid budget ID"))
	}

	if err := h.budgetService.DeleteBudget(id); err != nil {
		return h.sendBudgetError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Budget deleted"})
}

// GetBudgetProgress reports spending against each budget for a month
// @Summary Budget progress
// @Description Report spending against every configured budget for a given month
// @Tags Budgets
// @Security BearerAuth
// @Produce json
// @Param year query int false "Target year, defaults to the current year"
// @Param month query int false "Target month (1-12), defaults to the current month"
// @Success 200 {object} dto.BudgetProgressResponse "Budget progress for the month"
// @Failure 400 {object} errors.ErrorResponse "ANALYTICS_001 - Invalid period"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /budgets/progress [get]
func (h *BudgetHandler) GetBudgetProgress(c echo.Context) error {
	now := time.Now().UTC()
	year, yearErr := getIntParam(c, "year", now.Year())
	month, monthErr := getIntParam(c, "month", int(now.Month()))
	if yearErr != nil || monthErr != nil || year < 1970 || year > 2100 || month < 1 || month > 12 {
		return SendError(c, apierrors.AnalyticsInvalidPeriod)
	}

	progress, err := h.budgetService.GetBudgetProgress(year, month)
	if err != nil {
		return h.sendBudgetError(c, err)
	}

	return c.JSON(http.StatusOK, dto.BudgetProgressResponse{
		Year:     year,
		Month:    month,
		Progress: progress,
	})
}

// sendBudgetError maps budget service errors to API error responses
func (h *BudgetHandler) sendBudgetError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrBudgetNotFound):
		return SendError(c, apierrors.BudgetNotFound)
	case errors.Is(err, services.ErrBudgetAlreadyExists):
		return SendError(c, apierrors.BudgetAlreadyExists)
	case errors.Is(err, services.ErrInvalidBudgetLimit):
		return SendError(c, apierrors.BudgetInvalidLimit)
	case errors.Is(err, services.ErrInvalidCategory):
		return SendError(c, apierrors.ExpenseInvalidCategory)
	default:
		return SendSystemError(c, err)
	}
}
