package handlers

import (
	"errors"
	"net/http"
	"time"

	"spendtrack/internal/dto"
	apierrors "spendtrack/internal/errors"
	"spendtrack/internal/models"
	"spendtrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService services.ExpenseServiceInterface
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService services.ExpenseServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpense records a new expense
// @Summary Record an expense
// @Description Record a dated expense with amount, category, and optional merchant and payment method
// @Tags Expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse "Expense created"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or EXPENSE_003 - Invalid amount"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "PAYMENT_001 - Payment method not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /expenses [post]
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	var req dto.CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	expense, err := h.expenseService.CreateExpense(&req)
	if err != nil {
		return h.sendExpenseError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewExpenseResponse(expense))
}

// GetExpense retrieves one expense by ID
// @Summary Get an expense
// @Description Retrieve a single expense by its ID
// @Tags Expenses
// @Security BearerAuth
// @Produce json
// @Param id path string true "Expense ID (UUID)"
// @Success 200 {object} dto.ExpenseResponse "Expense details"
// @Failure 400 {object} errors.ErrorResponse "EXPENSE_002 - Invalid expense ID"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "EXPENSE_001 - Expense not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ExpenseInvalidID)
	}

	expense, err := h.expenseService.GetExpenseByID(id)
	if err != nil {
		return h.sendExpenseError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewExpenseResponse(expense))
}

// UpdateExpense updates fields of an existing expense
// @Summary Update an expense
// @Description Update the supplied fields of an existing expense
// @Tags Expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Expense ID (UUID)"
// @Param request body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseResponse "Updated expense"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "EXPENSE_001 - Expense not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ExpenseInvalidID)
	}

	var req dto.UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	expense, err := h.expenseService.UpdateExpense(id, &req)
	if err != nil {
		return h.sendExpenseError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewExpenseResponse(expense))
}

// DeleteExpense removes an expense
// @Summary Delete an expense
// @Description Permanently remove an expense from the ledger
// @Tags Expenses
// @Security BearerAuth
// @Produce json
// @Param id path string true "Expense ID (UUID)"
// @Success 200 {object} SuccessResponse "Expense deleted"
// @Failure 400 {object} errors.ErrorResponse "EXPENSE_002 - Invalid expense ID"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "EXPENSE_001 - Expense not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ExpenseInvalidID)
	}

	if err := h.expenseService.DeleteExpense(id); err != nil {
		return h.sendExpenseError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Expense deleted"})
}

// ListExpenses retrieves a filtered, paginated expense listing
// @Summary List expenses
// @Description Retrieve expenses filtered by category, merchant, date range, and amount range
// @Tags Expenses
// @Security BearerAuth
// @Produce json
// @Param category query string false "Filter by category"
// @Param place query string false "Filter by merchant name"
// @Param startDate query string false "Inclusive range start (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive range end (YYYY-MM-DD)"
// @Param minAmount query string false "Minimum amount"
// @Param maxAmount query string false "Maximum amount"
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Page size (max 100)" default(20)
// @Success 200 {object} dto.ExpenseListResponse "Expense listing"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid filter parameters"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /expenses [get]
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	var params dto.ExpenseQueryParams
	if err := c.Bind(&params); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid query parameters"))
	}

	filters, err := buildExpenseFilters(params)
	if err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails(err.Error()))
	}

	if params.Offset < 0 {
		params.Offset = 0
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	expenses, total, err := h.expenseService.ListExpenses(filters, params.Offset, limit)
	if err != nil {
		return h.sendExpenseError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewExpenseListResponse(expenses, total, params.Offset, limit))
}

// buildExpenseFilters converts raw query parameters into typed filters
func buildExpenseFilters(params dto.ExpenseQueryParams) (models.ExpenseFilters, error) {
	filters := models.ExpenseFilters{
		Category: params.Category,
		Place:    params.Place,
	}

	if params.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", params.StartDate)
		if err != nil {
			return filters, errors.New("startDate must be YYYY-MM-DD")
		}
		filters.StartDate = &parsed
	}
	if params.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", params.EndDate)
		if err != nil {
			return filters, errors.New("endDate must be YYYY-MM-DD")
		}
		filters.EndDate = &parsed
	}
	if params.MinAmount != "" {
		parsed, err := decimal.NewFromString(params.MinAmount)
		if err != nil {
			return filters, errors.New("minAmount must be a decimal number")
		}
		filters.MinAmount = &parsed
	}
	if params.MaxAmount != "" {
		parsed, err := decimal.NewFromString(params.MaxAmount)
		if err != nil {
			return filters, errors.New("maxAmount must be a decimal number")
		}
		filters.MaxAmount = &parsed
	}

	return filters, nil
}

// sendExpenseError maps expense service errors to API error responses
func (h *ExpenseHandler) sendExpenseError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrExpenseNotFound):
		return SendError(c, apierrors.ExpenseNotFound)
	case errors.Is(err, services.ErrInvalidAmount):
		return SendError(c, apierrors.ExpenseInvalidAmount)
	case errors.Is(err, services.ErrInvalidDate):
		return SendError(c, apierrors.ValidationInvalidDate)
	case errors.Is(err, services.ErrInvalidCategory):
		return SendError(c, apierrors.ExpenseInvalidCategory)
	case errors.Is(err, services.ErrInvalidDateRange):
		return SendError(c, apierrors.ExpenseInvalidDateRange)
	case errors.Is(err, services.ErrPaymentMethodGone):
		return SendError(c, apierrors.PaymentMethodNotFound)
	default:
		return SendSystemError(c, err)
	}
}
