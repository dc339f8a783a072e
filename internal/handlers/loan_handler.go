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

// LoanHandler handles loan-related HTTP requests
type LoanHandler struct {
	loanService services.LoanServiceInterface
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService services.LoanServiceInterface) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// CreateLoan registers a fixed-rate loan
// @Summary Register a loan
// @Description Register a fixed-rate annuity loan with principal, rate, and term
// @Tags Loans
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateLoanRequest true "Loan details"
// @Success 201 {object} dto.LoanResponse "Loan registered"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body, LOAN_002 - Invalid term, or LOAN_003 - Invalid rate"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /loans [post]
func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req dto.CreateLoanRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	loan, err := h.loanService.CreateLoan(&req)
	if err != nil {
		return h.sendLoanError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewLoanResponse(loan, services.MonthlyPayment(loan)))
}

// GetLoan retrieves one loan by ID
// @Summary Get a loan
// @Description Retrieve a single loan with its computed monthly payment
// @Tags Loans
// @Security BearerAuth
// @Produce json
// @Param id path string true "Loan ID (UUID)"
// @Success 200 {object} dto.LoanResponse "Loan details"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid loan ID"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "LOAN_001 - Loan not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /loans/{id} [get]
func (h *LoanHandler) GetLoan(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid loan ID"))
	}

	loan, err := h.loanService.GetLoanByID(id)
	if err != nil {
		return h.sendLoanError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewLoanResponse(loan, services.MonthlyPayment(loan)))
}

// ListLoans retrieves all registered loans
// @Summary List loans
// @Description Retrieve every registered loan
// @Tags Loans
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.LoanListResponse "Registered loans"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /loans [get]
func (h *LoanHandler) ListLoans(c echo.Context) error {
	loans, err := h.loanService.GetAllLoans()
	if err != nil {
		return h.sendLoanError(c, err)
	}

	items := make([]dto.LoanResponse, 0, len(loans))
	for i := range loans {
		items = append(items, dto.NewLoanResponse(&loans[i], services.MonthlyPayment(&loans[i])))
	}

	return c.JSON(http.StatusOK, dto.LoanListResponse{Loans: items})
}

// DeleteLoan removes a loan
// @Summary Delete a loan
// @Description Remove a registered loan
// @Tags Loans
// @Security BearerAuth
// @Produce json
// @Param id path string true "Loan ID (UUID)"
// @Success 200 {object} SuccessResponse "Loan deleted"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid loan ID"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "LOAN_001 - Loan not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /loans/{id} [delete]
func (h *LoanHandler) DeleteLoan(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid loan ID"))
	}

	if err := h.loanService.DeleteLoan(id); err != nil {
		return h.sendLoanError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Loan deleted"})
}

// GetAmortizationSchedule returns the full payment schedule for a loan
// @Summary Loan amortization schedule
// @Description Retrieve the month-by-month amortization schedule for a loan
// @Tags Loans
// @Security BearerAuth
// @Produce json
// @Param id path string true "Loan ID (UUID)"
// @Success 200 {object} dto.AmortizationResponse "Amortization schedule"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid loan ID"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "LOAN_001 - Loan not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /loans/{id}/schedule [get]
func (h *LoanHandler) GetAmortizationSchedule(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid loan ID"))
	}

	schedule, err := h.loanService.GetAmortizationSchedule(id)
	if err != nil {
		return h.sendLoanError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AmortizationResponse{
		LoanID:   id.String(),
		Schedule: schedule,
	})
}

// GetLoanBalance reports the outstanding balance of a loan as of a date
// @Summary Loan balance
// @Description Report the outstanding balance of a loan as of a given date
// @Tags Loans
// @Security BearerAuth
// @Produce json
// @Param id path string true "Loan ID (UUID)"
// @Param asOf query string false "Balance date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.LoanBalanceResponse "Outstanding balance"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_005 - Invalid asOf date"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "LOAN_001 - Loan not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /loans/{id}/balance [get]
func (h *LoanHandler) GetLoanBalance(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid loan ID"))
	}

	asOf := time.Now().UTC()
	if raw := c.QueryParam("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return SendError(c, apierrors.ValidationInvalidDate, apierrors.WithDetails("asOf must be YYYY-MM-DD"))
		}
		asOf = parsed
	}

	balance, err := h.loanService.GetLoanBalance(id, asOf)
	if err != nil {
		return h.sendLoanError(c, err)
	}

	return c.JSON(http.StatusOK, dto.LoanBalanceResponse{Balance: *balance})
}

// sendLoanError maps loan service errors to API error responses
func (h *LoanHandler) sendLoanError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrLoanNotFound):
		return SendError(c, apierrors.LoanNotFound)
	case errors.Is(err, services.ErrInvalidLoanTerm):
		return SendError(c, apierrors.LoanInvalidTerm)
	case errors.Is(err, services.ErrInvalidLoanRate):
		return SendError(c, apierrors.LoanInvalidRate)
	case errors.Is(err, services.ErrInvalidLoanAmount):
		return SendError(c, apierrors.ValidationOutOfRange, apierrors.WithDetails("Principal must be positive"))
	case errors.Is(err, services.ErrInvalidLoanStart):
		return SendError(c, apierrors.ValidationInvalidDate, apierrors.WithDetails("Invalid start date"))
	default:
		return SendSystemError(c, err)
	}
}
