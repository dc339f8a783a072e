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
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService services.InvoiceServiceInterface
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService services.InvoiceServiceInterface) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// CreateInvoice creates a draft invoice
// @Summary Create an invoice
// @Description Create a draft invoice with a unique number, amount, and due date
// @Tags Invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse "Invoice created"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "PERSON_001 - Person not found"
// @Failure 409 {object} errors.ErrorResponse "INVOICE_002 - Invoice number already taken"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c echo.Context) error {
	var req dto.CreateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	invoice, err := h.invoiceService.CreateInvoice(&req)
	if err != nil {
		return h.sendInvoiceError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewInvoiceResponse(invoice, time.Now().UTC()))
}

// GetInvoice retrieves one invoice by ID
// @Summary Get an invoice
// @Description Retrieve a single invoice; sent invoices past their due date report overdue
// @Tags Invoices
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} dto.InvoiceResponse "Invoice details"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid invoice ID"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "INVOICE_001 - Invoice not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid invoice ID"))
	}

	invoice, err := h.invoiceService.GetInvoiceByID(id)
	if err != nil {
		return h.sendInvoiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewInvoiceResponse(invoice, time.Now().UTC()))
}

// ListInvoices retrieves invoices optionally filtered by status
// @Summary List invoices
// @Description Retrieve invoices, optionally filtered by effective status including overdue
// @Tags Invoices
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status" Enums(draft, sent, paid, overdue)
// @Success 200 {object} dto.InvoiceListResponse "Invoice listing"
// @Failure 400 {object} errors.ErrorResponse "INVOICE_003 - Invalid status filter"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /invoices [get]
func (h *InvoiceHandler) ListInvoices(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && !models.IsValidInvoiceStatus(status) {
		return SendError(c, apierrors.InvoiceInvalidStatus)
	}

	invoices, err := h.invoiceService.ListInvoices(status)
	if err != nil {
		return h.sendInvoiceError(c, err)
	}

	now := time.Now().UTC()
	items := make([]dto.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		items = append(items, dto.NewInvoiceResponse(&invoices[i], now))
	}

	return c.JSON(http.StatusOK, dto.InvoiceListResponse{Invoices: items})
}

// UpdateInvoiceStatus transitions an invoice between lifecycle states
// @Summary Update invoice status
// @Description Transition an invoice between draft, sent, and paid; overdue is derived and cannot be set
// @Tags Invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param request body dto.UpdateInvoiceStatusRequest true "New status"
// @Success 200 {object} dto.InvoiceResponse "Updated invoice"
// @Failure 400 {object} errors.ErrorResponse "INVOICE_003 - Invalid status"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "INVOICE_001 - Invoice not found"
// @Failure 422 {object} errors.ErrorResponse "INVOICE_004 - Invoice already paid"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /invoices/{id}/status [put]
func (h *InvoiceHandler) UpdateInvoiceStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid invoice ID"))
	}

	var req dto.UpdateInvoiceStatusRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	invoice, err := h.invoiceService.UpdateInvoiceStatus(id, req.Status)
	if err != nil {
		return h.sendInvoiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewInvoiceResponse(invoice, time.Now().UTC()))
}

// DeleteInvoice removes an invoice
// @Summary Delete an invoice
// @Description Permanently remove an invoice
// @Tags Invoices
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} SuccessResponse "Invoice deleted"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid invoice ID"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "INVOICE_001 - Invoice not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid invoice ID"))
	}

	if err := h.invoiceService.DeleteInvoice(id); err != nil {
		return h.sendInvoiceError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Invoice deleted"})
}

// sendInvoiceError maps invoice service errors to API error responses
func (h *InvoiceHandler) sendInvoiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrInvoiceNotFound):
		return SendError(c, apierrors.InvoiceNotFound)
	case errors.Is(err, services.ErrInvoiceNumberTaken):
		return SendError(c, apierrors.InvoiceNumberTaken)
	case errors.Is(err, services.ErrInvalidInvoiceStatus):
		return SendError(c, apierrors.InvoiceInvalidStatus)
	case errors.Is(err, services.ErrInvoiceAlreadyPaid):
		return SendError(c, apierrors.InvoiceAlreadyPaid)
	case errors.Is(err, services.ErrInvalidInvoiceAmount):
		return SendError(c, apierrors.ValidationOutOfRange, apierrors.WithDetails("Amount must be positive"))
	case errors.Is(err, services.ErrInvalidInvoiceDates):
		return SendError(c, apierrors.ValidationInvalidDate, apierrors.WithDetails("Due date must not be before issued date"))
	case errors.Is(err, services.ErrPersonGone):
		return SendError(c, apierrors.PersonNotFound)
	default:
		return SendSystemError(c, err)
	}
}
