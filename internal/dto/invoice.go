package dto

import (
	"time"

	"spendtrack/internal/models"
)

// Invoice Request DTOs

// CreateInvoiceRequest represents the request payload for creating an invoice
type CreateInvoiceRequest struct {
	Number     string `json:"number" validate:"required,min=1,max=50"`
	PersonID   string `json:"personId" validate:"omitempty,uuid"`
	Amount     string `json:"amount" validate:"required"`
	IssuedDate string `json:"issuedDate" validate:"required,datetime=2006-01-02"`
	DueDate    string `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Notes      string `json:"notes" validate:"max=1000"`
}

// UpdateInvoiceStatusRequest represents the request payload for a status change
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent paid"`
}

// InvoiceQueryParams contains filter options for invoice listings
type InvoiceQueryParams struct {
	Status string `query:"status"`
}

// Invoice Response DTOs

// InvoiceResponse represents a single invoice in API responses
// Status reflects overdue promotion based on the due date
type InvoiceResponse struct {
	ID         string     `json:"id"`
	Number     string     `json:"number"`
	PersonID   string     `json:"personId,omitempty"`
	Amount     string     `json:"amount"`
	IssuedDate string     `json:"issuedDate"`
	DueDate    string     `json:"dueDate"`
	Status     string     `json:"status"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// InvoiceListResponse represents a filtered list of invoices
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// NewInvoiceResponse maps an invoice model to its API representation,
// promoting sent invoices past their due date to overdue
func NewInvoiceResponse(inv *models.Invoice, asOf time.Time) InvoiceResponse {
	resp := InvoiceResponse{
		ID:         inv.ID.String(),
		Number:     inv.Number,
		Amount:     inv.Amount.StringFixed(2),
		IssuedDate: inv.IssuedDate.Format("2006-01-02"),
		DueDate:    inv.DueDate.Format("2006-01-02"),
		Status:     inv.EffectiveStatus(asOf),
		PaidAt:     inv.PaidAt,
		Notes:      inv.Notes,
	}
	if inv.PersonID != nil {
		resp.PersonID = inv.PersonID.String()
	}
	return resp
}
