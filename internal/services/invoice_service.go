package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"spendtrack/internal/dto"
	"spendtrack/internal/models"
	"spendtrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrInvoiceNumberTaken   = errors.New("invoice number already taken")
	ErrInvalidInvoiceStatus = errors.New("invalid invoice status")
	ErrInvoiceAlreadyPaid   = errors.New("invoice already paid")
	ErrInvalidInvoiceAmount = errors.New("invoice amount must be positive")
	ErrInvalidInvoiceDates  = errors.New("due date must not be before issued date")
	ErrPersonGone           = errors.New("person not found")
)

// invoiceService implements InvoiceServiceInterface
type invoiceService struct {
	invoiceRepo repositories.InvoiceRepositoryInterface
	personRepo  repositories.PersonRepositoryInterface
	logger      *slog.Logger
	nowFn       func() time.Time
}

// NewInvoiceService creates an invoice service
func NewInvoiceService(
	invoiceRepo repositories.InvoiceRepositoryInterface,
	personRepo repositories.PersonRepositoryInterface,
	logger *slog.Logger,
) InvoiceServiceInterface {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		personRepo:  personRepo,
		logger:      logger,
		nowFn:       time.Now,
	}
}

// CreateInvoice records a new invoice in draft status
func (s *invoiceService) CreateInvoice(req *dto.CreateInvoiceRequest) (*models.Invoice, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, ErrInvalidInvoiceAmount
	}

	issuedDate, err := time.Parse("2006-01-02", req.IssuedDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if dueDate.Before(issuedDate) {
		return nil, ErrInvalidInvoiceDates
	}

	invoice := &models.Invoice{
		Number:     req.Number,
		Amount:     amount,
		IssuedDate: issuedDate,
		DueDate:    dueDate,
		Status:     models.InvoiceStatusDraft,
		Notes:      req.Notes,
	}

	if req.PersonID != "" {
		personID, err := uuid.Parse(req.PersonID)
		if err != nil {
			return nil, ErrPersonGone
		}
		if _, err := s.personRepo.GetByID(personID); err != nil {
			if errors.Is(err, repositories.ErrPersonNotFound) {
				return nil, ErrPersonGone
			}
			return nil, fmt.Errorf("failed to verify person: %w", err)
		}
		invoice.PersonID = &personID
	}

	if err := s.invoiceRepo.Create(invoice); err != nil {
		if errors.Is(err, repositories.ErrInvoiceNumberTaken) {
			return nil, ErrInvoiceNumberTaken
		}
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.logger.Info("invoice created", "invoice_id", invoice.ID, "number", invoice.Number)
	return invoice, nil
}

// GetInvoiceByID fetches a single invoice
func (s *invoiceService) GetInvoiceByID(id uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrInvoiceNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return invoice, nil
}

// ListInvoices returns invoices, optionally filtered by effective status.
// Filtering by "overdue" matches sent invoices past their due date.
func (s *invoiceService) ListInvoices(status string) ([]models.Invoice, error) {
	if status != "" && !models.IsValidInvoiceStatus(status) {
		return nil, ErrInvalidInvoiceStatus
	}

	// Overdue is a derived state, so filter in memory against the due date.
	storedStatus := status
	if status == models.InvoiceStatusOverdue {
		storedStatus = models.InvoiceStatusSent
	}

	invoices, _, err := s.invoiceRepo.List(storedStatus, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	if status != models.InvoiceStatusOverdue {
		return invoices, nil
	}

	now := s.nowFn()
	overdue := make([]models.Invoice, 0, len(invoices))
	for i := range invoices {
		if invoices[i].EffectiveStatus(now) == models.InvoiceStatusOverdue {
			overdue = append(overdue, invoices[i])
		}
	}
	return overdue, nil
}

// UpdateInvoiceStatus moves an invoice through its lifecycle. Paid invoices
// are terminal; marking paid stamps PaidAt.
func (s *invoiceService) UpdateInvoiceStatus(id uuid.UUID, status string) (*models.Invoice, error) {
	// Overdue is derived from the due date, never set directly.
	if !models.IsValidInvoiceStatus(status) || status == models.InvoiceStatusOverdue {
		return nil, ErrInvalidInvoiceStatus
	}

	invoice, err := s.GetInvoiceByID(id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == models.InvoiceStatusPaid {
		return nil, ErrInvoiceAlreadyPaid
	}

	invoice.Status = status
	if invoice.Status == models.InvoiceStatusPaid {
		paidAt := s.nowFn()
		invoice.PaidAt = &paidAt
	}

	if err := s.invoiceRepo.Update(invoice); err != nil {
		if errors.Is(err, repositories.ErrInvoiceNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return invoice, nil
}

// DeleteInvoice removes an invoice
func (s *invoiceService) DeleteInvoice(id uuid.UUID) error {
	if err := s.invoiceRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrInvoiceNotFound) {
			return ErrInvoiceNotFound
		}
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}
