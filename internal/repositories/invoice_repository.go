package repositories

import (
	"errors"
	"fmt"
	"time"

	"spendtrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrInvoiceNumberTaken = errors.New("an invoice with this number already exists")
)

// invoiceRepository implements InvoiceRepositoryInterface
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) InvoiceRepositoryInterface {
	return &invoiceRepository{
		db: db,
	}
}

// Create creates a new invoice
func (r *invoiceRepository) Create(invoice *models.Invoice) error {
	var count int64
	if err := r.db.Model(&models.Invoice{}).
		Where("number = ?", invoice.Number).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check invoice number: %w", err)
	}
	if count > 0 {
		return ErrInvoiceNumberTaken
	}

	if err := r.db.Create(invoice).Error; err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// GetByID retrieves an invoice by ID
func (r *invoiceRepository) GetByID(id uuid.UUID) (*models.Invoice, error) {
	invoice := &models.Invoice{ID: id}
	if err := r.db.First(invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return invoice, nil
}

// GetByNumber retrieves an invoice by its number
func (r *invoiceRepository) GetByNumber(number string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.Where("number = ?", number).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice by number: %w", err)
	}
	return &invoice, nil
}

// List retrieves invoices, optionally filtered by status, with pagination
func (r *invoiceRepository) List(status string, offset, limit int) ([]models.Invoice, int64, error) {
	query := r.db.Model(&models.Invoice{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	var invoices []models.Invoice
	if err := query.Offset(offset).Limit(limit).
		Order("due_date ASC").
		Find(&invoices).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	return invoices, total, nil
}

// Update saves changes to an existing invoice
func (r *invoiceRepository) Update(invoice *models.Invoice) error {
	result := r.db.Model(invoice).
		Where("id = ?", invoice.ID).
		Updates(map[string]interface{}{
			"number":      invoice.Number,
			"person_id":   invoice.PersonID,
			"amount":      invoice.Amount,
			"issued_date": invoice.IssuedDate,
			"due_date":    invoice.DueDate,
			"status":      invoice.Status,
			"paid_at":     invoice.PaidAt,
			"notes":       invoice.Notes,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

// Delete removes an invoice by ID
func (r *invoiceRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Invoice{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}
