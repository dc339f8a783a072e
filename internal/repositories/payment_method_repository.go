package repositories

import (
	"errors"
	"fmt"
	"time"

	"spendtrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPaymentMethodNotFound = errors.New("payment method not found")

// paymentMethodRepository implements PaymentMethodRepositoryInterface
type paymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository creates a new payment method repository
func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepositoryInterface {
	return &paymentMethodRepository{
		db: db,
	}
}

// Create creates a new payment method
func (r *paymentMethodRepository) Create(method *models.PaymentMethod) error {
	if err := r.db.Create(method).Error; err != nil {
		return fmt.Errorf("failed to create payment method: %w", err)
	}
	return nil
}

// GetByID retrieves a payment method by ID
func (r *paymentMethodRepository) GetByID(id uuid.UUID) (*models.PaymentMethod, error) {
	method := &models.PaymentMethod{ID: id}
	if err := r.db.First(method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}
	return method, nil
}

// GetAll retrieves all payment methods
func (r *paymentMethodRepository) GetAll() ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	if err := r.db.Order("name ASC").Find(&methods).Error; err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return methods, nil
}

// Update saves changes to an existing payment method
func (r *paymentMethodRepository) Update(method *models.PaymentMethod) error {
	result := r.db.Model(method).
		Where("id = ?", method.ID).
		Updates(map[string]interface{}{
			"name":       method.Name,
			"kind":       method.Kind,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update payment method: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPaymentMethodNotFound
	}
	return nil
}

// Delete removes a payment method by ID
func (r *paymentMethodRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.PaymentMethod{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete payment method: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPaymentMethodNotFound
	}
	return nil
}
