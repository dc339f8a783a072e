package repositories

import (
	"errors"
	"fmt"
	"time"

	"spendtrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPersonNotFound = errors.New("person not found")

// personRepository implements PersonRepositoryInterface
type personRepository struct {
	db *gorm.DB
}

// NewPersonRepository creates a new person repository
func NewPersonRepository(db *gorm.DB) PersonRepositoryInterface {
	return &personRepository{
		db: db,
	}
}

// Create creates a new person
func (r *personRepository) Create(person *models.Person) error {
	if err := r.db.Create(person).Error; err != nil {
		return fmt.Errorf("failed to create person: %w", err)
	}
	return nil
}

// GetByID retrieves a person by ID
func (r *personRepository) GetByID(id uuid.UUID) (*models.Person, error) {
	person := &models.Person{ID: id}
	if err := r.db.First(person).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return person, nil
}

// GetAll retrieves all people
func (r *personRepository) GetAll() ([]models.Person, error) {
	var people []models.Person
	if err := r.db.Order("name ASC").Find(&people).Error; err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	return people, nil
}

// Update saves changes to an existing person
func (r *personRepository) Update(person *models.Person) error {
	result := r.db.Model(person).
		Where("id = ?", person.ID).
		Updates(map[string]interface{}{
			"name":       person.Name,
			"email":      person.Email,
			"notes":      person.Notes,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update person: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPersonNotFound
	}
	return nil
}

// Delete removes a person by ID
func (r *personRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Person{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete person: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPersonNotFound
	}
	return nil
}
