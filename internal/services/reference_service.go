package services

import (
	"errors"
	"fmt"
	"log/slog"

	"spendtrack/internal/dto"
	"spendtrack/internal/models"
	"spendtrack/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrPersonNotFound           = errors.New("person not found")
	ErrPaymentMethodNotFound    = errors.New("payment method not found")
	ErrInvalidPaymentMethodKind = errors.New("invalid payment method kind")
)

// personService implements PersonServiceInterface
type personService struct {
	personRepo repositories.PersonRepositoryInterface
	logger     *slog.Logger
}

// NewPersonService creates a person reference-data service
func NewPersonService(
	personRepo repositories.PersonRepositoryInterface,
	logger *slog.Logger,
) PersonServiceInterface {
	return &personService{
		personRepo: personRepo,
		logger:     logger,
	}
}

// CreatePerson adds a counterparty
func (s *personService) CreatePerson(req *dto.CreatePersonRequest) (*models.Person, error) {
	person := &models.Person{
		Name:  req.Name,
		Email: req.Email,
		Notes: req.Notes,
	}
	if err := s.personRepo.Create(person); err != nil {
		return nil, fmt.Errorf("failed to create person: %w", err)
	}
	return person, nil
}

// GetPersonByID fetches a single person
func (s *personService) GetPersonByID(id uuid.UUID) (*models.Person, error) {
	person, err := s.personRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrPersonNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return person, nil
}

// GetAllPeople returns every known person
func (s *personService) GetAllPeople() ([]models.Person, error) {
	people, err := s.personRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	return people, nil
}

// DeletePerson removes a person
func (s *personService) DeletePerson(id uuid.UUID) error {
	if err := s.personRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrPersonNotFound) {
			return ErrPersonNotFound
		}
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return nil
}

// paymentMethodService implements PaymentMethodServiceInterface
type paymentMethodService struct {
	methodRepo repositories.PaymentMethodRepositoryInterface
	logger     *slog.Logger
}

// NewPaymentMethodService creates a payment method reference-data service
func NewPaymentMethodService(
	methodRepo repositories.PaymentMethodRepositoryInterface,
	logger *slog.Logger,
) PaymentMethodServiceInterface {
	return &paymentMethodService{
		methodRepo: methodRepo,
		logger:     logger,
	}
}

// CreatePaymentMethod adds a payment method
func (s *paymentMethodService) CreatePaymentMethod(req *dto.CreatePaymentMethodRequest) (*models.PaymentMethod, error) {
	if !models.IsValidPaymentMethodKind(req.Kind) {
		return nil, ErrInvalidPaymentMethodKind
	}

	method := &models.PaymentMethod{
		Name: req.Name,
		Kind: req.Kind,
	}
	if err := s.methodRepo.Create(method); err != nil {
		return nil, fmt.Errorf("failed to create payment method: %w", err)
	}
	return method, nil
}

// GetPaymentMethodByID fetches a single payment method
func (s *paymentMethodService) GetPaymentMethodByID(id uuid.UUID) (*models.PaymentMethod, error) {
	method, err := s.methodRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentMethodNotFound) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}
	return method, nil
}

// GetAllPaymentMethods returns every configured payment method
func (s *paymentMethodService) GetAllPaymentMethods() ([]models.PaymentMethod, error) {
	methods, err := s.methodRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return methods, nil
}

// DeletePaymentMethod removes a payment method
func (s *paymentMethodService) DeletePaymentMethod(id uuid.UUID) error {
	if err := s.methodRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrPaymentMethodNotFound) {
			return ErrPaymentMethodNotFound
		}
		return fmt.Errorf("failed to delete payment method: %w", err)
	}
	return nil
}
