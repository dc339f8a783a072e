package dto

import (
	"spendtrack/internal/models"
)

// Person Request DTOs

// CreatePersonRequest represents the request payload for adding a person
type CreatePersonRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Email string `json:"email" validate:"omitempty,email"`
	Notes string `json:"notes" validate:"max=1000"`
}

// Payment method Request DTOs

// CreatePaymentMethodRequest represents the request payload for adding a payment method
type CreatePaymentMethodRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Kind string `json:"kind" validate:"required,oneof=cash card bank"`
}

// Person Response DTOs

// PersonResponse represents a single person in API responses
type PersonResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// PersonListResponse represents all known people
type PersonListResponse struct {
	People []PersonResponse `json:"people"`
}

// Payment method Response DTOs

// PaymentMethodResponse represents a single payment method in API responses
type PaymentMethodResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// PaymentMethodListResponse represents all configured payment methods
type PaymentMethodListResponse struct {
	PaymentMethods []PaymentMethodResponse `json:"paymentMethods"`
}

// NewPersonResponse maps a person model to its API representation
func NewPersonResponse(p *models.Person) PersonResponse {
	return PersonResponse{
		ID:    p.ID.String(),
		Name:  p.Name,
		Email: p.Email,
		Notes: p.Notes,
	}
}

// NewPaymentMethodResponse maps a payment method model to its API representation
func NewPaymentMethodResponse(pm *models.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:   pm.ID.String(),
		Name: pm.Name,
		Kind: pm.Kind,
	}
}
