package handlers

import (
	"errors"
	"net/http"

	"spendtrack/internal/dto"
	apierrors "spendtrack/internal/errors"
	"spendtrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PersonHandler handles person reference-data HTTP requests
type PersonHandler struct {
	personService services.PersonServiceInterface
}

// NewPersonHandler creates a new person handler
func NewPersonHandler(personService services.PersonServiceInterface) *PersonHandler {
	return &PersonHandler{personService: personService}
}

// CreatePerson adds a person to the address book
// @Summary Add a person
// @Description Add a person who can be referenced from invoices
// @Tags People
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePersonRequest true "Person details"
// @Success 201 {object} dto.PersonResponse "Person created"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /people [post]
func (h *PersonHandler) CreatePerson(c echo.Context) error {
	var req dto.CreatePersonRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	person, err := h.personService.CreatePerson(&req)
	if err != nil {
		return h.sendPersonError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewPersonResponse(person))
}

// GetPerson retrieves one person by ID
// @Summary Get a person
// @Description Retrieve a single person by ID
// @Tags People
// @Security BearerAuth
// @Produce json
// @Param id path string true "Person ID (UUID)"
// @Success 200 {object} dto.PersonResponse "Person details"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid person ID"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "PERSON_001 - Person not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /people/{id} [get]
func (h *PersonHandler) GetPerson(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid person ID"))
	}

	person, err := h.personService.GetPersonByID(id)
	if err != nil {
		return h.sendPersonError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewPersonResponse(person))
}

// ListPeople retrieves everyone in the address book
// @Summary List people
// @Description Retrieve every known person
// @Tags People
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.PersonListResponse "Known people"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /people [get]
func (h *PersonHandler) ListPeople(c echo.Context) error {
	people, err := h.personService.GetAllPeople()
	if err != nil {
		return h.sendPersonError(c, err)
	}

	items := make([]dto.PersonResponse, 0, len(people))
	for i := range people {
		items = append(items, dto.NewPersonResponse(&people[i]))
	}

	return c.JSON(http.StatusOK, dto.PersonListResponse{People: items})
}

// DeletePerson removes a person
// @Summary Delete a person
// @Description Remove a person from the address book
// @Tags People
// @Security BearerAuth
// @Produce json
// @Param id path string true "Person ID (UUID)"
// @Success 200 {object} SuccessResponse "Person deleted"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid person ID"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "PERSON_001 - Person not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /people/{id} [delete]
func (h *PersonHandler) DeletePerson(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid person ID"))
	}

	if err := h.personService.DeletePerson(id); err != nil {
		return h.sendPersonError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Person deleted"})
}

// sendPersonError maps person service errors to API error responses
func (h *PersonHandler) sendPersonError(c echo.Context, err error) error {
	if errors.Is(err, services.ErrPersonNotFound) {
		return SendError(c, apierrors.PersonNotFound)
	}
	return SendSystemError(c, err)
}

// PaymentMethodHandler handles payment method reference-data HTTP requests
type PaymentMethodHandler struct {
	paymentMethodService services.PaymentMethodServiceInterface
}

// NewPaymentMethodHandler creates a new payment method handler
func NewPaymentMethodHandler(paymentMethodService services.PaymentMethodServiceInterface) *PaymentMethodHandler {
	return &PaymentMethodHandler{paymentMethodService: paymentMethodService}
}

// CreatePaymentMethod adds a payment method
// @Summary Add a payment method
// @Description Add a cash, card, or bank payment method that expenses can reference
// @Tags PaymentMethods
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePaymentMethodRequest true "Payment method details"
// @Success 201 {object} dto.PaymentMethodResponse "Payment method created"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or PAYMENT_002 - Invalid kind"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /payment-methods [post]
func (h *PaymentMethodHandler) CreatePaymentMethod(c echo.Context) error {
	var req dto.CreatePaymentMethodRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	paymentMethod, err := h.paymentMethodService.CreatePaymentMethod(&req)
	if err != nil {
		return h.sendPaymentMethodError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewPaymentMethodResponse(paymentMethod))
}

// GetPaymentMethod retrieves one payment method by ID
// @Summary Get a payment method
// @Description Retrieve a single payment method by ID
// @Tags PaymentMethods
// @Security BearerAuth
// @Produce json
// @Param id path string true "Payment method ID (UUID)"
// @Success 200 {object} dto.PaymentMethodResponse "Payment method details"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid payment method ID"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "PAYMENT_001 - Payment method not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /payment-methods/{id} [get]
func (h *PaymentMethodHandler) GetPaymentMethod(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid payment method ID"))
	}

	paymentMethod, err := h.paymentMethodService.GetPaymentMethodByID(id)
	if err != nil {
		return h.sendPaymentMethodError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewPaymentMethodResponse(paymentMethod))
}

// ListPaymentMethods retrieves all configured payment methods
// @Summary List payment methods
// @Description Retrieve every configured payment method
// @Tags PaymentMethods
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.PaymentMethodListResponse "Configured payment methods"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /payment-methods [get]
func (h *PaymentMethodHandler) ListPaymentMethods(c echo.Context) error {
	paymentMethods, err := h.paymentMethodService.GetAllPaymentMethods()
	if err != nil {
		return h.sendPaymentMethodError(c, err)
	}

	items := make([]dto.PaymentMethodResponse, 0, len(paymentMethods))
	for i := range paymentMethods {
		items = append(items, dto.NewPaymentMethodResponse(&paymentMethods[i]))
	}

	return c.JSON(http.StatusOK, dto.PaymentMethodListResponse{PaymentMethods: items})
}

// DeletePaymentMethod removes a payment method
// @Summary Delete a payment method
// @Description Remove a payment method
// @Tags PaymentMethods
// @Security BearerAuth
// @Produce json
// @Param id path string true "Payment method ID (UUID)"
// @Success 200 {object} SuccessResponse "Payment method deleted"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid payment method ID"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "PAYMENT_001 - Payment method not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /payment-methods/{id} [delete]
func (h *PaymentMethodHandler) DeletePaymentMethod(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid payment method ID"))
	}

	if err := h.paymentMethodService.DeletePaymentMethod(id); err != nil {
		return h.sendPaymentMethodError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Payment method deleted"})
}

// sendPaymentMethodError maps payment method service errors to API error responses
func (h *PaymentMethodHandler) sendPaymentMethodError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrPaymentMethodNotFound):
		return SendError(c, apierrors.PaymentMethodNotFound)
	case errors.Is(err, services.ErrInvalidPaymentMethodKind):
		return SendError(c, apierrors.PaymentMethodInvalidKind)
	default:
		return SendSystemError(c, err)
	}
}
