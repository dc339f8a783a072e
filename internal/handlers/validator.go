package handlers

import (
	"github.com/labstack/echo/v4"

	"spendtrack/internal/validation"
)

// CustomValidator implements echo.Validator interface
type CustomValidator struct{}

// NewValidator creates a new custom validator backed by the shared
// validator instance with the finance-domain rules registered.
func NewValidator() echo.Validator {
	return &CustomValidator{}
}

// Validate implements the echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	return validation.GetValidator().Struct(i)
}
