package handlers

import (
	"net/http"

	apierrors "spendtrack/internal/errors"
	"spendtrack/internal/services"

	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints
// These endpoints must not be routed in production environments
type DevHandler struct {
	seeder services.LedgerSeederInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(seeder services.LedgerSeederInterface) *DevHandler {
	return &DevHandler{seeder: seeder}
}

// SeedExpenses fills the ledger with realistic test expenses
//
// Method: POST /api/dev/seed
// Environment: Development only
//
// Query parameters:
//   - count: Number of random expenses to generate (default: 200, max: 2000)
//   - days: Days of history to spread them over (default: 365, max: 1095)
func (h *DevHandler) SeedExpenses(c echo.Context) error {
	count, err := getIntParam(c, "count", 200)
	if err != nil || count < 1 || count > 2000 {
		return SendError(c, apierrors.ValidationOutOfRange, apierrors.WithDetails("count must be between 1 and 2000"))
	}

	days, err := getIntParam(c, "days", 365)
	if err != nil || days < 1 || days > 1095 {
		return SendError(c, apierrors.ValidationOutOfRange, apierrors.WithDetails("days must be between 1 and 1095"))
	}

	created, err := h.seeder.SeedExpenses(count, days)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Ledger seeded",
		Data:    map[string]int{"expenses_created": created},
	})
}
