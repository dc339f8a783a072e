package handlers

import (
	"net/http"

	"spendtrack/internal/errors"

	"github.com/labstack/echo/v4"
)

// Handlers report failures through SendError (client and business errors)
// and SendSystemError (anything unexpected). Raw echo.NewHTTPError or bare
// c.JSON error bodies would bypass the error envelope and the trace ID.

// TraceIDContextKey mirrors the middleware context key so handlers can read
// the trace ID without importing the middleware package.
const TraceIDContextKey = "trace_id"

// SuccessResponse is the envelope for successful responses.
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty" swaggertype:"object"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty" swaggertype:"object"`
}

// ErrorResponse aliases the standard envelope for use in handler tests.
type ErrorResponse = errors.ErrorResponse

func getTraceID(c echo.Context) string {
	if traceID, ok := c.Get(TraceIDContextKey).(string); ok {
		return traceID
	}
	return ""
}

// SendError writes the envelope for a known error code. The HTTP status
// comes from the code's registered mapping.
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	resp := errors.NewErrorResponse(code, getTraceID(c), opts...)
	return c.JSON(resp.GetHTTPStatus(), resp)
}

// SendSystemError hides an internal error behind SYSTEM_001.
func SendSystemError(c echo.Context, err error) error {
	resp, _ := errors.WrapSystemError(err, getTraceID(c))
	return c.JSON(http.StatusInternalServerError, resp)
}
