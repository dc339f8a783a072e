package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ResponseTestSuite defines the test suite for error responses
type ResponseTestSuite struct {
	suite.Suite
	traceID string
}

// SetupTest runs before each test
func (s *ResponseTestSuite) SetupTest() {
	s.traceID = "550e8400-e29b-41d4-a716-446655440000"
}

// TestResponseTestSuite runs the test suite
func TestResponseTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}

func (s *ResponseTestSuite) TestDefaultMessageComesFromRegistry() {
	resp := NewErrorResponse(AuthInvalidCredentials, s.traceID)

	s.Equal("AUTH_001", resp.Error.Code)
	s.Equal("Invalid email or password", resp.Error.Message)
	s.Equal(s.traceID, resp.Error.TraceID)
	s.Empty(resp.Error.Details)
}

func (s *ResponseTestSuite) TestOptionsComposeInOrder() {
	resp := NewErrorResponse(
		ExpenseNotFound,
		s.traceID,
		WithMessage("No expense with that ID"),
		WithDetails("id: 12345", "hint: it may have been deleted"),
	)

	s.Equal("EXPENSE_001", resp.Error.Code)
	s.Equal("No expense with that ID", resp.Error.Message)
	s.Equal([]string{"id: 12345", "hint: it may have been deleted"}, resp.Error.Details)
}

func (s *ResponseTestSuite) TestValidationErrorCarriesOneDetailPerField() {
	resp := NewValidationError(map[string]string{
		"amount":   "must be greater than or equal to 0",
		"category": "must be a known category",
		"date":     "is required",
	}, s.traceID)

	s.Equal("VALIDATION_001", resp.Error.Code)
	s.Equal("Validation failed", resp.Error.Message)
	s.Len(resp.Error.Details, 3)
	s.Contains(resp.Error.Details, "amount: must be greater than or equal to 0")
	s.Contains(resp.Error.Details, "category: must be a known category")
	s.Contains(resp.Error.Details, "date: is required")
}

func (s *ResponseTestSuite) TestValidationErrorWithNoFields() {
	resp := NewValidationError(map[string]string{}, s.traceID)

	s.Equal("VALIDATION_001", resp.Error.Code)
	s.Empty(resp.Error.Details)
}

func (s *ResponseTestSuite) TestWrapSystemErrorHidesInternals() {
	internal := errors.New("SQL error: table 'expenses' does not exist at /var/lib/sqlite/data")

	resp, logErr := WrapSystemError(internal, s.traceID)

	s.Equal("SYSTEM_001", resp.Error.Code)
	s.Equal(s.traceID, resp.Error.TraceID)
	s.NotContains(resp.Error.Message, "SQL")
	s.NotContains(resp.Error.Message, "/var/lib/sqlite")
	s.Empty(resp.Error.Details)

	// The raw error survives for server-side logging only.
	s.Equal(internal, logErr)
}

func (s *ResponseTestSuite) TestJSONOmitsEmptyDetails() {
	resp := NewErrorResponse(AuthInvalidCredentials, s.traceID)

	raw, err := json.Marshal(resp)
	s.NoError(err)

	var decoded map[string]map[string]interface{}
	s.NoError(json.Unmarshal(raw, &decoded))

	_, hasDetails := decoded["error"]["details"]
	s.False(hasDetails)
	s.Equal("AUTH_001", decoded["error"]["code"])
}

func (s *ResponseTestSuite) TestGetHTTPStatusMapping() {
	cases := map[ErrorCode]int{
		ValidationGeneral:        http.StatusBadRequest,
		ValidationRequiredField:  http.StatusBadRequest,
		ValidationInvalidDate:    http.StatusBadRequest,
		ExpenseInvalidID:         http.StatusBadRequest,
		ExpenseInvalidAmount:     http.StatusBadRequest,
		ExpenseInvalidCategory:   http.StatusBadRequest,
		AnalyticsInvalidPeriod:   http.StatusBadRequest,
		AnalyticsInvalidLookback: http.StatusBadRequest,
		AuthInvalidCredentials:   http.StatusUnauthorized,
		AuthMissingToken:         http.StatusUnauthorized,
		AuthExpiredToken:         http.StatusUnauthorized,
		AuthInvalidTokenFormat:   http.StatusUnauthorized,
		ExpenseNotFound:          http.StatusNotFound,
		BudgetNotFound:           http.StatusNotFound,
		LoanNotFound:             http.StatusNotFound,
		InvoiceNotFound:          http.StatusNotFound,
		PersonNotFound:           http.StatusNotFound,
		AnalyticsAnomalyNotFound: http.StatusNotFound,
		BudgetAlreadyExists:      http.StatusConflict,
		InvoiceNumberTaken:       http.StatusConflict,
		InvoiceAlreadyPaid:       http.StatusUnprocessableEntity,
		SystemRateLimitExceeded:  http.StatusTooManyRequests,
		SystemServiceUnavailable: http.StatusServiceUnavailable,
		SystemInternalError:      http.StatusInternalServerError,
		SystemDatabaseError:      http.StatusInternalServerError,
		ErrorCode("UNKNOWN_999"): http.StatusInternalServerError,
	}

	for code, want := range cases {
		s.Equal(want, GetHTTPStatus(code), string(code))
	}
}

func (s *ResponseTestSuite) TestResponseLevelStatus() {
	resp := NewErrorResponse(BudgetNotFound, s.traceID)
	s.Equal(http.StatusNotFound, resp.GetHTTPStatus())
}

func (s *ResponseTestSuite) TestStringRendering() {
	str := NewErrorResponse(LoanNotFound, s.traceID).String()

	s.Contains(str, "LOAN_001")
	s.Contains(str, "Loan not found")
	s.Contains(str, s.traceID)
}
