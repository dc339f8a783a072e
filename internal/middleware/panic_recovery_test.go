package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"spendtrack/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// PanicRecoveryTestSuite defines the test suite for the panic recovery middleware
type PanicRecoveryTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

// SetupTest runs before each test
func (s *PanicRecoveryTestSuite) SetupTest() {
	s.echo = echo.New()
}

// TestPanicRecoveryTestSuite runs the test suite
func TestPanicRecoveryTestSuite(t *testing.T) {
	suite.Run(t, new(PanicRecoveryTestSuite))
}

func (s *PanicRecoveryTestSuite) recoverFrom(traceID string, next echo.HandlerFunc) (*httptest.ResponseRecorder, errors.ErrorResponse) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	if traceID != "" {
		c.Set(TraceIDContextKey, traceID)
	}

	s.NotPanics(func() {
		_ = PanicRecovery()(next)(c)
	})

	var resp errors.ErrorResponse
	if rec.Body.Len() > 0 {
		s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func (s *PanicRecoveryTestSuite) TestPanicBecomesSystemError() {
	rec, resp := s.recoverFrom("trace-abc", func(c echo.Context) error {
		panic("boom")
	})

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal("SYSTEM_001", resp.Error.Code)
	s.Equal("trace-abc", resp.Error.TraceID)
}

func (s *PanicRecoveryTestSuite) TestMissingTraceIDReportedAsUnknown() {
	rec, resp := s.recoverFrom("", func(c echo.Context) error {
		panic("boom")
	})

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal("unknown", resp.Error.TraceID)
}

func (s *PanicRecoveryTestSuite) TestHealthyHandlerPassesThrough() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	err := PanicRecovery()(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *PanicRecoveryTestSuite) TestRecoversRegardlessOfPanicValue() {
	values := []interface{}{
		"string panic",
		42,
		struct{ msg string }{"typed value"},
		nil,
	}

	for _, v := range values {
		rec, _ := s.recoverFrom("trace-abc", func(c echo.Context) error {
			panic(v)
		})
		s.Equal(http.StatusInternalServerError, rec.Code)
	}
}
