package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// RequestIDTestSuite defines the test suite for the request ID middleware
type RequestIDTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

// SetupTest runs before each test
func (s *RequestIDTestSuite) SetupTest() {
	s.echo = echo.New()
}

// TestRequestIDTestSuite runs the test suite
func TestRequestIDTestSuite(t *testing.T) {
	suite.Run(t, new(RequestIDTestSuite))
}

func (s *RequestIDTestSuite) run(req *http.Request, next echo.HandlerFunc) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	s.NoError(RequestID()(next)(c))
	return rec
}

func (s *RequestIDTestSuite) TestMintsTraceIDWhenHeaderAbsent() {
	var seen string
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec := s.run(req, func(c echo.Context) error {
		seen = GetTraceID(c)
		return c.NoContent(http.StatusOK)
	})

	s.NotEmpty(seen)
	s.Equal(seen, rec.Header().Get(TraceIDHeader))

	_, err := uuid.Parse(seen)
	s.NoError(err)
}

func (s *RequestIDTestSuite) TestHonorsIncomingTraceID() {
	const upstreamID = "proxy-assigned-trace-4711"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, upstreamID)

	var seen string
	rec := s.run(req, func(c echo.Context) error {
		seen = GetTraceID(c)
		return c.NoContent(http.StatusOK)
	})

	s.Equal(upstreamID, seen)
	s.Equal(upstreamID, rec.Header().Get(TraceIDHeader))
}

func (s *RequestIDTestSuite) TestGetTraceID_EmptyWithoutMiddleware() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := s.echo.NewContext(req, httptest.NewRecorder())

	s.Empty(GetTraceID(c))
}
