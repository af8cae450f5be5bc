package webapi_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amirasaad/payportal/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type WebAPITestSuite struct {
	testutils.E2ETestSuite
}

func TestWebAPITestSuite(t *testing.T) {
	suite.Run(t, new(WebAPITestSuite))
}

func (s *WebAPITestSuite) TestHealth() {
	resp := s.MakeRequest(fiber.MethodGet, "/", "", "")
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	s.Contains(string(body), "running")
}

func (s *WebAPITestSuite) TestMetricsEndpoint() {
	s.MakeRequest(fiber.MethodGet, "/", "", "").Body.Close() //nolint:errcheck

	resp := s.MakeRequest(fiber.MethodGet, "/metrics", "", "")
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	s.True(strings.Contains(string(body), "payportal_http_requests_total"))
}

func (s *WebAPITestSuite) TestUnknownRouteIsProblemDetails() {
	resp := s.MakeRequest(fiber.MethodGet, "/does-not-exist", "", "")
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	s.Equal("application/problem+json", resp.Header.Get(fiber.HeaderContentType))
	pd := s.DecodeProblem(resp)
	s.Equal(fiber.StatusNotFound, pd.Status)
}

func (s *WebAPITestSuite) TestGlobalRateLimit() {
	cfg := testutils.TestConfig()
	cfg.RateLimit.MaxRequests = 3
	s.SetupWithConfig(cfg)

	for i := range 3 {
		resp := s.MakeRequest(fiber.MethodGet, "/", "", "")
		s.Equal(fiber.StatusOK, resp.StatusCode, "request %d", i+1)
		resp.Body.Close() //nolint:errcheck
	}
	resp := s.MakeRequest(fiber.MethodGet, "/", "", "")
	s.Equal(fiber.StatusTooManyRequests, resp.StatusCode)
	s.Equal("Too Many Requests", s.DecodeProblem(resp).Title)

	// limits are per client address
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.9")
	other, err := s.App.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(fiber.StatusOK, other.StatusCode)
}
