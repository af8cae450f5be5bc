// Package testutils builds a fully wired Fiber app over in-memory stores
// for route tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/amirasaad/payportal/infra/eventbus"
	"github.com/amirasaad/payportal/infra/lockout"
	"github.com/amirasaad/payportal/infra/provider"
	"github.com/amirasaad/payportal/internal/fixtures"
	"github.com/amirasaad/payportal/pkg/app"
	"github.com/amirasaad/payportal/pkg/config"
	"github.com/amirasaad/payportal/pkg/dto"
	"github.com/amirasaad/payportal/pkg/utils"
	"github.com/amirasaad/payportal/webapi"
	"github.com/amirasaad/payportal/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const (
	DefaultPassword = "Secur3pass"
	StaffUsername   = "reviewer"
	StaffPassword   = "Staff1234"
)

// E2ETestSuite wires every route group over fixtures.
type E2ETestSuite struct {
	suite.Suite
	App          *fiber.App
	Portal       *app.App
	Cfg          *config.App
	Users        *fixtures.Users
	Staff        *fixtures.Staff
	Transactions *fixtures.Transactions
	Attempts     *fixtures.LoginAttempts
	Bus          *eventbus.MemoryEventBus
}

// TestConfig returns a configuration with generous global limits.
func TestConfig() *config.App {
	return &config.App{
		Env:    "test",
		Server: &config.Server{Host: "localhost", Port: 3000},
		Auth:   &config.Auth{Jwt: &config.Jwt{Secret: "e2e-secret", Expiry: time.Hour}},
		RateLimit: &config.RateLimit{
			MaxRequests:         1000,
			Window:              time.Minute,
			TransferMaxRequests: 5,
			TransferWindow:      time.Minute,
		},
		BruteForce: &config.BruteForce{
			FreeRetries: 2,
			MinWait:     time.Minute,
			MaxWait:     2 * time.Minute,
			Lifetime:    time.Hour,
		},
		ExchangeRateCache: &config.ExchangeRateCache{TTL: time.Minute},
		Audit:             &config.Audit{WriteTimeout: time.Second, Retention: time.Hour},
	}
}

func (s *E2ETestSuite) SetupTest() {
	s.SetupWithConfig(TestConfig())
}

// SetupWithConfig rebuilds the app with cfg and empty stores.
func (s *E2ETestSuite) SetupWithConfig(cfg *config.App) {
	hash, err := utils.HashPassword(StaffPassword)
	s.Require().NoError(err)

	s.Cfg = cfg
	s.Users = fixtures.NewUsers()
	s.Staff = fixtures.NewStaff(&dto.StaffRead{
		ID:             uuid.New(),
		Username:       StaffUsername,
		FullName:       "Review Officer",
		HashedPassword: hash,
	})
	s.Transactions = fixtures.NewTransactions(s.Users)
	s.Attempts = fixtures.NewLoginAttempts()
	s.Bus = eventbus.NewWithMemory(slog.Default())

	s.Portal = app.New(&app.Deps{
		Uow:          fixtures.NewUnitOfWork(s.Users, s.Staff, s.Transactions, s.Attempts),
		RateProvider: provider.NewStubExchangeRateProvider(),
		Lockout:      lockout.NewMemoryStore(),
		EventBus:     s.Bus,
		Logger:       slog.Default(),
	}, cfg)
	s.App = webapi.SetupApp(s.Portal)
}

func (s *E2ETestSuite) TearDownTest() {
	if s.Portal != nil {
		s.Portal.AuditRecorder.Wait()
	}
}

// MakeRequest sends body as JSON with an optional bearer token.
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	return MakeRequestWithApp(s.App, method, path, body, token)
}

// MakeRequestWithApp is MakeRequest against any app.
func MakeRequestWithApp(app *fiber.App, method, path, body, token string) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		panic(err)
	}
	return resp
}

// CreateCustomer stores an active customer with DefaultPassword.
func (s *E2ETestSuite) CreateCustomer(username, fullName, accountNumber string) *dto.UserRead {
	hash, err := utils.HashPassword(DefaultPassword)
	s.Require().NoError(err)
	id := uuid.New()
	s.Require().NoError(s.Users.Create(s.T().Context(), &dto.UserCreate{
		ID:            id,
		Username:      username,
		FullName:      fullName,
		IDNumber:      fmt.Sprintf("%013d", id.ID()),
		AccountNumber: accountNumber,
		Password:      hash,
		Active:        true,
	}))
	u, err := s.Users.Get(s.T().Context(), id)
	s.Require().NoError(err)
	return u
}

// LoginCustomer returns a customer token for u.
func (s *E2ETestSuite) LoginCustomer(u *dto.UserRead) string {
	body := fmt.Sprintf(
		`{"username":%q,"accountNumber":%q,"password":%q}`,
		u.Username, u.AccountNumber, DefaultPassword,
	)
	return s.token(s.MakeRequest(fiber.MethodPost, "/api/auth/login", body, ""))
}

// LoginStaff returns a staff token.
func (s *E2ETestSuite) LoginStaff() string {
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, StaffUsername, StaffPassword)
	return s.token(s.MakeRequest(fiber.MethodPost, "/api/staff/login", body, ""))
}

func (s *E2ETestSuite) token(resp *http.Response) string {
	defer resp.Body.Close() //nolint:errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var out struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	s.Require().NotEmpty(out.Data.Token)
	return out.Data.Token
}

// DecodeResponse decodes a success envelope, with Data into data.
func (s *E2ETestSuite) DecodeResponse(resp *http.Response, data any) common.Response {
	defer resp.Body.Close() //nolint:errcheck
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	var envelope struct {
		common.Response
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(raw, &envelope), string(raw))
	if data != nil && len(envelope.Data) > 0 {
		s.Require().NoError(json.Unmarshal(envelope.Data, data))
	}
	return envelope.Response
}

// DecodeProblem decodes an RFC 9457 error body.
func (s *E2ETestSuite) DecodeProblem(resp *http.Response) common.ProblemDetails {
	defer resp.Body.Close() //nolint:errcheck
	var pd common.ProblemDetails
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}
