// Package auth registers customers and authenticates customers and staff.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/payportal/pkg/config"
	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/amirasaad/payportal/pkg/domain/audit"
	"github.com/amirasaad/payportal/pkg/domain/user"
	"github.com/amirasaad/payportal/pkg/dto"
	"github.com/amirasaad/payportal/pkg/metrics"
	"github.com/amirasaad/payportal/pkg/repository"
	repostaff "github.com/amirasaad/payportal/pkg/repository/staff"
	repouser "github.com/amirasaad/payportal/pkg/repository/user"
	"github.com/amirasaad/payportal/pkg/utils"
	"github.com/google/uuid"
)

// dummyHash is compared against when no account matches so that unknown
// accounts take as long as wrong passwords.
const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// ErrMissingCredentials is returned when a login omits a required field.
var ErrMissingCredentials = fmt.Errorf("%w: username, account number and password are required", domain.ErrValidation)

// ErrLoginBlocked marks an attempt refused while the client is locked out.
var ErrLoginBlocked = fmt.Errorf("%w: too many failed login attempts", domain.ErrForbidden)

// AuditRecorder receives every login attempt once its outcome is known.
type AuditRecorder interface {
	Record(attempt *audit.LoginAttempt)
}

type RegisterCommand struct {
	Username      string
	FullName      string
	IDNumber      string
	AccountNumber string
	Password      string
}

type LoginCommand struct {
	Username      string
	AccountNumber string
	Password      string
	IPAddress     string
}

type StaffLoginCommand struct {
	Username  string
	Password  string
	IPAddress string
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Claims    Claims
}

type Service struct {
	uow      repository.UnitOfWork
	tokens   *TokenIssuer
	recorder AuditRecorder
	logger   *slog.Logger
}

func New(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	recorder AuditRecorder,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:      uow,
		tokens:   NewTokenIssuer(cfg),
		recorder: recorder,
		logger:   logger,
	}
}

// Register validates and persists a new customer and returns its id.
func (s *Service) Register(
	ctx context.Context,
	cmd RegisterCommand,
) (id uuid.UUID, err error) {
	log := s.logger.With("context", "Register")
	cmd.Username = strings.TrimSpace(cmd.Username)
	cmd.FullName = strings.TrimSpace(cmd.FullName)
	cmd.IDNumber = strings.TrimSpace(cmd.IDNumber)
	cmd.AccountNumber = strings.TrimSpace(cmd.AccountNumber)
	if err = user.Validate(
		cmd.Username, cmd.FullName, cmd.IDNumber, cmd.AccountNumber, cmd.Password,
	); err != nil {
		log.Debug("registration rejected", "error", err)
		return uuid.Nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repouser.Repository](uow)
		if err != nil {
			return err
		}
		if err := ensureUnique(ctx, repo, cmd); err != nil {
			return err
		}
		u, err := user.New(cmd.Username, cmd.FullName, cmd.IDNumber, cmd.AccountNumber, cmd.Password)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, &dto.UserCreate{
			ID:            u.ID,
			Username:      u.Username,
			FullName:      u.FullName,
			IDNumber:      u.IDNumber,
			AccountNumber: u.AccountNumber,
			Password:      u.Password,
			Active:        u.Active,
		}); err != nil {
			return err
		}
		id = u.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) && !errors.Is(err, user.ErrUserExists) {
			err = fmt.Errorf("%w: %w", user.ErrUserExists, err)
		}
		log.Error("registration failed", "error", err)
		return uuid.Nil, err
	}
	log.Info("user registered", "userID", id)
	return id, nil
}

func ensureUnique(ctx context.Context, repo repouser.Repository, cmd RegisterCommand) error {
	checks := []struct {
		field  string
		exists func(context.Context, string) (bool, error)
		value  string
	}{
		{"account number", repo.ExistsByAccountNumber, cmd.AccountNumber},
		{"username", repo.ExistsByUsername, cmd.Username},
		{"id number", repo.ExistsByIDNumber, cmd.IDNumber},
	}
	for _, c := range checks {
		taken, err := c.exists(ctx, c.value)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: %s already registered", user.ErrUserExists, c.field)
		}
	}
	return nil
}

// CreateStaff provisions a staff member. Staff cannot self-register.
func (s *Service) CreateStaff(
	ctx context.Context,
	username, fullName, password string,
) (id uuid.UUID, err error) {
	st, err := user.NewStaff(username, fullName, password)
	if err != nil {
		return uuid.Nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repostaff.Repository](uow)
		if err != nil {
			return err
		}
		taken, err := repo.ExistsByUsername(ctx, st.Username)
		if err != nil {
			return err
		}
		if taken {
			return user.ErrStaffExists
		}
		return repo.Create(ctx, &dto.StaffCreate{
			ID:       st.ID,
			Username: st.Username,
			FullName: st.FullName,
			Password: st.Password,
		})
	})
	if err != nil {
		s.logger.Error("staff provisioning failed", "username", st.Username, "error", err)
		return uuid.Nil, err
	}
	s.logger.Info("staff created", "staffID", st.ID)
	return st.ID, nil
}

// Login authenticates a customer by username, account number and
// password. The attempt is audited once the outcome is known.
func (s *Service) Login(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	res, err := s.login(ctx, cmd)
	s.recordAttempt(RoleCustomer, cmd.Username, cmd.AccountNumber, cmd.IPAddress, err)
	return res, err
}

func (s *Service) login(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	log := s.logger.With("context", "Login", "ip", cmd.IPAddress)
	username := strings.TrimSpace(cmd.Username)
	accountNumber := strings.TrimSpace(cmd.AccountNumber)
	if username == "" || accountNumber == "" || cmd.Password == "" {
		return nil, ErrMissingCredentials
	}
	if err := errors.Join(
		user.ValidateUsername(username),
		user.ValidateAccountNumber(accountNumber),
	); err != nil {
		return nil, err
	}

	var u *dto.UserRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repouser.Repository](uow)
		if err != nil {
			return err
		}
		u, err = repo.GetByAccountNumber(ctx, accountNumber)
		return err
	})
	if errors.Is(err, domain.ErrNotFound) {
		_ = utils.CheckPasswordHash(cmd.Password, dummyHash)
		log.Info("login for unknown account")
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		log.Error("login lookup failed", "error", err)
		return nil, err
	}

	if u.Username != username {
		_ = utils.CheckPasswordHash(cmd.Password, dummyHash)
		return nil, user.ErrUserUnauthorized
	}
	if !utils.CheckPasswordHash(cmd.Password, u.HashedPassword) || !u.Active {
		return nil, user.ErrUserUnauthorized
	}

	claims := Claims{
		UserID:        u.ID,
		Username:      u.Username,
		AccountNumber: u.AccountNumber,
		Role:          RoleCustomer,
	}
	token, exp, err := s.tokens.Issue(claims)
	if err != nil {
		log.Error("token signing failed", "userID", u.ID, "error", err)
		return nil, err
	}
	claims.ExpiresAt = exp
	log.Info("login successful", "userID", u.ID)
	return &LoginResult{Token: token, ExpiresAt: exp, Claims: claims}, nil
}

// StaffLogin authenticates a staff member. Unknown usernames and wrong
// passwords are indistinguishable.
func (s *Service) StaffLogin(ctx context.Context, cmd StaffLoginCommand) (*LoginResult, error) {
	res, err := s.staffLogin(ctx, cmd)
	s.recordAttempt(RoleStaff, cmd.Username, "", cmd.IPAddress, err)
	return res, err
}

func (s *Service) staffLogin(ctx context.Context, cmd StaffLoginCommand) (*LoginResult, error) {
	log := s.logger.With("context", "StaffLogin", "ip", cmd.IPAddress)
	username := strings.TrimSpace(cmd.Username)
	if username == "" || cmd.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	var st *dto.StaffRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repostaff.Repository](uow)
		if err != nil {
			return err
		}
		st, err = repo.GetByUsername(ctx, username)
		return err
	})
	if errors.Is(err, domain.ErrNotFound) {
		_ = utils.CheckPasswordHash(cmd.Password, dummyHash)
		return nil, user.ErrUserUnauthorized
	}
	if err != nil {
		log.Error("staff lookup failed", "error", err)
		return nil, err
	}
	if !utils.CheckPasswordHash(cmd.Password, st.HashedPassword) {
		return nil, user.ErrUserUnauthorized
	}

	claims := Claims{UserID: st.ID, Username: st.Username, Role: RoleStaff}
	token, exp, err := s.tokens.Issue(claims)
	if err != nil {
		log.Error("token signing failed", "staffID", st.ID, "error", err)
		return nil, err
	}
	claims.ExpiresAt = exp
	log.Info("staff login successful", "staffID", st.ID)
	return &LoginResult{Token: token, ExpiresAt: exp, Claims: claims}, nil
}

// Logout acknowledges a logout. Tokens are stateless and stay valid until
// they expire; clients are expected to discard them.
func (s *Service) Logout(ctx context.Context, claims *Claims) error {
	if claims != nil {
		s.logger.Info("logout", "userID", claims.UserID, "role", claims.Role)
	}
	return nil
}

func loginOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrLoginBlocked):
		return "blocked"
	case errors.Is(err, domain.ErrValidation):
		return "invalid_input"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	default:
		return "error"
	}
}

// RecordRejected audits a login refused before credentials were checked,
// such as an unreadable body or a locked-out client.
func (s *Service) RecordRejected(role Role, username, accountNumber, ip string, reason error) {
	if reason == nil {
		reason = domain.ErrValidation
	}
	s.recordAttempt(role, username, accountNumber, ip, reason)
}

func (s *Service) recordAttempt(role Role, username, accountNumber, ip string, err error) {
	metrics.LoginAttemptsTotal.WithLabelValues(string(role), loginOutcome(err)).Inc()
	if s.recorder == nil {
		return
	}
	s.recorder.Record(audit.NewLoginAttempt(username, accountNumber, ip, err == nil))
}
