package user

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/amirasaad/payportal/pkg/utils"
	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = fmt.Errorf("user %w", domain.ErrNotFound)
	// ErrUserUnauthorized is returned for any failed credential check.
	ErrUserUnauthorized = domain.ErrInvalidCredentials
	// ErrUserExists is returned when the username, id number or account
	// number is already registered.
	ErrUserExists = fmt.Errorf("user %w", domain.ErrAlreadyExists)

	ErrInvalidUsername      = fmt.Errorf("%w: username must be 3-30 letters, digits or underscores", domain.ErrValidation)
	ErrInvalidFullName      = fmt.Errorf("%w: full name may contain letters and spaces only", domain.ErrValidation)
	ErrInvalidIDNumber      = fmt.Errorf("%w: id number must be exactly %d digits", domain.ErrValidation, IDNumberLength)
	ErrInvalidAccountNumber = fmt.Errorf("%w: account number must be %d-%d digits", domain.ErrValidation, MinAccountNumberLength, MaxAccountNumberLength)
	ErrWeakPassword         = fmt.Errorf("%w: password must be at least %d characters and contain a letter and a digit", domain.ErrValidation, MinPasswordLength)
)

const (
	IDNumberLength         = 13
	MinAccountNumberLength = 8
	MaxAccountNumberLength = 16
	MinPasswordLength      = 8
	// MaxPasswordLength is bcrypt's input limit.
	MaxPasswordLength = 72
)

var (
	usernamePattern      = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	fullNamePattern      = regexp.MustCompile(`^[a-zA-Z][a-zA-Z\s]*$`)
	idNumberPattern      = regexp.MustCompile(fmt.Sprintf(`^[0-9]{%d}$`, IDNumberLength))
	accountNumberPattern = regexp.MustCompile(fmt.Sprintf(`^[0-9]{%d,%d}$`, MinAccountNumberLength, MaxAccountNumberLength))
	letterPattern        = regexp.MustCompile(`[A-Za-z]`)
	digitPattern         = regexp.MustCompile(`[0-9]`)
)

// User represents a customer of the payments portal.
type User struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	FullName      string    `json:"fullName"`
	IDNumber      string    `json:"idNumber"`
	AccountNumber string    `json:"accountNumber"`
	Password      string    `json:"-"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created"`
	UpdatedAt     time.Time `json:"updated"`
}

// New validates every field and returns a User holding a bcrypt hash of
// the password.
func New(
	username, fullName, idNumber, accountNumber, password string,
) (*User, error) {
	username = strings.TrimSpace(username)
	fullName = strings.TrimSpace(fullName)
	idNumber = strings.TrimSpace(idNumber)
	accountNumber = strings.TrimSpace(accountNumber)

	if err := Validate(username, fullName, idNumber, accountNumber, password); err != nil {
		return nil, err
	}
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:            uuid.New(),
		Username:      username,
		FullName:      fullName,
		IDNumber:      idNumber,
		AccountNumber: accountNumber,
		Password:      hashedPassword,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Validate runs every field check and joins the failures.
func Validate(username, fullName, idNumber, accountNumber, password string) error {
	return errors.Join(
		ValidateUsername(username),
		ValidateFullName(fullName),
		ValidateIDNumber(idNumber),
		ValidateAccountNumber(accountNumber),
		ValidatePassword(password),
	)
}

// ValidateUsername checks the username pattern.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// ValidateFullName checks that the name is letters and spaces only.
func ValidateFullName(fullName string) error {
	if !fullNamePattern.MatchString(fullName) {
		return ErrInvalidFullName
	}
	return nil
}

// ValidateIDNumber checks the fixed-length numeric national id.
func ValidateIDNumber(idNumber string) error {
	if !idNumberPattern.MatchString(idNumber) {
		return ErrInvalidIDNumber
	}
	return nil
}

// ValidateAccountNumber checks the account-number format. It is called
// before every lookup so malformed input never reaches the store.
func ValidateAccountNumber(accountNumber string) error {
	if !accountNumberPattern.MatchString(accountNumber) {
		return ErrInvalidAccountNumber
	}
	return nil
}

// ValidatePassword enforces the minimum password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return ErrWeakPassword
	}
	if !letterPattern.MatchString(password) || !digitPattern.MatchString(password) {
		return ErrWeakPassword
	}
	return nil
}
