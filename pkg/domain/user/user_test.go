package user_test

import (
	"strings"
	"testing"

	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/amirasaad/payportal/pkg/domain/user"
	"github.com/amirasaad/payportal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	u, err := user.New(" jane_doe ", "Jane Doe", "9001015009087", "1234567890", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "jane_doe", u.Username)
	assert.Equal(t, "1234567890", u.AccountNumber)
	assert.True(t, u.Active)
	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, utils.CheckPasswordHash("secret123", u.Password))
	assert.False(t, u.CreatedAt.IsZero())
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name                                     string
		username, fullName, idNumber, acct, pass string
		want                                     error
	}{
		{"short username", "jd", "Jane Doe", "9001015009087", "1234567890", "secret123", user.ErrInvalidUsername},
		{"username symbols", "jane-doe", "Jane Doe", "9001015009087", "1234567890", "secret123", user.ErrInvalidUsername},
		{"digits in name", "jane_doe", "Jane D0e", "9001015009087", "1234567890", "secret123", user.ErrInvalidFullName},
		{"short id number", "jane_doe", "Jane Doe", "900101500908", "1234567890", "secret123", user.ErrInvalidIDNumber},
		{"alpha account", "jane_doe", "Jane Doe", "9001015009087", "12345abc90", "secret123", user.ErrInvalidAccountNumber},
		{"short account", "jane_doe", "Jane Doe", "9001015009087", "1234567", "secret123", user.ErrInvalidAccountNumber},
		{"short password", "jane_doe", "Jane Doe", "9001015009087", "1234567890", "abc123", user.ErrWeakPassword},
		{"no digit", "jane_doe", "Jane Doe", "9001015009087", "1234567890", "abcdefghij", user.ErrWeakPassword},
		{"no letter", "jane_doe", "Jane Doe", "9001015009087", "1234567890", "1234567890", user.ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := user.New(tt.username, tt.fullName, tt.idNumber, tt.acct, tt.pass)
			require.Error(t, err)
			assert.Nil(t, u)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestNew_ReportsEveryInvalidField(t *testing.T) {
	_, err := user.New("x", "1", "2", "3", "4")
	require.Error(t, err)
	assert.ErrorIs(t, err, user.ErrInvalidUsername)
	assert.ErrorIs(t, err, user.ErrInvalidFullName)
	assert.ErrorIs(t, err, user.ErrInvalidIDNumber)
	assert.ErrorIs(t, err, user.ErrInvalidAccountNumber)
	assert.ErrorIs(t, err, user.ErrWeakPassword)
}

func TestValidatePassword_TooLong(t *testing.T) {
	assert.ErrorIs(t, user.ValidatePassword(strings.Repeat("a1", 40)), user.ErrWeakPassword)
}

func TestNewStaff(t *testing.T) {
	s, err := user.NewStaff("reviewer", "Ada Reviewer", "staffpass1")
	require.NoError(t, err)
	assert.Equal(t, "reviewer", s.Username)
	assert.True(t, utils.CheckPasswordHash("staffpass1", s.Password))

	_, err = user.NewStaff("reviewer", "Ada Reviewer", "short")
	assert.ErrorIs(t, err, user.ErrWeakPassword)
}
