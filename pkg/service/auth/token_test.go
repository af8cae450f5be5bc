package auth

import (
	"testing"
	"time"

	"github.com/amirasaad/payportal/pkg/config"
	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_Issue(t *testing.T) {
	issuer := NewTokenIssuer(&config.Jwt{Secret: "s3cret"})
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return fixed }
	id := uuid.New()

	signed, exp, err := issuer.Issue(Claims{
		UserID: id, Username: "alice", AccountNumber: "12345678", Role: RoleCustomer,
	})
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(DefaultTokenExpiry), exp)

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.Parse(signed, func(*jwt.Token) (any, error) { return []byte("s3cret"), nil })
	require.NoError(t, err)
	mc := token.Claims.(jwt.MapClaims)
	assert.Equal(t, id.String(), mc["user_id"])
	assert.Equal(t, "customer", mc["role"])
	assert.Equal(t, float64(exp.Unix()), mc["exp"])
}

func TestParseClaims(t *testing.T) {
	id := uuid.New()
	valid := jwt.MapClaims{
		"user_id":        id.String(),
		"username":       "alice",
		"account_number": "12345678",
		"role":           "customer",
		"exp":            float64(time.Now().Add(time.Hour).Unix()),
	}
	c, err := ParseClaims(jwt.NewWithClaims(jwt.SigningMethodHS256, valid))
	require.NoError(t, err)
	assert.Equal(t, id, c.UserID)
	assert.Equal(t, RoleCustomer, c.Role)
	assert.False(t, c.ExpiresAt.IsZero())

	staff, err := ParseClaims(jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": id.String(), "role": "staff",
	}))
	require.NoError(t, err)
	assert.Equal(t, RoleStaff, staff.Role)

	bad := []jwt.MapClaims{
		{"role": "customer", "account_number": "12345678"},
		{"user_id": "not-a-uuid", "role": "customer", "account_number": "12345678"},
		{"user_id": id.String(), "role": "admin"},
		{"user_id": id.String(), "role": "customer"},
	}
	for _, mc := range bad {
		_, err := ParseClaims(jwt.NewWithClaims(jwt.SigningMethodHS256, mc))
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
	_, err = ParseClaims(nil)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}
