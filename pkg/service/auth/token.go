package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/amirasaad/payportal/pkg/config"
	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role separates customer tokens from staff tokens.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
)

// DefaultTokenExpiry applies when no expiry is configured.
const DefaultTokenExpiry = time.Hour

// ErrInvalidClaims is returned when a verified token lacks the identity
// claims this service issues.
var ErrInvalidClaims = fmt.Errorf("%w: invalid token claims", domain.ErrUnauthorized)

// Claims is the identity carried by an access token. AccountNumber is
// empty for staff.
type Claims struct {
	UserID        uuid.UUID
	Username      string
	AccountNumber string
	Role          Role
	ExpiresAt     time.Time
}

// TokenIssuer signs HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewTokenIssuer(cfg *config.Jwt) *TokenIssuer {
	expiry := cfg.Expiry
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return &TokenIssuer{secret: []byte(cfg.Secret), expiry: expiry, now: time.Now}
}

// Issue signs a token for c and returns it with its expiry.
func (i *TokenIssuer) Issue(c Claims) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.expiry)
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = c.UserID.String()
	claims["username"] = c.Username
	claims["role"] = string(c.Role)
	if c.AccountNumber != "" {
		claims["account_number"] = c.AccountNumber
	}
	claims["iat"] = now.Unix()
	claims["exp"] = exp.Unix()
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseClaims extracts identity from a token the JWT middleware has
// already verified.
func ParseClaims(token *jwt.Token) (*Claims, error) {
	if token == nil {
		return nil, ErrInvalidClaims
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}
	rawID, ok := mc["user_id"].(string)
	if !ok {
		return nil, ErrInvalidClaims
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, errors.Join(ErrInvalidClaims, err)
	}
	role := Role(stringClaim(mc, "role"))
	if role != RoleCustomer && role != RoleStaff {
		return nil, ErrInvalidClaims
	}
	c := &Claims{
		UserID:        userID,
		Username:      stringClaim(mc, "username"),
		AccountNumber: stringClaim(mc, "account_number"),
		Role:          role,
	}
	if role == RoleCustomer && c.AccountNumber == "" {
		return nil, ErrInvalidClaims
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}

func stringClaim(mc jwt.MapClaims, key string) string {
	v, _ := mc[key].(string)
	return v
}
