package middleware

import (
	"errors"

	"github.com/amirasaad/payportal/pkg/config"
	authsvc "github.com/amirasaad/payportal/pkg/service/auth"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userContextKey   = "user"
	claimsContextKey = "claims"
)

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeProblem(c *fiber.Ctx, status int, title, detail string) error {
	return c.Status(status).JSON(problem{
		Type:   "about:blank",
		Title:  title,
		Status: status,
		Detail: detail,
	}, "application/problem+json")
}

// JwtProtected verifies the bearer token and stores the parsed claims in
// the request locals.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{
			JWTAlg: jwtware.HS256,
			Key:    []byte(cfg.Secret),
		},
		ContextKey:     userContextKey,
		ErrorHandler:   jwtError,
		SuccessHandler: storeClaims,
	})
}

func storeClaims(c *fiber.Ctx) error {
	token, _ := c.Locals(userContextKey).(*jwt.Token)
	claims, err := authsvc.ParseClaims(token)
	if err != nil {
		return writeProblem(c, fiber.StatusUnauthorized, "InvalidToken", "token is missing required claims")
	}
	c.Locals(claimsContextKey, claims)
	return c.Next()
}

func jwtError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, jwtware.ErrJWTMissingOrMalformed), errors.Is(err, jwt.ErrTokenMalformed):
		return writeProblem(c, fiber.StatusUnauthorized, "InvalidTokenFormat", "expected Authorization: Bearer <token>")
	case errors.Is(err, jwt.ErrTokenExpired):
		return writeProblem(c, fiber.StatusUnauthorized, "TokenExpired", "token has expired")
	default:
		return writeProblem(c, fiber.StatusUnauthorized, "InvalidToken", "token could not be verified")
	}
}

// RequireRole rejects callers whose token carries a different role. It
// must run after JwtProtected.
func RequireRole(role authsvc.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return writeProblem(c, fiber.StatusUnauthorized, "InvalidToken", "missing user context")
		}
		if claims.Role != role {
			return writeProblem(c, fiber.StatusForbidden, "Forbidden", "insufficient role")
		}
		return c.Next()
	}
}

// ClaimsFrom returns the claims stored by JwtProtected.
func ClaimsFrom(c *fiber.Ctx) (*authsvc.Claims, bool) {
	claims, ok := c.Locals(claimsContextKey).(*authsvc.Claims)
	return claims, ok && claims != nil
}
