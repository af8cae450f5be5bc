package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimit allows max requests per client IP in each fixed window.
func RateLimit(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          max,
		Expiration:   window,
		KeyGenerator: ClientIP,
		LimitReached: func(c *fiber.Ctx) error {
			return writeProblem(c, fiber.StatusTooManyRequests, "Too Many Requests", "rate limit exceeded")
		},
	})
}
