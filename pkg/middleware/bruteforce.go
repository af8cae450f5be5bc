package middleware

import (
	"log/slog"
	"time"

	"github.com/amirasaad/payportal/pkg/cache"
	"github.com/amirasaad/payportal/pkg/config"
	"github.com/amirasaad/payportal/pkg/metrics"
	"github.com/gofiber/fiber/v2"
)

// BruteForceGuard blocks a client after repeated failed logins. Each
// failure past the free retries extends the wait along a Fibonacci
// sequence of MinWait, capped at MaxWait. A successful login clears the
// counter.
type BruteForceGuard struct {
	store  cache.LockoutStore
	cfg    config.BruteForce
	logger *slog.Logger
	now    func() time.Time
}

func NewBruteForceGuard(store cache.LockoutStore, cfg *config.BruteForce, logger *slog.Logger) *BruteForceGuard {
	return &BruteForceGuard{store: store, cfg: *cfg, logger: logger, now: time.Now}
}

// wait returns the block duration after the given number of failures.
func (g *BruteForceGuard) wait(failures int) time.Duration {
	n := failures - g.cfg.FreeRetries
	if n <= 0 {
		return 0
	}
	a, b := time.Duration(0), g.cfg.MinWait
	for i := 1; i < n && b < g.cfg.MaxWait; i++ {
		a, b = b, a+b
	}
	return min(b, g.cfg.MaxWait)
}

func (g *BruteForceGuard) lockUntil(failures int) time.Time {
	if d := g.wait(failures); d > 0 {
		return g.now().Add(d)
	}
	return time.Time{}
}

// Handler wraps a login route.
func (g *BruteForceGuard) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		key := ClientIP(c)
		log := g.logger.With("ip", key)

		state, err := g.store.Get(ctx, key)
		if err != nil {
			log.Error("lockout store read failed", "error", err)
		} else if state.Locked(g.now()) {
			metrics.LockoutsTotal.Inc()
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message":              "Too many failed attempts. Please try again later.",
				"nextValidRequestDate": state.LockedUntil.UTC().Format(time.RFC3339),
			})
		}

		if err := c.Next(); err != nil {
			return err
		}

		switch status := c.Response().StatusCode(); {
		case status < 300:
			if err := g.store.Clear(ctx, key); err != nil {
				log.Error("lockout store clear failed", "error", err)
			}
		case status == fiber.StatusUnauthorized, status == fiber.StatusNotFound, status == fiber.StatusBadRequest:
			if _, err := g.store.RecordFailure(ctx, key, g.lockUntil, g.cfg.Lifetime); err != nil {
				log.Error("lockout store write failed", "error", err)
			}
		}
		return nil
	}
}
