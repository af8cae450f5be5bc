// Package webapi provides the HTTP surface of the payments portal.
// It is organized into sub-packages per route group:
// - auth: customer registration, login and logout
// - staff: staff login
// - transaction: transfer creation and the staff review queue
package webapi

import (
	"errors"

	"github.com/amirasaad/payportal/pkg/app"
	"github.com/amirasaad/payportal/pkg/middleware"
	authweb "github.com/amirasaad/payportal/webapi/auth"
	"github.com/amirasaad/payportal/webapi/common"
	staffweb "github.com/amirasaad/payportal/webapi/staff"
	transactionweb "github.com/amirasaad/payportal/webapi/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	cfg := a.Config

	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return common.ProblemDetailsJSON(c, fe.Message, err, fe.Code)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		WithCredentials:      true,
		PersistAuthorization: true,
	}))

	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())
	fiberApp.Use(middleware.Metrics())
	fiberApp.Use(middleware.RateLimit(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window))

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Payments portal API is running")
	})
	fiberApp.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	var guard *middleware.BruteForceGuard
	if a.Deps.Lockout != nil {
		guard = middleware.NewBruteForceGuard(a.Deps.Lockout, cfg.BruteForce, a.Deps.Logger)
	}
	authweb.Routes(fiberApp, a.AuthService, guard, cfg)
	staffweb.Routes(fiberApp, a.AuthService, guard)
	transactionweb.Routes(fiberApp, a.TransferService, cfg)
	return fiberApp
}
