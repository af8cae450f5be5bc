package auth

import (
	"github.com/amirasaad/payportal/pkg/config"
	"github.com/amirasaad/payportal/pkg/middleware"
	authsvc "github.com/amirasaad/payportal/pkg/service/auth"
	"github.com/amirasaad/payportal/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers the customer auth routes. guard may be nil to disable
// brute-force protection. Every login response is audited.
func Routes(
	app *fiber.App,
	authSvc *authsvc.Service,
	guard *middleware.BruteForceGuard,
	cfg *config.App,
) {
	group := app.Group("/api/auth")
	group.Post("/register", Register(authSvc))

	login := []fiber.Handler{middleware.LoginAudit(authSvc, authsvc.RoleCustomer)}
	if guard != nil {
		login = append(login, guard.Handler())
	}
	group.Post("/login", append(login, Login(authSvc))...)
	group.Post(
		"/logout",
		middleware.JwtProtected(cfg.Auth.Jwt),
		Logout(authSvc),
	)
}

// Register creates a customer account.
// @Summary Register a customer
// @Description Validate and store a new customer. Passwords are hashed before storage.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterInput true "Customer details"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /api/auth/register [post]
func Register(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		id, err := authSvc.Register(c.UserContext(), authsvc.RegisterCommand{
			Username:      input.Username,
			FullName:      input.FullName,
			IDNumber:      input.IDNumber,
			AccountNumber: input.AccountNumber,
			Password:      input.Password,
		})
		if err != nil {
			log.Errorf("Failed to register user %s: %v", input.Username, err)
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(
			c,
			fiber.StatusCreated,
			"User registered successfully",
			RegisterResponse{ID: id.String()},
		)
	}
}

// Login handles customer authentication and returns a JWT token.
// @Summary Customer login
// @Description Authenticate with username, account number and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /api/auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		middleware.MarkLoginAudited(c)
		res, err := authSvc.Login(c.UserContext(), authsvc.LoginCommand{
			Username:      input.Username,
			AccountNumber: input.AccountNumber,
			Password:      input.Password,
			IPAddress:     middleware.ClientIP(c),
		})
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(
			c,
			fiber.StatusOK,
			"Login successful",
			TokenResponse{Token: res.Token, ExpiresAt: res.ExpiresAt},
		)
	}
}

// Logout acknowledges the caller's logout.
// @Summary Logout
// @Description Tokens are stateless; the client discards its token.
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /api/auth/logout [post]
// @Security Bearer
func Logout(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, _ := middleware.ClaimsFrom(c)
		if err := authSvc.Logout(c.UserContext(), claims); err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Logged out", nil)
	}
}
