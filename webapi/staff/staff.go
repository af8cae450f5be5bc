// Package staff exposes the staff login route.
package staff

import (
	"time"

	"github.com/amirasaad/payportal/pkg/middleware"
	authsvc "github.com/amirasaad/payportal/pkg/service/auth"
	"github.com/amirasaad/payportal/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// LoginInput is the staff login body.
type LoginInput struct {
	Username string `json:"username" validate:"required,max=30"`
	Password string `json:"password" validate:"required,max=72"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func Routes(app *fiber.App, authSvc *authsvc.Service, guard *middleware.BruteForceGuard) {
	login := []fiber.Handler{middleware.LoginAudit(authSvc, authsvc.RoleStaff)}
	if guard != nil {
		login = append(login, guard.Handler())
	}
	app.Post("/api/staff/login", append(login, Login(authSvc))...)
}

// Login authenticates a staff member.
// @Summary Staff login
// @Description Authenticate a staff member and return a staff-role token
// @Tags staff
// @Accept json
// @Produce json
// @Param request body LoginInput true "Staff credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /api/staff/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		middleware.MarkLoginAudited(c)
		res, err := authSvc.StaffLogin(c.UserContext(), authsvc.StaffLoginCommand{
			Username:  input.Username,
			Password:  input.Password,
			IPAddress: middleware.ClientIP(c),
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
