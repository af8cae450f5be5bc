package middleware

import (
	"github.com/amirasaad/payportal/pkg/domain"
	authsvc "github.com/amirasaad/payportal/pkg/service/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	loginAuditedKey = "loginAudited"
	// maxAuditField bounds client-supplied identifiers kept in the trail.
	maxAuditField = 255
)

// RejectedLoginRecorder audits logins that never reached the auth service.
type RejectedLoginRecorder interface {
	RecordRejected(role authsvc.Role, username, accountNumber, ip string, reason error)
}

// MarkLoginAudited notes that the auth service recorded this attempt.
func MarkLoginAudited(c *fiber.Ctx) {
	c.Locals(loginAuditedKey, true)
}

// LoginAudit wraps a login route so that every response leaves an audit
// record. Requests answered before the service ran (unreadable or invalid
// bodies, lockouts) are recorded as unsuccessful here.
func LoginAudit(rec RejectedLoginRecorder, role authsvc.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if audited, _ := c.Locals(loginAuditedKey).(bool); audited {
			return err
		}

		var body struct {
			Username      string `json:"username"`
			AccountNumber string `json:"accountNumber"`
		}
		_ = c.BodyParser(&body)

		reason := domain.ErrValidation
		if c.Response().StatusCode() == fiber.StatusTooManyRequests {
			reason = authsvc.ErrLoginBlocked
		}
		rec.RecordRejected(role, clip(body.Username), clip(body.AccountNumber), ClientIP(c), reason)
		return err
	}
}

func clip(s string) string {
	if r := []rune(s); len(r) > maxAuditField {
		return string(r[:maxAuditField])
	}
	return s
}
