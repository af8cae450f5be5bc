// Package common holds the response envelope, error mapping and request
// binding shared by every route group.
package common

import (
	"errors"
	"strings"

	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/amirasaad/payportal/pkg/service/transfer"
	"github.com/gofiber/fiber/v2"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

const (
	genericServerDetail = "An unexpected error occurred"
	// MIMEProblemJSON is the RFC 9457 media type.
	MIMEProblemJSON = "application/problem+json"
)

// SuccessResponseJSON writes the success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes an RFC 9457 response. Optional args are a
// detail string and/or a status code; without a status the code is
// derived from err. Server errors never leak err's text.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, args ...any) error {
	status := 0
	detail := ""
	for _, a := range args {
		switch v := a.(type) {
		case int:
			status = v
		case string:
			detail = v
		}
	}
	if status == 0 {
		status = ErrorToStatusCode(err)
	}

	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.OriginalURL(),
	}
	if status >= fiber.StatusInternalServerError {
		if pd.Detail == "" {
			pd.Detail = genericServerDetail
		}
	} else if err != nil && pd.Detail == "" {
		pd.Detail = err.Error()
		// errors.Join output: one entry per line
		if lines := strings.Split(pd.Detail, "\n"); len(lines) > 1 {
			pd.Detail = lines[0]
			pd.Errors = lines
		}
	}
	return c.Status(status).JSON(pd, MIMEProblemJSON)
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fe *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidState):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrExchangeRateUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorTitle gives the short summary used for a mapped error.
func ErrorTitle(err error) string {
	var resErr *transfer.AccountResolutionError
	switch {
	case errors.As(err, &resErr):
		return resErr.Error()
	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"
	case errors.Is(err, domain.ErrInvalidState):
		return "Invalid transaction state"
	case errors.Is(err, domain.ErrAlreadyExists):
		return "Already exists"
	case errors.Is(err, domain.ErrNotFound):
		return "Not found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return "Forbidden"
	case errors.Is(err, domain.ErrExchangeRateUnavailable):
		return "Exchange rate unavailable"
	default:
		return "Internal Server Error"
	}
}

// ErrorJSON writes err using its mapped title and status.
func ErrorJSON(c *fiber.Ctx, err error) error {
	return ProblemDetailsJSON(c, ErrorTitle(err), err)
}
