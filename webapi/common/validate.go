package common

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/amirasaad/payportal/pkg/domain/transaction"
	"github.com/amirasaad/payportal/pkg/domain/user"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	swiftPattern = regexp.MustCompile(`^[A-Za-z0-9]{8,11}$`)

	// customRules reuse the domain checks so that request validation and
	// service validation agree.
	customRules = map[string]func(string) bool{
		"username":      func(v string) bool { return user.ValidateUsername(v) == nil },
		"fullname":      func(v string) bool { return user.ValidateFullName(v) == nil },
		"idnumber":      func(v string) bool { return user.ValidateIDNumber(v) == nil },
		"accountnumber": func(v string) bool { return user.ValidateAccountNumber(v) == nil },
		"password":      func(v string) bool { return user.ValidatePassword(v) == nil },
		"swift":         swiftPattern.MatchString,
		"currency": func(v string) bool {
			return transaction.Currency(strings.ToUpper(strings.TrimSpace(v))).IsValid()
		},
	}
)

// FieldError is one failed field rule in a validation response.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Validator returns the shared validator with the portal's custom tags
// registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		for tag, rule := range customRules {
			_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return rule(fl.Field().String())
			})
		}
		// Decimals are validated through their string form.
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
			d, err := decimal.NewFromString(fl.Field().String())
			return err == nil && d.IsPositive() && d.Equal(d.Truncate(2))
		})
		validate = v
	})
	return validate
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns a pointer to the struct (populated), or writes an error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, "Request body could not be parsed", fiber.StatusBadRequest)
	}
	if err := Validator().Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]FieldError, 0, len(verrs))
			names := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
				names = append(names, fe.Field())
			}
			return nil, c.Status(fiber.StatusBadRequest).JSON(ProblemDetails{
				Type:     "about:blank",
				Title:    "Validation failed",
				Status:   fiber.StatusBadRequest,
				Detail:   fmt.Sprintf("invalid fields: %s", strings.Join(names, ", ")),
				Instance: c.OriginalURL(),
				Errors:   fields,
			}, MIMEProblemJSON)
		}
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
	}
	return &input, nil
}
