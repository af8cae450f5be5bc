// Package transaction exposes transfer creation for customers and the
// review queue for staff.
package transaction

import (
	"context"

	"github.com/amirasaad/payportal/pkg/config"
	"github.com/amirasaad/payportal/pkg/dto"
	"github.com/amirasaad/payportal/pkg/middleware"
	authsvc "github.com/amirasaad/payportal/pkg/service/auth"
	"github.com/amirasaad/payportal/pkg/service/transfer"
	"github.com/amirasaad/payportal/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

func Routes(app *fiber.App, transferSvc *transfer.Service, cfg *config.App) {
	customer := []fiber.Handler{
		middleware.JwtProtected(cfg.Auth.Jwt),
		middleware.RequireRole(authsvc.RoleCustomer),
	}
	staff := []fiber.Handler{
		middleware.JwtProtected(cfg.Auth.Jwt),
		middleware.RequireRole(authsvc.RoleStaff),
	}
	with := func(chain []fiber.Handler, h ...fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, chain...), h...)
	}

	group := app.Group("/api/transactions")
	group.Post("/", with(customer,
		middleware.RateLimit(cfg.RateLimit.TransferMaxRequests, cfg.RateLimit.TransferWindow),
		CreateTransaction(transferSvc),
	)...)
	group.Get("/mine", with(customer, ListMine(transferSvc))...)
	group.Get("/pending", with(staff, ListPending(transferSvc))...)
	group.Put("/:id/verify", with(staff, Verify(transferSvc))...)
	group.Post("/:id/submit", with(staff, Submit(transferSvc))...)
}

// CreateTransaction creates a pending transfer from the caller's account.
// @Summary Create a transfer
// @Description Create a pending international transfer from the caller's own account
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionInput true "Transfer details"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 503 {object} common.ProblemDetails
// @Router /api/transactions [post]
// @Security Bearer
func CreateTransaction(transferSvc *transfer.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[CreateTransactionInput](c)
		if input == nil {
			return err
		}
		tx, err := transferSvc.CreateTransfer(c.UserContext(), transfer.CreateTransferCommand{
			CallerAccountNumber: claims.AccountNumber,
			FromAccountNumber:   input.FromAccountNumber,
			ToAccountNumber:     input.ToAccountNumber,
			Amount:              input.Amount,
			Currency:            input.Currency,
			TargetCurrency:      input.TargetCurrency,
			SwiftCode:           input.SwiftCode,
			PaymentMethod:       input.PaymentMethod,
		})
		if err != nil {
			log.Infof("Transfer by %s rejected: %v", claims.UserID, err)
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction created successfully", tx)
	}
}

// ListMine returns the caller's sent and received transactions.
// @Summary List my transactions
// @Tags transactions
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /api/transactions/mine [get]
// @Security Bearer
func ListMine(transferSvc *transfer.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		txs, err := transferSvc.ListForUser(c.UserContext(), claims.UserID)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", newListResponse(txs))
	}
}

// ListPending returns the staff review queue.
// @Summary List pending transactions
// @Tags transactions
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /api/transactions/pending [get]
// @Security Bearer
func ListPending(transferSvc *transfer.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txs, err := transferSvc.ListPending(c.UserContext())
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Pending transactions fetched", newListResponse(txs))
	}
}

// Verify marks a pending transaction as verified.
// @Summary Verify a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/transactions/{id}/verify [put]
// @Security Bearer
func Verify(transferSvc *transfer.Service) fiber.Handler {
	return review(transferSvc.Verify, "Transaction verified")
}

// Submit completes a verified transaction.
// @Summary Submit a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/transactions/{id}/submit [post]
// @Security Bearer
func Submit(transferSvc *transfer.Service) fiber.Handler {
	return review(transferSvc.Submit, "Transaction submitted")
}

func review(
	advance func(ctx context.Context, id uuid.UUID, actor string) (*dto.TransactionRead, error),
	message string,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err, "Transaction ID must be a UUID", fiber.StatusBadRequest)
		}
		tx, err := advance(c.UserContext(), id, claims.Username)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		log.Infof("%s: %s by %s", message, id, claims.Username)
		return common.SuccessResponseJSON(c, fiber.StatusOK, message, tx)
	}
}
