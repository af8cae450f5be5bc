package transaction

import (
	"github.com/amirasaad/payportal/pkg/dto"
	"github.com/shopspring/decimal"
)

// CreateTransactionInput is the transfer request body. Amount accepts a
// JSON number or string.
type CreateTransactionInput struct {
	FromAccountNumber string          `json:"fromAccountNumber" validate:"required,accountnumber"`
	ToAccountNumber   string          `json:"toAccountNumber" validate:"required,accountnumber"`
	Amount            decimal.Decimal `json:"amount" validate:"required,money"`
	Currency          string          `json:"currency" validate:"required,currency"`
	TargetCurrency    string          `json:"targetCurrency" validate:"omitempty,currency"`
	SwiftCode         string          `json:"swiftCode" validate:"required,swift"`
	PaymentMethod     string          `json:"paymentMethod" validate:"required,oneof=bank_transfer credit_card debit_card paypal"`
}

// ListResponse wraps a list of transactions.
type ListResponse struct {
	Transactions []*dto.TransactionRead `json:"transactions"`
}

func newListResponse(txs []*dto.TransactionRead) ListResponse {
	if txs == nil {
		txs = []*dto.TransactionRead{}
	}
	return ListResponse{Transactions: txs}
}
