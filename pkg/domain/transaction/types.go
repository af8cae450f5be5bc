package transaction

// Status is the lifecycle state of a transaction.
type Status string

const (
	StatusPending   Status = "pending"
	StatusVerified  Status = "verified"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

var transitions = map[Status][]Status{
	StatusPending:  {StatusVerified, StatusFailed},
	StatusVerified: {StatusCompleted, StatusFailed},
}

// CanTransitionTo reports whether the move from s to next is a forward
// transition of the lifecycle.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Currency is an ISO 4217 code accepted by the portal.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	AUD Currency = "AUD"
	ZAR Currency = "ZAR"
	CAD Currency = "CAD"
	CHF Currency = "CHF"
	CNY Currency = "CNY"
)

// SupportedCurrencies lists every accepted currency.
var SupportedCurrencies = []Currency{USD, EUR, GBP, JPY, AUD, ZAR, CAD, CHF, CNY}

func (c Currency) IsValid() bool {
	for _, s := range SupportedCurrencies {
		if c == s {
			return true
		}
	}
	return false
}

func (c Currency) String() string { return string(c) }

// PaymentMethod is how the sender funds the transfer.
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
	PaymentMethodPayPal       PaymentMethod = "paypal"
)

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentMethodBankTransfer, PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodPayPal:
		return true
	}
	return false
}
