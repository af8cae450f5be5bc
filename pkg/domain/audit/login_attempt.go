package audit

import (
	"time"

	"github.com/google/uuid"
)

// LoginAttempt is an immutable record of one authentication attempt.
// Username and AccountNumber hold what the caller submitted, which may not
// match any real account.
type LoginAttempt struct {
	ID              uuid.UUID
	Username        string
	AccountNumber   string
	IPAddress       string
	SuccessfulLogin bool
	Timestamp       time.Time
}

// NewLoginAttempt stamps a new attempt with an id and the current time.
func NewLoginAttempt(username, accountNumber, ip string, success bool) *LoginAttempt {
	return &LoginAttempt{
		ID:              uuid.New(),
		Username:        username,
		AccountNumber:   accountNumber,
		IPAddress:       ip,
		SuccessfulLogin: success,
		Timestamp:       time.Now().UTC(),
	}
}
