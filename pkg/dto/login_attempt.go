package dto

import (
	"time"

	"github.com/google/uuid"
)

// LoginAttemptCreate is a DTO for persisting one audit record.
type LoginAttemptCreate struct {
	ID              uuid.UUID
	Username        string
	AccountNumber   string
	IPAddress       string
	SuccessfulLogin bool
	Timestamp       time.Time
}
