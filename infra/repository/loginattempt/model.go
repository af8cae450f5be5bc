package loginattempt

import (
	"time"

	"github.com/google/uuid"
)

// LoginAttempt represents one persisted authentication attempt.
type LoginAttempt struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username        string    `gorm:"size:255;index"`
	AccountNumber   string    `gorm:"size:255;index"`
	IPAddress       string    `gorm:"size:64"`
	SuccessfulLogin bool      `gorm:"not null"`
	Timestamp       time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for the LoginAttempt model.
func (LoginAttempt) TableName() string {
	return "login_attempts"
}
