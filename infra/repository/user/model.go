package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a customer record in the database.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username      string    `gorm:"uniqueIndex;not null;size:30"`
	FullName      string    `gorm:"not null;size:255"`
	IDNumber      string    `gorm:"column:id_number;uniqueIndex;not null;size:13"`
	AccountNumber string    `gorm:"uniqueIndex;not null;size:16"`
	Password      string    `gorm:"not null"`
	Active        bool      `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Staff represents a staff record in the database.
type Staff struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"uniqueIndex;not null;size:30"`
	FullName  string    `gorm:"not null;size:255"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Staff model.
func (Staff) TableName() string {
	return "staff"
}
