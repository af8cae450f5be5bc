package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserCreate represents the data needed to persist a new customer.
// Password must already be hashed.
type UserCreate struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	FullName      string    `json:"fullName"`
	IDNumber      string    `json:"idNumber"`
	AccountNumber string    `json:"accountNumber"`
	Password      string    `json:"-"`
	Active        bool      `json:"active"`
}

// UserRead represents a read-optimized view of a customer.
type UserRead struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	FullName       string    `json:"fullName"`
	IDNumber       string    `json:"idNumber"`
	AccountNumber  string    `json:"accountNumber"`
	HashedPassword string    `json:"-"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created"`
	UpdatedAt      time.Time `json:"updated"`
}

// StaffCreate represents the data needed to persist a staff member.
type StaffCreate struct {
	ID       uuid.UUID
	Username string
	FullName string
	Password string
}

// StaffRead represents a read-optimized view of a staff member.
type StaffRead struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	FullName       string    `json:"fullName"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created"`
}
