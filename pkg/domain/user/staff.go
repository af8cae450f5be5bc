package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/amirasaad/payportal/pkg/utils"
	"github.com/google/uuid"
)

// ErrStaffExists is returned when a staff username is already taken.
var ErrStaffExists = fmt.Errorf("staff %w", domain.ErrAlreadyExists)

// Staff is an employee allowed to review and submit transfers.
type Staff struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created"`
}

// NewStaff validates and hashes a new staff member.
func NewStaff(username, fullName, password string) (*Staff, error) {
	username = strings.TrimSpace(username)
	fullName = strings.TrimSpace(fullName)
	if err := errors.Join(
		ValidateUsername(username),
		ValidateFullName(fullName),
		ValidatePassword(password),
	); err != nil {
		return nil, err
	}
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &Staff{
		ID:        uuid.New(),
		Username:  username,
		FullName:  fullName,
		Password:  hashedPassword,
		CreatedAt: time.Now().UTC(),
	}, nil
}
