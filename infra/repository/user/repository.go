package user

import (
	"context"
	"time"

	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/amirasaad/payportal/pkg/dto"
	"github.com/amirasaad/payportal/pkg/repository/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a GORM-backed customer repository.
func New(db *gorm.DB) user.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.UserCreate,
) error {
	now := time.Now().UTC()
	u := &User{
		ID:            create.ID,
		Username:      create.Username,
		FullName:      create.FullName,
		IDNumber:      create.IDNumber,
		AccountNumber: create.AccountNumber,
		Password:      create.Password,
		Active:        create.Active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.UserRead, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) GetByAccountNumber(
	ctx context.Context,
	accountNumber string,
) (*dto.UserRead, error) {
	var u User
	if err := r.db.WithContext(ctx).
		Where("account_number = ?", accountNumber).
		First(&u).Error; err != nil {
		return nil, err
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) GetActiveByAccountNumber(
	ctx context.Context,
	accountNumber string,
) (*dto.UserRead, error) {
	var u User
	if err := r.db.WithContext(ctx).
		Where("account_number = ? AND active = ?", accountNumber, true).
		First(&u).Error; err != nil {
		return nil, err
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *repository) ExistsByIDNumber(ctx context.Context, idNumber string) (bool, error) {
	return r.exists(ctx, "id_number = ?", idNumber)
}

func (r *repository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	return r.exists(ctx, "account_number = ?", accountNumber)
}

func (r *repository) SetActive(
	ctx context.Context,
	accountNumber string,
	active bool,
) error {
	res := r.db.WithContext(ctx).Model(&User{}).
		Where("account_number = ?", accountNumber).
		Updates(map[string]any{"active": active, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func mapModelToDTO(u *User) *dto.UserRead {
	return &dto.UserRead{
		ID:             u.ID,
		Username:       u.Username,
		FullName:       u.FullName,
		IDNumber:       u.IDNumber,
		AccountNumber:  u.AccountNumber,
		HashedPassword: u.Password,
		Active:         u.Active,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

var _ user.Repository = (*repository)(nil)
