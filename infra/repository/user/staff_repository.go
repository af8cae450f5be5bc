package user

import (
	"context"
	"time"

	"github.com/amirasaad/payportal/pkg/dto"
	"github.com/amirasaad/payportal/pkg/repository/staff"
	"gorm.io/gorm"
)

type staffRepository struct {
	db *gorm.DB
}

// NewStaff creates a GORM-backed staff repository.
func NewStaff(db *gorm.DB) staff.Repository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, create *dto.StaffCreate) error {
	return r.db.WithContext(ctx).Create(&Staff{
		ID:        create.ID,
		Username:  create.Username,
		FullName:  create.FullName,
		Password:  create.Password,
		CreatedAt: time.Now().UTC(),
	}).Error
}

func (r *staffRepository) GetByUsername(ctx context.Context, username string) (*dto.StaffRead, error) {
	var s Staff
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&s).Error; err != nil {
		return nil, err
	}
	return &dto.StaffRead{
		ID:             s.ID,
		Username:       s.Username,
		FullName:       s.FullName,
		HashedPassword: s.Password,
		CreatedAt:      s.CreatedAt,
	}, nil
}

func (r *staffRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Staff{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ staff.Repository = (*staffRepository)(nil)
