package dao

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "mini-blog/pkg/common/errors"
	"mini-blog/pkg/core/user/model"
	"mini-blog/pkg/core/user/repository/dao"
)

// Columns safe to load for anything but credential checks.
var publicColumns = []string{"id", "email", "token", "token_issued_at", "created_at", "updated_at"}

type GormUserRepository struct {
	db *gorm.DB
}

var _ dao.UserRepository = (*GormUserRepository)(nil)

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Select(publicColumns).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("%w: user list failed", apperrors.WrapGormError(err))
	}
	return users, nil
}

func (r *GormUserRepository) QueryByID(ctx context.Context, id int64) (model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Select(publicColumns).
		Where("id = ?", id).
		First(&user).
		Error
	if err != nil {
		return model.User{}, fmt.Errorf("%w: user query failed", apperrors.WrapGormError(err))
	}
	return user, nil
}

func (r *GormUserRepository) QueryByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return model.User{}, fmt.Errorf("%w: credential lookup failed", apperrors.WrapGormError(err))
	}
	return user, nil
}

func (r *GormUserRepository) QueryByToken(ctx context.Context, token string) (model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Select(publicColumns).
		Where("token = ?", token).
		First(&user).
		Error
	if err != nil {
		return model.User{}, fmt.Errorf("%w: token lookup failed", apperrors.WrapGormError(err))
	}
	return user, nil
}

// IsEmailExists checks whether another user (id != excludeID) already holds email.
func (r *GormUserRepository) IsEmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: failed to check email", apperrors.WrapGormError(err))
	}
	return count > 0, nil
}

func (r *GormUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("%w: user creation failed", apperrors.WrapGormError(err))
	}
	return nil
}

func (r *GormUserRepository) UpdateEmail(ctx context.Context, id int64, email string) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"email":      email,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("%w: email update failed", apperrors.WrapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound(nil)
	}
	return nil
}

func (r *GormUserRepository) UpdateToken(ctx context.Context, id int64, token string, issuedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"token":           token,
			"token_issued_at": issuedAt,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("%w: token update failed", apperrors.WrapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound(nil)
	}
	return nil
}
