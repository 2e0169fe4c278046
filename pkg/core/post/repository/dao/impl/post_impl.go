package dao

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "mini-blog/pkg/common/errors"
	"mini-blog/pkg/core/internal/scope"
	"mini-blog/pkg/core/post/model"
	"mini-blog/pkg/core/post/repository/dao"
)

const table = "posts"

type GormPostRepository struct {
	db *gorm.DB
}

var _ dao.PostRepository = (*GormPostRepository)(nil)

func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) scoped(ctx context.Context, actor scope.Actor) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Post{}).Scopes(scope.Owned(actor, table))
}

// List returns the visible posts, newest first.
func (r *GormPostRepository) List(ctx context.Context, actor scope.Actor) ([]model.Post, error) {
	var posts []model.Post
	err := r.scoped(ctx, actor).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("%w: post list failed", apperrors.WrapGormError(err))
	}
	return posts, nil
}

func (r *GormPostRepository) QueryByID(ctx context.Context, actor scope.Actor, id int64) (model.Post, error) {
	var post model.Post
	if err := r.scoped(ctx, actor).Where(table+".id = ?", id).First(&post).Error; err != nil {
		return model.Post{}, fmt.Errorf("%w: post query failed", apperrors.WrapGormError(err))
	}
	return post, nil
}

func (r *GormPostRepository) Create(ctx context.Context, post *model.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("%w: post creation failed", apperrors.WrapGormError(err))
	}
	return nil
}

func (r *GormPostRepository) Update(ctx context.Context, actor scope.Actor, id int64, patch model.Patch) error {
	cols := patch.Columns()
	cols["updated_at"] = time.Now()

	result := r.scoped(ctx, actor).Where(table+".id = ?", id).Updates(cols)
	if result.Error != nil {
		return fmt.Errorf("%w: post update failed", apperrors.WrapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound(nil)
	}
	return nil
}

func (r *GormPostRepository) Delete(ctx context.Context, actor scope.Actor, id int64) error {
	result := r.db.WithContext(ctx).
		Scopes(scope.Owned(actor, table)).
		Where(table+".id = ?", id).
		Delete(&model.Post{})
	if result.Error != nil {
		return fmt.Errorf("%w: post delete failed", apperrors.WrapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound(nil)
	}
	return nil
}
