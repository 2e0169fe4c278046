package dao

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "mini-blog/pkg/common/errors"
	"mini-blog/pkg/core/comment/model"
	"mini-blog/pkg/core/comment/repository/dao"
	"mini-blog/pkg/core/internal/scope"
)

const table = "comments"

type GormCommentRepository struct {
	db *gorm.DB
}

var _ dao.CommentRepository = (*GormCommentRepository)(nil)

func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) scoped(ctx context.Context, actor scope.Actor) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Comment{}).Scopes(scope.Owned(actor, table))
}

// List returns visible comments in the order they were written.
func (r *GormCommentRepository) List(ctx context.Context, actor scope.Actor, filter model.Filter) ([]model.Comment, error) {
	q := r.scoped(ctx, actor)
	if filter.PostID != 0 {
		q = q.Where(table+".post_id = ?", filter.PostID)
	}

	var comments []model.Comment
	if err := q.Order("created_at").Order("id").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("%w: comment list failed", apperrors.WrapGormError(err))
	}
	return comments, nil
}

func (r *GormCommentRepository) QueryByID(ctx context.Context, actor scope.Actor, id int64) (model.Comment, error) {
	var comment model.Comment
	if err := r.scoped(ctx, actor).Where(table+".id = ?", id).First(&comment).Error; err != nil {
		return model.Comment{}, fmt.Errorf("%w: comment query failed", apperrors.WrapGormError(err))
	}
	return comment, nil
}

func (r *GormCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("%w: comment creation failed", apperrors.WrapGormError(err))
	}
	return nil
}

func (r *GormCommentRepository) UpdateText(ctx context.Context, actor scope.Actor, id int64, text string) error {
	result := r.scoped(ctx, actor).
		Where(table+".id = ?", id).
		Updates(map[string]interface{}{
			"text":       text,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("%w: comment update failed", apperrors.WrapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound(nil)
	}
	return nil
}

func (r *GormCommentRepository) Delete(ctx context.Context, actor scope.Actor, id int64) error {
	result := r.db.WithContext(ctx).
		Scopes(scope.Owned(actor, table)).
		Where(table+".id = ?", id).
		Delete(&model.Comment{})
	if result.Error != nil {
		return fmt.Errorf("%w: comment delete failed", apperrors.WrapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound(nil)
	}
	return nil
}
