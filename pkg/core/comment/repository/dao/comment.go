package dao

import (
	"context"

	"mini-blog/pkg/core/comment/model"
	"mini-blog/pkg/core/internal/scope"
)

type CommentRepository interface {
	List(ctx context.Context, actor scope.Actor, filter model.Filter) ([]model.Comment, error)
	QueryByID(ctx context.Context, actor scope.Actor, id int64) (model.Comment, error)
	Create(ctx context.Context, comment *model.Comment) error
	UpdateText(ctx context.Context, actor scope.Actor, id int64, text string) error
	Delete(ctx context.Context, actor scope.Actor, id int64) error
}
