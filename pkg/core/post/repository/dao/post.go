package dao

import (
	"context"

	"mini-blog/pkg/core/internal/scope"
	"mini-blog/pkg/core/post/model"
)

// PostRepository applies the ownership scope of the given actor to every read, update and delete.
type PostRepository interface {
	List(ctx context.Context, actor scope.Actor) ([]model.Post, error)
	QueryByID(ctx context.Context, actor scope.Actor, id int64) (model.Post, error)
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, actor scope.Actor, id int64, patch model.Patch) error
	Delete(ctx context.Context, actor scope.Actor, id int64) error
}
