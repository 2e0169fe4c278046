package service

import (
	"context"
	"errors"

	apperrors "mini-blog/pkg/common/errors"
	"mini-blog/pkg/common/validation"
	"mini-blog/pkg/core/internal/scope"
	"mini-blog/pkg/core/post/model"
	"mini-blog/pkg/core/post/repository/dao"
)

type CreateInput struct {
	Title string `json:"title" validate:"notblank,max=255"`
	Text  string `json:"text" validate:"notblank"`
}

type UpdateInput struct {
	Title *string `json:"title" validate:"omitempty,notblank,max=255"`
	Text  *string `json:"text" validate:"omitempty,notblank"`
}

// PostService runs validate → authorize → mutate for posts. actorID 0 means anonymous.
type PostService struct {
	posts dao.PostRepository
}

func NewPostService(posts dao.PostRepository) *PostService {
	return &PostService{posts: posts}
}

func (s *PostService) List(ctx context.Context, actorID int64) ([]model.Post, error) {
	return s.posts.List(ctx, scope.As(actorID))
}

func (s *PostService) Get(ctx context.Context, actorID, id int64) (model.Post, error) {
	return s.posts.QueryByID(ctx, scope.As(actorID), id)
}

func (s *PostService) Create(ctx context.Context, actorID int64, in CreateInput) (model.Post, error) {
	actor := scope.As(actorID)
	if !actor.Authenticated() {
		return model.Post{}, apperrors.NewUnauthorized(nil)
	}
	if err := validation.Struct(in); err != nil {
		return model.Post{}, err
	}

	post := model.Post{UserID: actor.UserID(), Title: in.Title, Text: in.Text}
	if err := s.posts.Create(ctx, &post); err != nil {
		return model.Post{}, err
	}
	return s.posts.QueryByID(ctx, actor, post.ID)
}

func (s *PostService) Update(ctx context.Context, actorID, id int64, in UpdateInput) (model.Post, error) {
	actor := scope.As(actorID)
	if _, err := s.authorize(ctx, actor, id); err != nil {
		return model.Post{}, err
	}
	if err := validation.Struct(in); err != nil {
		return model.Post{}, err
	}

	patch := model.Patch{Title: in.Title, Text: in.Text}
	if !patch.Empty() {
		if err := s.posts.Update(ctx, actor, id, patch); err != nil {
			return model.Post{}, err
		}
	}
	return s.posts.QueryByID(ctx, actor, id)
}

func (s *PostService) Delete(ctx context.Context, actorID, id int64) error {
	actor := scope.As(actorID)
	if _, err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	return s.posts.Delete(ctx, actor, id)
}

// authorize loads the post through the actor's scope and checks ownership. A post hidden by
// the scope is looked up once more without it to tell NotFound from Forbidden.
func (s *PostService) authorize(ctx context.Context, actor scope.Actor, id int64) (model.Post, error) {
	post, err := s.posts.QueryByID(ctx, actor, id)
	switch {
	case err == nil:
		if !actor.Owns(post.UserID) {
			return model.Post{}, apperrors.NewForbidden(nil)
		}
		return post, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return model.Post{}, err
	}

	if _, err := s.posts.QueryByID(ctx, scope.System(), id); err != nil {
		return model.Post{}, err
	}
	return model.Post{}, apperrors.NewForbidden(nil)
}
