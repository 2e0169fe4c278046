package service

import (
	"context"
	"errors"

	apperrors "mini-blog/pkg/common/errors"
	"mini-blog/pkg/common/validation"
	"mini-blog/pkg/core/comment/model"
	"mini-blog/pkg/core/comment/repository/dao"
	"mini-blog/pkg/core/internal/scope"
	postdao "mini-blog/pkg/core/post/repository/dao"
)

type CreateInput struct {
	PostID int64  `json:"post_id" validate:"gt=0"`
	Text   string `json:"text" validate:"notblank"`
}

type UpdateInput struct {
	Text *string `json:"text" validate:"omitempty,notblank"`
}

type CommentService struct {
	comments dao.CommentRepository
	posts    postdao.PostRepository
}

func NewCommentService(comments dao.CommentRepository, posts postdao.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// List returns the actor's comments, optionally limited to one post.
func (s *CommentService) List(ctx context.Context, actorID int64, filter model.Filter) ([]model.Comment, error) {
	return s.comments.List(ctx, scope.As(actorID), filter)
}

func (s *CommentService) Get(ctx context.Context, actorID, id int64) (model.Comment, error) {
	return s.comments.QueryByID(ctx, scope.As(actorID), id)
}

func (s *CommentService) Create(ctx context.Context, actorID int64, in CreateInput) (model.Comment, error) {
	actor := scope.As(actorID)
	if !actor.Authenticated() {
		return model.Comment{}, apperrors.NewUnauthorized(nil)
	}
	if err := validation.Struct(in); err != nil {
		return model.Comment{}, err
	}

	// The parent may belong to anyone; only its existence matters.
	if _, err := s.posts.QueryByID(ctx, scope.System(), in.PostID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return model.Comment{}, apperrors.NewValidation(apperrors.FieldErrors{"post_id": "does not exist"})
		}
		return model.Comment{}, err
	}

	comment := model.Comment{PostID: in.PostID, UserID: actor.UserID(), Text: in.Text}
	if err := s.comments.Create(ctx, &comment); err != nil {
		return model.Comment{}, err
	}
	return s.comments.QueryByID(ctx, actor, comment.ID)
}

func (s *CommentService) Update(ctx context.Context, actorID, id int64, in UpdateInput) (model.Comment, error) {
	actor := scope.As(actorID)
	if err := s.authorize(ctx, actor, id); err != nil {
		return model.Comment{}, err
	}
	if err := validation.Struct(in); err != nil {
		return model.Comment{}, err
	}

	if in.Text != nil {
		if err := s.comments.UpdateText(ctx, actor, id, *in.Text); err != nil {
			return model.Comment{}, err
		}
	}
	return s.comments.QueryByID(ctx, actor, id)
}

func (s *CommentService) Delete(ctx context.Context, actorID, id int64) error {
	actor := scope.As(actorID)
	if err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	return s.comments.Delete(ctx, actor, id)
}

func (s *CommentService) authorize(ctx context.Context, actor scope.Actor, id int64) error {
	comment, err := s.comments.QueryByID(ctx, actor, id)
	switch {
	case err == nil:
		if !actor.Owns(comment.UserID) {
			return apperrors.NewForbidden(nil)
		}
		return nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return err
	}

	if _, err := s.comments.QueryByID(ctx, scope.System(), id); err != nil {
		return err
	}
	return apperrors.NewForbidden(nil)
}
