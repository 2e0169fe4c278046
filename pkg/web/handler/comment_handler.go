package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"

	apperrors "mini-blog/pkg/common/errors"
	commentmodel "mini-blog/pkg/core/comment/model"
	"mini-blog/pkg/core/comment/service"
	"mini-blog/pkg/web/middleware"
	"mini-blog/pkg/web/model"
)

type CommentService interface {
	List(ctx context.Context, actorID int64, filter commentmodel.Filter) ([]commentmodel.Comment, error)
	Get(ctx context.Context, actorID, id int64) (commentmodel.Comment, error)
	Create(ctx context.Context, actorID int64, in service.CreateInput) (commentmodel.Comment, error)
	Update(ctx context.Context, actorID, id int64, in service.UpdateInput) (commentmodel.Comment, error)
	Delete(ctx context.Context, actorID, id int64) error
}

type CommentHandler struct {
	comments CommentService
}

func NewCommentHandler(comments CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// List GET /comments?post_id=
func (h *CommentHandler) List(ctx context.Context, c *app.RequestContext) {
	var filter commentmodel.Filter
	if raw := c.Query("post_id"); raw != "" {
		postID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || postID <= 0 {
			respondError(ctx, c, apperrors.NewValidation(apperrors.FieldErrors{"post_id": "must be a positive integer"}))
			return
		}
		filter.PostID = postID
	}

	comments, err := h.comments.List(ctx, middleware.CurrentUserID(c), filter)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(200, model.NewCommentList(comments))
}

// Get GET /comments/:id
func (h *CommentHandler) Get(ctx context.Context, c *app.RequestContext) {
	id, err := pathID(c)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	comment, err := h.comments.Get(ctx, middleware.CurrentUserID(c), id)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(200, model.NewCommentRes(comment))
}

// Create POST /comments
func (h *CommentHandler) Create(ctx context.Context, c *app.RequestContext) {
	var req model.CreateCommentReq
	if err := bind(c, &req); err != nil {
		respondError(ctx, c, err)
		return
	}

	comment, err := h.comments.Create(ctx, middleware.CurrentUserID(c), service.CreateInput{PostID: req.PostID, Text: req.Text})
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(200, model.NewCommentRes(comment))
}

// Update PUT /comments/:id
func (h *CommentHandler) Update(ctx context.Context, c *app.RequestContext) {
	id, err := pathID(c)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	var req model.UpdateCommentReq
	if err := bind(c, &req); err != nil {
		respondError(ctx, c, err)
		return
	}

	comment, err := h.comments.Update(ctx, middleware.CurrentUserID(c), id, service.UpdateInput{Text: req.Text})
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(200, model.NewCommentRes(comment))
}

// Delete DELETE /comments/:id
func (h *CommentHandler) Delete(ctx context.Context, c *app.RequestContext) {
	id, err := pathID(c)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	if err := h.comments.Delete(ctx, middleware.CurrentUserID(c), id); err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(200, utils.H{})
}
