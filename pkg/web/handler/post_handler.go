package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"

	postmodel "mini-blog/pkg/core/post/model"
	"mini-blog/pkg/core/post/service"
	"mini-blog/pkg/web/middleware"
	"mini-blog/pkg/web/model"
)

type PostService interface {
	List(ctx context.Context, actorID int64) ([]postmodel.Post, error)
	Get(ctx context.Context, actorID, id int64) (postmodel.Post, error)
	Create(ctx context.Context, actorID int64, in service.CreateInput) (postmodel.Post, error)
	Update(ctx context.Context, actorID, id int64, in service.UpdateInput) (postmodel.Post, error)
	Delete(ctx context.Context, actorID, id int64) error
}

type PostHandler struct {
	posts PostService
}

func NewPostHandler(posts PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// List GET /posts, newest first, only the caller's posts.
func (h *PostHandler) List(ctx context.Context, c *app.RequestContext) {
	posts, err := h.posts.List(ctx, middleware.CurrentUserID(c))
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(200, model.NewPostList(posts))
}

// Get GET /posts/:id
func (h *PostHandler) Get(ctx context.Context, c *app.RequestContext) {
	id, err := pathID(c)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	post, err := h.posts.Get(ctx, middleware.CurrentUserID(c), id)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(200, model.NewPostRes(post))
}

// Create POST /posts
func (h *PostHandler) Create(ctx context.Context, c *app.RequestContext) {
	var req model.CreatePostReq
	if err := bind(c, &req); err != nil {
		respondError(ctx, c, err)
		return
	}

	post, err := h.posts.Create(ctx, middleware.CurrentUserID(c), service.CreateInput{Title: req.Title, Text: req.Text})
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(200, model.NewPostRes(post))
}

// Update PUT /posts/:id
func (h *PostHandler) Update(ctx context.Context, c *app.RequestContext) {
	id, err := pathID(c)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	var req model.UpdatePostReq
	if err := bind(c, &req); err != nil {
		respondError(ctx, c, err)
		return
	}

	post, err := h.posts.Update(ctx, middleware.CurrentUserID(c), id, service.UpdateInput{Title: req.Title, Text: req.Text})
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(200, model.NewPostRes(post))
}

// Delete DELETE /posts/:id
func (h *PostHandler) Delete(ctx context.Context, c *app.RequestContext) {
	id, err := pathID(c)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	if err := h.posts.Delete(ctx, middleware.CurrentUserID(c), id); err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(200, utils.H{})
}
