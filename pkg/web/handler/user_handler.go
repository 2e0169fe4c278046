// ----------- pkg/web/handler/user_handler.go -----------
package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	usermodel "mini-blog/pkg/core/user/model"
	"mini-blog/pkg/core/user/service"
	"mini-blog/pkg/web/middleware"
	"mini-blog/pkg/web/model"
)

// UserService is what the user and auth endpoints need from the core.
type UserService interface {
	List(ctx context.Context) ([]usermodel.User, error)
	Get(ctx context.Context, id int64) (usermodel.User, error)
	Create(ctx context.Context, in service.SignupInput) (usermodel.User, error)
	Update(ctx context.Context, actorID, id int64, in service.UpdateInput) (usermodel.User, error)
	Login(ctx context.Context, in service.LoginInput) (service.LoginResult, error)
}

type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List GET /users
func (h *UserHandler) List(ctx context.Context, c *app.RequestContext) {
	users, err := h.users.List(ctx)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(200, model.NewUserList(users))
}

// Get GET /users/:id
func (h *UserHandler) Get(ctx context.Context, c *app.RequestContext) {
	id, err := pathID(c)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	user, err := h.users.Get(ctx, id)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(200, model.NewUserRes(user))
}

// Register POST /users
func (h *UserHandler) Register(ctx context.Context, c *app.RequestContext) {
	var req model.SignupReq
	if err := bind(c, &req); err != nil {
		respondError(ctx, c, err)
		return
	}

	user, err := h.users.Create(ctx, service.SignupInput{Email: req.Email, Password: req.Password})
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(200, model.NewUserRes(user))
}

// Update PUT /users/:id, only for the token holder themself.
func (h *UserHandler) Update(ctx context.Context, c *app.RequestContext) {
	id, err := pathID(c)
	if err != nil {
		respondError(ctx, c, err)
		return
	}

	var req model.UpdateUserReq
	if err := bind(c, &req); err != nil {
		respondError(ctx, c, err)
		return
	}

	user, err := h.users.Update(ctx, middleware.CurrentUserID(c), id, service.UpdateInput{Email: req.Email})
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(200, model.NewUserRes(user))
}

// Login POST /auth
func (h *UserHandler) Login(ctx context.Context, c *app.RequestContext) {
	var req model.LoginReq
	if err := bind(c, &req); err != nil {
		respondError(ctx, c, err)
		return
	}

	res, err := h.users.Login(ctx, service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(200, model.LoginRes{ID: res.ID, Token: res.Token})
}
