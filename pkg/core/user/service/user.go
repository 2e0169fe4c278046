package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "mini-blog/pkg/common/errors"
	"mini-blog/pkg/common/validation"
	"mini-blog/pkg/core/user/model"
	"mini-blog/pkg/core/user/repository/dao"
)

// Options tunes credential handling.
type Options struct {
	TokenTTL   time.Duration // 0 disables expiry
	BcryptCost int
}

type SignupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"notblank"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

type UpdateInput struct {
	Email string `json:"email" validate:"required,email"`
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	ID    int64
	Token string
}

// UserService owns signup, self-update and the token gateway.
type UserService struct {
	users    dao.UserRepository
	opts     Options
	now      func() time.Time
	newToken func() string
}

func NewUserService(users dao.UserRepository, opts Options) *UserService {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		users:    users,
		opts:     opts,
		now:      time.Now,
		newToken: newOpaqueToken,
	}
}

// newOpaqueToken returns 64 random hex characters.
func newOpaqueToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (model.User, error) {
	return s.users.QueryByID(ctx, id)
}

// Create registers a user. The returned user never carries the password hash or a token.
func (s *UserService) Create(ctx context.Context, in SignupInput) (model.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return model.User{}, err
	}

	if exists, err := s.users.IsEmailExists(ctx, in.Email, 0); err != nil {
		return model.User{}, err
	} else if exists {
		return model.User{}, apperrors.NewConflict(apperrors.FieldErrors{"email": "is already taken"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.opts.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return model.User{}, apperrors.NewValidation(apperrors.FieldErrors{"password": "must be at most 72 bytes"})
	}
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{Email: in.Email, PasswordHash: string(hashed)}
	if err := s.users.CreateUser(ctx, &user); err != nil {
		return model.User{}, err
	}
	hlog.CtxInfof(ctx, "user registered id=%d", user.ID)

	return s.users.QueryByID(ctx, user.ID)
}

// Update changes a user's email. Only the user themself may do so.
func (s *UserService) Update(ctx context.Context, actorID, id int64, in UpdateInput) (model.User, error) {
	if actorID <= 0 || actorID != id {
		return model.User{}, apperrors.NewUnauthorized(nil)
	}

	if _, err := s.users.QueryByID(ctx, id); err != nil {
		return model.User{}, err
	}

	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return model.User{}, err
	}

	if exists, err := s.users.IsEmailExists(ctx, in.Email, id); err != nil {
		return model.User{}, err
	} else if exists {
		return model.User{}, apperrors.NewConflict(apperrors.FieldErrors{"email": "is already taken"})
	}

	if err := s.users.UpdateEmail(ctx, id, in.Email); err != nil {
		return model.User{}, err
	}
	return s.users.QueryByID(ctx, id)
}

// Login checks credentials and rotates the user's token.
func (s *UserService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return LoginResult{}, err
	}

	user, err := s.users.QueryByEmail(ctx, in.Email)
	if err != nil {
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return LoginResult{}, apperrors.NewUnauthorized(nil)
		}
		return LoginResult{}, fmt.Errorf("compare password: %w", err)
	}

	token := s.newToken()
	if err := s.users.UpdateToken(ctx, user.ID, token, s.now()); err != nil {
		return LoginResult{}, err
	}
	return LoginResult{ID: user.ID, Token: token}, nil
}

// ResolveToken returns the token's owner, or nil when the token is empty, unknown or expired.
func (s *UserService) ResolveToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}

	user, err := s.users.QueryByToken(ctx, token)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if user.TokenExpired(s.opts.TokenTTL, s.now()) {
		return nil, nil
	}
	return &user, nil
}
