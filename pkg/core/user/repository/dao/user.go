package dao

import (
	"context"
	"time"

	"mini-blog/pkg/core/user/model"
)

type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	QueryByID(ctx context.Context, id int64) (model.User, error)
	QueryByEmail(ctx context.Context, email string) (model.User, error) // includes the password hash
	QueryByToken(ctx context.Context, token string) (model.User, error)
	IsEmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateEmail(ctx context.Context, id int64, email string) error
	UpdateToken(ctx context.Context, id int64, token string, issuedAt time.Time) error
}
