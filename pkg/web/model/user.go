package model

import (
	"time"

	usermodel "mini-blog/pkg/core/user/model"
)

// Request/response payloads
type (
	SignupReq struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	LoginReq struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	UpdateUserReq struct {
		Email string `json:"email"`
	}

	LoginRes struct {
		ID    int64  `json:"id"`
		Token string `json:"token"`
	}

	// UserRes never carries the password hash or the token.
	UserRes struct {
		ID        int64     `json:"id"`
		Email     string    `json:"email"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}
)

func NewUserRes(u usermodel.User) UserRes {
	return UserRes{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewUserList(users []usermodel.User) []UserRes {
	out := make([]UserRes, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserRes(u))
	}
	return out
}
