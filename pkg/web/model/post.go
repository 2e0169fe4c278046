package model

import (
	"time"

	postmodel "mini-blog/pkg/core/post/model"
)

type (
	CreatePostReq struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	}

	// UpdatePostReq fields are optional; absent fields keep their value.
	UpdatePostReq struct {
		Title *string `json:"title"`
		Text  *string `json:"text"`
	}

	PostRes struct {
		ID        int64     `json:"id"`
		UserID    int64     `json:"user_id"`
		Title     string    `json:"title"`
		Text      string    `json:"text"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}
)

func NewPostRes(p postmodel.Post) PostRes {
	return PostRes{
		ID:        p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		Text:      p.Text,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func NewPostList(posts []postmodel.Post) []PostRes {
	out := make([]PostRes, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostRes(p))
	}
	return out
}
