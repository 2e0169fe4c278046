package model

import (
	"time"

	commentmodel "mini-blog/pkg/core/comment/model"
)

type (
	CreateCommentReq struct {
		PostID int64  `json:"post_id"`
		Text   string `json:"text"`
	}

	UpdateCommentReq struct {
		Text *string `json:"text"`
	}

	CommentRes struct {
		ID        int64     `json:"id"`
		PostID    int64     `json:"post_id"`
		UserID    int64     `json:"user_id"`
		Text      string    `json:"text"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}
)

func NewCommentRes(c commentmodel.Comment) CommentRes {
	return CommentRes{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewCommentList(comments []commentmodel.Comment) []CommentRes {
	out := make([]CommentRes, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewCommentRes(c))
	}
	return out
}
