package model

import "time"

type Post struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"index;not null"` // owner, never changed after create
	Title     string    `gorm:"type:varchar(255);not null"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index;autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Post) TableName() string {
	return "posts"
}

// Patch carries the fields a client may change; nil means "leave as is".
type Patch struct {
	Title *string
	Text  *string
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Text == nil
}

// Columns renders the patch as an update map. user_id is never part of it.
func (p Patch) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 2)
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Text != nil {
		cols["text"] = *p.Text
	}
	return cols
}
