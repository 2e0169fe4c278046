package model

import (
	"time"
)

type User struct {
	ID            int64      `gorm:"primaryKey;autoIncrement"`
	Email         string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash  string     `gorm:"column:password;type:varchar(255);not null"`
	Token         *string    `gorm:"type:varchar(64);uniqueIndex"` // nil until first login
	TokenIssuedAt *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// TokenExpired reports whether the issued token is older than ttl. A zero ttl never expires.
func (u User) TokenExpired(ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return false
	}
	if u.TokenIssuedAt == nil {
		return true
	}
	return now.Sub(*u.TokenIssuedAt) > ttl
}
