package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Post is a user-authored analysis note, optionally tagged with symbols.
type Post struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint64 `gorm:"not null;index" json:"user_id"`

	Title   string `gorm:"type:text;not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`

	// Symbols is a JSON array of upper-cased symbol tags.
	Symbols datatypes.JSON `gorm:"type:jsonb" json:"symbols,omitempty"`

	Status string `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime;index" json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}
