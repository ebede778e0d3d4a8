package models

import "time"

const (
	MessageRoleUser  = "user"
	MessageRoleAdmin = "admin"
)

// Message is one entry in a user's Q&A inbox thread.
type Message struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint64 `gorm:"not null;index" json:"user_id"`
	Role   string `gorm:"type:varchar(10);not null" json:"role"`
	Text   string `gorm:"type:text;not null" json:"text"`
	Seen   bool   `gorm:"not null;default:false" json:"seen"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
