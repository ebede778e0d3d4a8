package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName string `gorm:"type:text" json:"full_name"`
	Username string `gorm:"type:varchar(64);not null;uniqueIndex" json:"username"`
	Email    string `gorm:"type:text" json:"email"`
	Phone    string `gorm:"type:text" json:"phone"`

	PasswordHash string `gorm:"type:varchar(64);not null" json:"-"`
	Salt         string `gorm:"type:varchar(32);not null" json:"-"`

	// Settings holds per-user UI preferences (auto refresh, default chart range).
	Settings datatypes.JSON `gorm:"type:jsonb" json:"settings,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"-"`
}

func (User) TableName() string {
	return "users"
}
