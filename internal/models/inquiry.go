package models

import "time"

// Inquiry is a contact/appointment request filed from the inquiry page or the
// assistant flow. UserID is nullable: inquiries may arrive before login.
type Inquiry struct {
	ID     uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID *uint64 `gorm:"index" json:"user_id,omitempty"`

	Name    string `gorm:"type:text;not null" json:"name"`
	Email   string `gorm:"type:text" json:"email"`
	Phone   string `gorm:"type:text" json:"phone"`
	Message string `gorm:"type:text" json:"message"`

	Reference string `gorm:"type:varchar(36);uniqueIndex" json:"reference"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
}

func (Inquiry) TableName() string {
	return "inquiries"
}
