package models

import "time"

type FundWatchItem struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint64 `gorm:"not null;uniqueIndex:idx_fund_watch_user_scheme,priority:1" json:"user_id"`
	SchemeCode uint64 `gorm:"not null;uniqueIndex:idx_fund_watch_user_scheme,priority:2" json:"scheme_code"`
	SchemeName string `gorm:"type:text;not null" json:"scheme_name"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (FundWatchItem) TableName() string {
	return "fund_watch_items"
}
