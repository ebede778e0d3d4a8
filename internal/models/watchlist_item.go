package models

import "time"

type WatchlistItem struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint64 `gorm:"not null;uniqueIndex:idx_watchlist_user_symbol,priority:1" json:"user_id"`
	Symbol string `gorm:"type:varchar(32);not null;uniqueIndex:idx_watchlist_user_symbol,priority:2" json:"symbol"`
	Alias  string `gorm:"type:text" json:"alias,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (WatchlistItem) TableName() string {
	return "watchlist_items"
}
