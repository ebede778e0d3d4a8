package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PortfolioSnapshot is an hourly valuation row per user, written by the
// snapshot cron so the dashboard can chart portfolio value over time.
type PortfolioSnapshot struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint64    `gorm:"not null;uniqueIndex:idx_snapshots_user_at,priority:1" json:"user_id"`
	SnapshotAt time.Time `gorm:"type:timestamptz;not null;uniqueIndex:idx_snapshots_user_at,priority:2" json:"snapshot_at"`

	Positions int `gorm:"not null" json:"positions"`

	TotalValue    decimal.Decimal `gorm:"type:numeric(30,10);not null" json:"total_value"`
	TotalInvested decimal.Decimal `gorm:"type:numeric(30,10);not null" json:"total_invested"`
	TotalPnL      decimal.Decimal `gorm:"column:total_pnl;type:numeric(30,10);not null" json:"total_pnl"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"-"`
}

func (PortfolioSnapshot) TableName() string {
	return "portfolio_snapshots"
}
