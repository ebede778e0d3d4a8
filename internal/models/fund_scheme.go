package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundScheme is one mutual fund scheme from the AMFI daily NAV registry.
type FundScheme struct {
	SchemeCode uint64 `gorm:"primaryKey" json:"scheme_code"`
	SchemeName string `gorm:"type:text;not null;index" json:"scheme_name"`

	AMC      string `gorm:"column:amc;type:text;index" json:"amc"`
	Category string `gorm:"type:text;index" json:"category"`

	// Plan is "direct" or "regular", inferred from the scheme name at sync
	// time since the registry does not carry it as a column.
	Plan string `gorm:"type:varchar(10)" json:"plan,omitempty"`

	ISINGrowth      string `gorm:"column:isin_growth;type:varchar(20)" json:"isin_growth,omitempty"`
	ISINDivPayout   string `gorm:"column:isin_div_payout;type:varchar(20)" json:"isin_div_payout,omitempty"`
	ISINDivReinvest string `gorm:"column:isin_div_reinvest;type:varchar(20)" json:"isin_div_reinvest,omitempty"`

	NAV     decimal.Decimal `gorm:"column:nav;type:numeric(20,6);not null;default:0" json:"nav"`
	NAVDate string          `gorm:"column:nav_date;type:varchar(12)" json:"nav_date"`

	LastSeenAt time.Time `gorm:"type:timestamptz;not null" json:"last_seen_at"`
}

func (FundScheme) TableName() string {
	return "fund_schemes"
}
