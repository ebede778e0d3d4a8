package models

import "time"

// CatalogSymbol is one row of the screener universe, imported from the
// symbols CSV at startup.
type CatalogSymbol struct {
	Symbol  string `gorm:"primaryKey;type:varchar(32)" json:"symbol"`
	Name    string `gorm:"type:text" json:"name"`
	Type    string `gorm:"type:varchar(20);index" json:"type"`
	Country string `gorm:"type:varchar(40);index" json:"country"`
	Sector  string `gorm:"type:varchar(60);index" json:"sector"`

	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"-"`
}

func (CatalogSymbol) TableName() string {
	return "catalog_symbols"
}
