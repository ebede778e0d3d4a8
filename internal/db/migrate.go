package db

import (
	"github.com/PShah260898/PRS-FinSight/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.WatchlistItem{},
		&models.Post{},
		&models.Message{},
		&models.Inquiry{},
		&models.CatalogSymbol{},
		&models.FundScheme{},
		&models.FundWatchItem{},
		&models.PortfolioSnapshot{},
		&models.SyncState{},
	)
}
