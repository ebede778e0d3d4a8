package models

import "time"

// SyncState records the last run of a background sync scope, e.g. the fund
// registry download.
type SyncState struct {
	Scope string `gorm:"primaryKey;type:varchar(40)" json:"scope"`

	LastRunAt time.Time `gorm:"type:timestamptz;not null" json:"last_run_at"`
	LastCount int       `gorm:"not null;default:0" json:"last_count"`
	LastError string    `gorm:"type:text" json:"last_error,omitempty"`

	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"-"`
}

func (SyncState) TableName() string {
	return "sync_states"
}
