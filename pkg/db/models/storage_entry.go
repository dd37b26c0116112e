package models

import "time"

// StorageEntry is one slot of device-local storefront state.
type StorageEntry struct {
	Key       string    `gorm:"column:storage_key;primaryKey;size:128"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}
