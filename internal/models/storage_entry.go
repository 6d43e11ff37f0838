package models

import "time"

// StorageEntry is one serialized document stored under a key.
type StorageEntry struct {
	Key       string `gorm:"column:storage_key;primaryKey;type:varchar(255)"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
