package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inventario/internal/models"
)

// GORMProductStorage keeps the product document in a key/value table.
type GORMProductStorage struct {
	db  *gorm.DB
	key string
}

// NewGORMProductStorage creates a new instance of GORMProductStorage.
func NewGORMProductStorage(db *gorm.DB, key string) *GORMProductStorage {
	if key == "" {
		key = DefaultStorageKey
	}
	return &GORMProductStorage{
		db:  db,
		key: key,
	}
}

// Load reads the product document from the database.
func (s *GORMProductStorage) Load(ctx context.Context) ([]models.Product, error) {
	var entry models.StorageEntry
	if err := s.db.WithContext(ctx).First(&entry, "storage_key = ?", s.key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.Product{}, nil
		}
		return nil, fmt.Errorf("failed to load products under key %s: %w", s.key, err)
	}
	return decodeProducts([]byte(entry.Value))
}

// Save replaces the product document in the database.
func (s *GORMProductStorage) Save(ctx context.Context, products []models.Product) error {
	data, err := encodeProducts(products)
	if err != nil {
		return err
	}
	entry := models.StorageEntry{
		Key:       s.key,
		Value:     string(data),
		UpdatedAt: time.Now(),
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry)
	if res.Error != nil {
		return fmt.Errorf("failed to save products under key %s: %w", s.key, res.Error)
	}
	return nil
}
