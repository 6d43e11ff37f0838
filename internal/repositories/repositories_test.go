package repositories_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inventario/internal/models"
	"inventario/internal/repositories"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StorageEntry{}, &models.Operator{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func sampleProducts() []models.Product {
	p := decimal.RequireFromString("4.90")
	date := "20/05/2025"
	category := "Bebidas"
	threshold := 10
	return []models.Product{
		{
			ID:                "a1",
			Name:              "Suco de Laranja",
			Quantity:          12,
			Price:             &p,
			ExpirationDate:    &date,
			Category:          &category,
			LowStockThreshold: &threshold,
			History:           []models.Movement{},
		},
		{ID: "a2", Name: "Pão Francês", Quantity: 40, History: []models.Movement{}},
	}
}

func TestGORMProductStorage_LoadEmpty(t *testing.T) {
	storage := repositories.NewGORMProductStorage(setupDB(t), "")

	products, err := storage.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestGORMProductStorage_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	storage := repositories.NewGORMProductStorage(db, repositories.DefaultStorageKey)

	require.NoError(t, storage.Save(ctx, sampleProducts()))
	loaded, err := storage.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Suco de Laranja", loaded[0].Name)
	assert.True(t, loaded[0].Price.Equal(decimal.RequireFromString("4.9")))
	assert.Equal(t, "20/05/2025", *loaded[0].ExpirationDate)
	assert.Nil(t, loaded[1].Price)
	assert.Nil(t, loaded[1].Category)

	// A second save replaces the document instead of adding a row.
	require.NoError(t, storage.Save(ctx, sampleProducts()[:1]))
	loaded, err = storage.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)

	var rows int64
	db.Model(&models.StorageEntry{}).Count(&rows)
	assert.Equal(t, int64(1), rows)
}

func TestGORMProductStorage_KeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	first := repositories.NewGORMProductStorage(db, "first")
	second := repositories.NewGORMProductStorage(db, "second")

	require.NoError(t, first.Save(ctx, sampleProducts()))
	products, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestGORMProductStorage_CorruptDocument(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.StorageEntry{Key: repositories.DefaultStorageKey, Value: "{not json"}).Error)
	storage := repositories.NewGORMProductStorage(db, "")

	_, err := storage.Load(context.Background())
	assert.ErrorIs(t, err, repositories.ErrCorruptDocument)
}

func TestGORMProductStorage_ReadsLegacyNumericPrice(t *testing.T) {
	db := setupDB(t)
	legacy := `[{"id":"1700000000000","name":"Bolo de Fubá","quantity":3,"price":12.5,"expirationDate":"01/02/2025"}]`
	require.NoError(t, db.Create(&models.StorageEntry{Key: repositories.DefaultStorageKey, Value: legacy}).Error)
	storage := repositories.NewGORMProductStorage(db, "")

	products, err := storage.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("12.5")))
	assert.NotNil(t, products[0].History)
}

func TestMemoryProductStorage(t *testing.T) {
	ctx := context.Background()
	storage := repositories.NewMemoryProductStorage()

	products, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	require.NoError(t, storage.Save(ctx, nil))
	assert.Equal(t, "[]", string(storage.Bytes()))

	require.NoError(t, storage.Save(ctx, sampleProducts()))
	products, err = storage.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleProducts()[1], products[1])
	assert.Contains(t, string(storage.Bytes()), `"lowStockThreshold":10`)
	assert.Contains(t, string(storage.Bytes()), `"expirationDate":"20/05/2025"`)
}

func TestProductDocument_PriceIsANumber(t *testing.T) {
	ctx := context.Background()
	storage := repositories.NewMemoryProductStorage()

	require.NoError(t, storage.Save(ctx, sampleProducts()))
	assert.Contains(t, string(storage.Bytes()), `"price":4.9,`)
	assert.NotContains(t, string(storage.Bytes()), `"price":"`)

	products, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("4.90")))
}

func TestMemoryProductStorage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	storage := repositories.NewMemoryProductStorage()

	assert.ErrorIs(t, storage.Save(ctx, sampleProducts()), context.Canceled)
	_, err := storage.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGORMOperatorRepository(t *testing.T) {
	repo := repositories.NewGORMOperatorRepository(setupDB(t))

	operator := &models.Operator{Username: "gerente", Email: "gerente@example.com", Password: "hash"}
	require.NoError(t, repo.Create(operator))
	assert.NotEmpty(t, operator.ID)

	byName, err := repo.GetByUsername("gerente")
	require.NoError(t, err)
	assert.Equal(t, operator.ID, byName.ID)

	byEmail, err := repo.GetByEmail("gerente@example.com")
	require.NoError(t, err)
	assert.Equal(t, operator.ID, byEmail.ID)

	byID, err := repo.GetByID(operator.ID)
	require.NoError(t, err)
	assert.Equal(t, "gerente", byID.Username)

	_, err = repo.GetByUsername("ninguem")
	assert.ErrorIs(t, err, repositories.ErrOperatorNotFound)

	// Usernames are unique.
	err = repo.Create(&models.Operator{Username: "gerente", Email: "other@example.com", Password: "hash"})
	assert.Error(t, err)
}
