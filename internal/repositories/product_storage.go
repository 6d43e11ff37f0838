package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"inventario/internal/models"
)

// DefaultStorageKey is the key the product collection is stored under.
const DefaultStorageKey = "@inventory_app:products"

// ErrCorruptDocument is returned when the stored document is not a product list.
var ErrCorruptDocument = errors.New("stored product document is corrupt")

// ProductStorage loads and saves the whole product collection as one document.
// Load returns an empty collection when nothing has been stored yet.
type ProductStorage interface {
	Load(ctx context.Context) ([]models.Product, error)
	Save(ctx context.Context, products []models.Product) error
}

func encodeProducts(products []models.Product) ([]byte, error) {
	if products == nil {
		products = []models.Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return nil, fmt.Errorf("failed to encode products: %w", err)
	}
	return data, nil
}

func decodeProducts(data []byte) ([]models.Product, error) {
	if len(data) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if products == nil {
		products = []models.Product{}
	}
	for i := range products {
		if products[i].History == nil {
			products[i].History = []models.Movement{}
		}
	}
	return products, nil
}
