package inventory

import (
	"time"

	"inventario/internal/expiry"
	"inventario/internal/models"
)

// ExpiringSoon returns the products that expire between today and one month from now.
func ExpiringSoon(products []models.Product, now time.Time) []models.Product {
	return byStatus(products, now, expiry.StatusExpiringSoon)
}

// Expired returns the products whose expiration date is before today.
func Expired(products []models.Product, now time.Time) []models.Product {
	return byStatus(products, now, expiry.StatusExpired)
}

func byStatus(products []models.Product, now time.Time, status expiry.Status) []models.Product {
	out := []models.Product{}
	for _, p := range products {
		if expiry.Classify(p.ExpirationDate, now) == status {
			out = append(out, p.Clone())
		}
	}
	return out
}

// IsLowStock reports whether p has a threshold and is at or below it.
func IsLowStock(p models.Product) bool {
	return p.LowStockThreshold != nil && p.Quantity <= *p.LowStockThreshold
}

// LowStock returns the shopping list: every product at or below its threshold.
func LowStock(products []models.Product) []models.Product {
	out := []models.Product{}
	for _, p := range products {
		if IsLowStock(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}
