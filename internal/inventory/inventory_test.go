package inventory

import (
	"github.com/shopspring/decimal"

	"inventario/internal/models"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func quantities(products []models.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.Quantity
	}
	return out
}
