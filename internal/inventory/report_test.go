package inventory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"inventario/internal/models"
)

func TestTotalValue(t *testing.T) {
	products := []models.Product{
		{ID: "1", Quantity: 3, Price: price("2.50")},
		{ID: "2", Quantity: 10},
		{ID: "3", Quantity: 0, Price: price("99.99")},
		{ID: "4", Quantity: 7, Price: price("0.10")},
	}

	got := TotalValue(products)
	assert.True(t, decimal.RequireFromString("8.20").Equal(got), got.String())
	assert.True(t, TotalValue(nil).IsZero())
}

func TestTotalValue_MatchesExactSum(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	catalog := GenerateCatalog(60, now, nil)
	catalog[0].Price = nil

	want := decimal.Zero
	for _, p := range catalog {
		if p.Price != nil {
			want = want.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
		}
	}

	got := TotalValue(catalog)
	assert.True(t, want.Equal(got))
	assert.False(t, got.IsNegative())
}

func TestFormatCurrency(t *testing.T) {
	cases := map[string]string{
		"0":           "R$ 0,00",
		"5.5":         "R$ 5,50",
		"999.999":     "R$ 1.000,00",
		"1234.5":      "R$ 1.234,50",
		"123456":      "R$ 123.456,00",
		"1234567.891": "R$ 1.234.567,89",
		"-1":          "-R$ 1,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatCurrency(decimal.RequireFromString(in)), in)
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	products := []models.Product{
		{ID: "1", Quantity: 4, Price: price("10"), ExpirationDate: strPtr("01/01/2024")},
		{ID: "2", Quantity: 2, Price: price("1.25"), ExpirationDate: strPtr("20/01/2024"), LowStockThreshold: intPtr(5)},
		{ID: "3", Quantity: 9, LowStockThreshold: intPtr(5)},
	}

	s := Summarize(products, now)
	assert.Equal(t, 3, s.Products)
	assert.Equal(t, 15, s.Units)
	assert.Equal(t, 1, s.Expired)
	assert.Equal(t, 1, s.ExpiringSoon)
	assert.Equal(t, 1, s.LowStock)
	assert.True(t, decimal.RequireFromString("42.5").Equal(s.TotalValue))
	assert.Equal(t, "R$ 42,50", s.TotalValueDisplay)
}
