package inventory

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"inventario/internal/expiry"
	"inventario/internal/models"
)

// DefaultCatalogSize is how many products the starter catalog holds.
const DefaultCatalogSize = 100

var (
	catalogNouns = []string{
		"Pão", "Bolo", "Torta", "Leite", "Queijo", "Presunto", "Suco", "Refrigerante", "Manteiga",
		"Café", "Farinha", "Açúcar", "Ovos", "Croissant", "Sonho", "Biscoito", "Rosca", "Salgado",
	}
	catalogDescriptors = []string{
		"Francês", "Integral", "de Milho", "de Fubá", "de Chocolate", "de Laranja", "Holandês", "Prato",
		"Cozido", "com Sal", "Moído", "Refinado", "Caixa com 12", "Garrafa 2L", "Pote 250g", "Polvilho",
		"Doce", "Assado",
	}
	catalogCategories = []string{"Panificação", "Confeitaria", "Frios e Laticínios", "Bebidas", "Mercearia"}

	imageKeywords = map[string]string{
		"Pão": "bread", "Bolo": "cake", "Torta": "pie", "Leite": "milk", "Queijo": "cheese",
		"Presunto": "ham", "Suco": "juice", "Refrigerante": "soda", "Manteiga": "butter",
		"Café": "coffee", "Farinha": "flour", "Açúcar": "sugar", "Ovos": "eggs",
		"Croissant": "croissant", "Sonho": "doughnut", "Biscoito": "cookie", "Rosca": "bagel",
		"Salgado": "pastry",
	}
)

// GenerateCatalog builds count synthetic bakery products with expiration
// dates spread around now: about 10% expired, 20% expiring within four weeks
// and the rest two months or more ahead.
func GenerateCatalog(count int, now time.Time, rng *rand.Rand) []models.Product {
	if rng == nil {
		rng = rand.New(rand.NewSource(now.UnixNano()))
	}

	products := make([]models.Product, 0, count)
	for i := 0; i < count; i++ {
		noun := catalogNouns[rng.Intn(len(catalogNouns))]
		descriptor := catalogDescriptors[rng.Intn(len(catalogDescriptors))]

		keyword, ok := imageKeywords[noun]
		if !ok {
			keyword = "bakery"
		}
		imageURI := fmt.Sprintf("https://picsum.photos/seed/%s%d/200", keyword, i)

		var expiresAt time.Time
		switch roll := rng.Float64(); {
		case roll < 0.1:
			expiresAt = now.AddDate(0, 0, -rng.Intn(30))
		case roll < 0.3:
			expiresAt = now.AddDate(0, 0, rng.Intn(28)+1)
		default:
			expiresAt = expiry.AddMonths(now, rng.Intn(12)+2)
		}
		expirationDate := expiry.Format(expiresAt)

		price := decimal.NewFromFloat(rng.Float64()*50 + 1.5).Round(2)
		category := catalogCategories[rng.Intn(len(catalogCategories))]

		var threshold *int
		if rng.Float64() > 0.7 {
			v := 10
			threshold = &v
		}

		products = append(products, models.Product{
			ID:                fmt.Sprintf("mock-%d", i+1),
			Name:              noun + " " + descriptor,
			Quantity:          rng.Intn(200) + 1,
			Price:             &price,
			ExpirationDate:    &expirationDate,
			ImageURI:          &imageURI,
			Category:          &category,
			LowStockThreshold: threshold,
			History:           []models.Movement{},
		})
	}
	return products
}
