package inventory

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"inventario/internal/expiry"
	"inventario/internal/models"
)

// TotalValue sums price times quantity over products. A missing price counts as zero.
func TotalValue(products []models.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		if p.Price == nil {
			continue
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return total
}

// FormatCurrency renders d in the Brazilian real convention, e.g. "R$ 1.234,56".
func FormatCurrency(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + "R$ " + groupThousands(whole) + "," + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Summary is the dashboard header of the inventory.
type Summary struct {
	Products          int             `json:"products"`
	Units             int             `json:"units"`
	TotalValue        decimal.Decimal `json:"totalValue"`
	TotalValueDisplay string          `json:"totalValueDisplay"`
	Expired           int             `json:"expired"`
	ExpiringSoon      int             `json:"expiringSoon"`
	LowStock          int             `json:"lowStock"`
}

// Summarize computes the counters shown above the product list.
func Summarize(products []models.Product, now time.Time) Summary {
	s := Summary{Products: len(products)}
	for _, p := range products {
		s.Units += p.Quantity
		switch expiry.Classify(p.ExpirationDate, now) {
		case expiry.StatusExpired:
			s.Expired++
		case expiry.StatusExpiringSoon:
			s.ExpiringSoon++
		}
		if IsLowStock(p) {
			s.LowStock++
		}
	}
	s.TotalValue = TotalValue(products)
	s.TotalValueDisplay = FormatCurrency(s.TotalValue)
	return s
}
