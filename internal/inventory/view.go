// Package inventory holds the pure derivations over a product snapshot:
// the list view, alerts, reporting, the CSV export and the starter catalog.
package inventory

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"inventario/internal/expiry"
	"inventario/internal/models"
)

// AllCategories is the category value that disables category filtering.
const AllCategories = "Todos"

// SortKey names the product field the view is ordered by.
type SortKey string

const (
	SortByName           SortKey = "name"
	SortByQuantity       SortKey = "quantity"
	SortByExpirationDate SortKey = "expirationDate"
)

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

var (
	ErrUnknownSortKey   = errors.New("unknown sort key")
	ErrUnknownDirection = errors.New("unknown sort direction")
)

// SortConfig is the active ordering of the view.
type SortConfig struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction"`
}

// DefaultSort orders by name ascending.
var DefaultSort = SortConfig{Key: SortByName, Direction: Asc}

// Toggle returns the config after the user picks key: picking the active key
// flips the direction, picking another key starts ascending.
func (c SortConfig) Toggle(key SortKey) SortConfig {
	if c.Key == key && c.Direction == Asc {
		return SortConfig{Key: key, Direction: Desc}
	}
	return SortConfig{Key: key, Direction: Asc}
}

// ParseSortKey validates a sort key coming from the presentation layer.
// An empty value selects the name key.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return SortByName, nil
	case SortByName, SortByQuantity, SortByExpirationDate:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

// ParseDirection validates a sort direction. An empty value means ascending.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(s)) {
	case "":
		return Asc, nil
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// ViewOptions carries everything the list view depends on.
type ViewOptions struct {
	SearchText     string
	ActiveCategory string
	Sort           SortConfig
	// Location is used to read expiration dates. Nil means time.Local.
	Location *time.Location
}

// Derive returns the products the user sees: sorted, then filtered by
// category, then by search text. The input slice is not modified.
func Derive(products []models.Product, opts ViewOptions) []models.Product {
	out := models.CloneAll(products)
	slices.SortStableFunc(out, comparator(opts.Sort, opts.Location))

	if opts.ActiveCategory != "" && opts.ActiveCategory != AllCategories {
		out = slices.DeleteFunc(out, func(p models.Product) bool {
			return p.Category == nil || *p.Category != opts.ActiveCategory
		})
	}
	if opts.SearchText != "" {
		needle := strings.ToLower(opts.SearchText)
		out = slices.DeleteFunc(out, func(p models.Product) bool {
			return !strings.Contains(strings.ToLower(p.Name), needle)
		})
	}
	return out
}

func comparator(cfg SortConfig, loc *time.Location) func(a, b models.Product) int {
	sign := 1
	if cfg.Direction == Desc {
		sign = -1
	}

	switch cfg.Key {
	case SortByQuantity:
		return func(a, b models.Product) int {
			return sign * cmp.Compare(a.Quantity, b.Quantity)
		}
	case SortByExpirationDate:
		return func(a, b models.Product) int {
			at, aok := parseExpiration(a.ExpirationDate, loc)
			bt, bok := parseExpiration(b.ExpirationDate, loc)
			// Missing dates go last whatever the direction.
			switch {
			case !aok && !bok:
				return 0
			case !aok:
				return 1
			case !bok:
				return -1
			}
			return sign * at.Compare(bt)
		}
	default:
		col := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
		return func(a, b models.Product) int {
			return sign * col.CompareString(a.Name, b.Name)
		}
	}
}

func parseExpiration(text *string, loc *time.Location) (time.Time, bool) {
	if text == nil {
		return time.Time{}, false
	}
	return expiry.Parse(*text, loc)
}

// Categories lists the category chips: AllCategories followed by every
// distinct category in the order it first appears.
func Categories(products []models.Product) []string {
	seen := make(map[string]struct{})
	out := []string{AllCategories}
	for _, p := range products {
		if p.Category == nil || *p.Category == "" {
			continue
		}
		if _, ok := seen[*p.Category]; ok {
			continue
		}
		seen[*p.Category] = struct{}{}
		out = append(out, *p.Category)
	}
	return out
}
