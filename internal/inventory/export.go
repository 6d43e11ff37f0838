package inventory

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"inventario/internal/models"
)

// ExportHeader is the first row of every export.
var ExportHeader = []string{"ID", "Nome", "Quantidade", "Preco", "Validade", "Categoria", "AlertaEstoqueBaixo"}

// WriteCSV writes products to w in their stored order, one row each, after the header.
// Fields holding the delimiter, quotes or line breaks are quoted.
func WriteCSV(w io.Writer, products []models.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}
	for _, p := range products {
		if err := cw.Write(exportRow(p)); err != nil {
			return fmt.Errorf("failed to write export row for product %s: %w", p.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	return nil
}

// ToCSV is WriteCSV into memory.
func ToCSV(products []models.Product) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, products); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportRow(p models.Product) []string {
	price := ""
	if p.Price != nil {
		price = strings.Replace(p.Price.StringFixed(2), ".", ",", 1)
	}
	threshold := ""
	if p.LowStockThreshold != nil {
		threshold = strconv.Itoa(*p.LowStockThreshold)
	}
	return []string{
		p.ID,
		p.Name,
		strconv.Itoa(p.Quantity),
		price,
		deref(p.ExpirationDate),
		deref(p.Category),
		threshold,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ExportFilename names the export file after the UTC date of now.
func ExportFilename(now time.Time) string {
	return "inventario_" + now.UTC().Format("2006-01-02") + ".csv"
}
