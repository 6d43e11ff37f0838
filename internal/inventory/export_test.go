package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario/internal/models"
)

func TestToCSV_Empty(t *testing.T) {
	out, err := ToCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "ID,Nome,Quantidade,Preco,Validade,Categoria,AlertaEstoqueBaixo\n", string(out))
}

func TestToCSV_Rows(t *testing.T) {
	products := []models.Product{
		{
			ID:                "p1",
			Name:              "Queijo Prato",
			Quantity:          3,
			Price:             price("12.5"),
			ExpirationDate:    strPtr("15/01/2024"),
			Category:          strPtr("Frios e Laticínios"),
			LowStockThreshold: intPtr(10),
		},
		{ID: "p2", Name: "Café Moído", Quantity: 0},
	}

	out, err := ToCSV(products)
	require.NoError(t, err)

	want := "ID,Nome,Quantidade,Preco,Validade,Categoria,AlertaEstoqueBaixo\n" +
		"p1,Queijo Prato,3,\"12,50\",15/01/2024,Frios e Laticínios,10\n" +
		"p2,Café Moído,0,,,,\n"
	assert.Equal(t, want, string(out))
}

func TestToCSV_QuotesDelimiters(t *testing.T) {
	products := []models.Product{
		{ID: "p1", Name: `Bolo "Fino", grande`, Quantity: 1, Category: strPtr("Doces, Salgados")},
	}

	out, err := ToCSV(products)
	require.NoError(t, err)
	assert.Equal(t,
		"ID,Nome,Quantidade,Preco,Validade,Categoria,AlertaEstoqueBaixo\n"+
			"p1,\"Bolo \"\"Fino\"\", grande\",1,,,\"Doces, Salgados\",\n",
		string(out))
}

func TestToCSV_KeepsCollectionOrder(t *testing.T) {
	products := []models.Product{
		{ID: "z", Name: "Zeta", Quantity: 1},
		{ID: "a", Name: "Alfa", Quantity: 2},
	}

	out, err := ToCSV(products)
	require.NoError(t, err)
	assert.Equal(t,
		"ID,Nome,Quantidade,Preco,Validade,Categoria,AlertaEstoqueBaixo\nz,Zeta,1,,,,\na,Alfa,2,,,,\n",
		string(out))
}

func TestExportFilename(t *testing.T) {
	sp := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2024, time.March, 5, 22, 30, 0, 0, sp)

	assert.Equal(t, "inventario_2024-03-06.csv", ExportFilename(now))
}
