package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/simple-inventory/internal/application/report"
	"github.com/jhoicas/simple-inventory/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	tests := map[string]string{
		"0":         "0,00",
		"5":         "5,00",
		"999.999":   "1.000,00",
		"25000":     "25.000,00",
		"1234567.5": "1.234.567,50",
		"-1234.25":  "-1.234,25",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateCatalogPDF(t *testing.T) {
	snap := &report.CatalogSnapshot{
		Title:       "Catálogo de productos",
		GeneratedAt: time.Date(2025, 3, 14, 9, 26, 0, 0, time.UTC),
		Filter:      "orden name_asc",
		Products: []*entity.Product{
			{ID: 1, SKU: "AAA-111", Name: "Pro Mouse", Price: decimal.NewFromInt(20), Quantity: 2, CategoryName: "A"},
			{ID: 2, SKU: "CCC-333", Name: "Pro Keyboard", Price: decimal.NewFromInt(50), Quantity: 1, CategoryName: "B"},
		},
		TotalUnits: 3,
		TotalValue: decimal.NewFromInt(90),
		Truncated:  true,
	}
	b, err := NewMarotoPDFGenerator("tests").GenerateCatalogPDF(context.Background(), snap)
	require.NoError(t, err)
	assert.True(t, len(b) > 4 && string(b[:4]) == "%PDF", "debe producir un documento PDF")
}

func TestGenerateCatalogPDF_Empty(t *testing.T) {
	b, err := NewMarotoPDFGenerator("").GenerateCatalogPDF(context.Background(), &report.CatalogSnapshot{
		Title:      "Vacío",
		TotalValue: decimal.Zero,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}
