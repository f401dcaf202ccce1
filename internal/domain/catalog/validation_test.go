package catalog_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/simple-inventory/internal/domain"
	"github.com/jhoicas/simple-inventory/internal/domain/catalog"
	"github.com/jhoicas/simple-inventory/internal/domain/entity"
)

func validProduct() *entity.Product {
	return &entity.Product{SKU: "ABC123", Name: "Mouse", Price: decimal.NewFromInt(10), Quantity: 1, CategoryID: 1}
}

func TestValidateProduct_Valid(t *testing.T) {
	assert.NoError(t, catalog.ValidateProduct(validProduct()))

	p := validProduct()
	p.SKU = "abc"
	p.Price = decimal.Zero
	p.Quantity = 0
	assert.NoError(t, catalog.ValidateProduct(p), "los límites inferiores son válidos")

	p.SKU = strings.Repeat("x", catalog.MaxSKULength)
	assert.NoError(t, catalog.ValidateProduct(p))
}

func TestValidateProduct_FieldErrors(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*entity.Product)
		field string
	}{
		{"sku corto", func(p *entity.Product) { p.SKU = "AB" }, "sku"},
		{"sku largo", func(p *entity.Product) { p.SKU = strings.Repeat("x", 33) }, "sku"},
		{"sku en blanco", func(p *entity.Product) { p.SKU = "    " }, "sku"},
		{"nombre vacío", func(p *entity.Product) { p.Name = " " }, "name"},
		{"precio negativo", func(p *entity.Product) { p.Price = decimal.RequireFromString("-0.01") }, "price"},
		{"cantidad negativa", func(p *entity.Product) { p.Quantity = -1 }, "quantity"},
		{"sin categoría", func(p *entity.Product) { p.CategoryID = 0 }, "category_id"},
		{"precio demasiado grande", func(p *entity.Product) { p.Price = decimal.New(1, 16) }, "price"},
		{"precio con 3 decimales", func(p *entity.Product) { p.Price = decimal.RequireFromString("1.005") }, "price"},
		{"cantidad mayor que int32", func(p *entity.Product) { p.Quantity = catalog.MaxQuantity + 1 }, "quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validProduct()
			tc.mut(p)
			err := catalog.ValidateProduct(p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			assert.False(t, errors.Is(err, domain.ErrDuplicate))

			verr, ok := domain.AsValidation(err)
			require.True(t, ok)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tc.field, verr.Fields[0].Field)
		})
	}
}

func TestValidateProduct_CollectsAllFields(t *testing.T) {
	err := catalog.ValidateProduct(&entity.Product{SKU: "x", Price: decimal.NewFromInt(-1), Quantity: -1})
	verr, ok := domain.AsValidation(err)
	require.True(t, ok)

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"sku", "name", "price", "quantity", "category_id"}, fields)
}

func TestValidateProduct_ColumnLimits(t *testing.T) {
	p := validProduct()
	p.Price = decimal.RequireFromString("9999999999999999.99")
	p.Quantity = catalog.MaxQuantity
	assert.NoError(t, catalog.ValidateProduct(p), "máximos representables")

	p.Price = decimal.RequireFromString("1.500")
	assert.NoError(t, catalog.ValidateProduct(p), "ceros a la derecha no cuentan como decimales")

	p.Price = decimal.RequireFromString("0.001")
	verr, ok := domain.AsValidation(catalog.ValidateProduct(p))
	require.True(t, ok)
	assert.Equal(t, domain.CodeScale, verr.Fields[0].Code)

	p.Price = decimal.RequireFromString("12345678901234567")
	verr, ok = domain.AsValidation(catalog.ValidateProduct(p))
	require.True(t, ok)
	assert.Equal(t, domain.CodeMax, verr.Fields[0].Code)
}

func TestValidateProduct_SKULengthCountsRunes(t *testing.T) {
	p := validProduct()
	p.SKU = "ñañ"
	assert.NoError(t, catalog.ValidateProduct(p))
}

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, catalog.ValidateCategory(&entity.Category{Name: "Electrónica"}))

	err := catalog.ValidateCategory(&entity.Category{Name: "  "})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDuplicateErrorsMatchBothSentinels(t *testing.T) {
	err := error(domain.DuplicateSKU())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
