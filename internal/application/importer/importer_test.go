package importer_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/simple-inventory/internal/application/catalog"
	"github.com/jhoicas/simple-inventory/internal/application/importer"
	"github.com/jhoicas/simple-inventory/internal/domain"
	"github.com/jhoicas/simple-inventory/internal/domain/entity"
	"github.com/jhoicas/simple-inventory/internal/infrastructure/memory"
)

const sample = `sku;name;price;quantity;category
LAP-001;Laptop Pro;1299,90;5;Electronics
MOU-002;Mouse;19.99;40;Electronics
CHA-003;Silla;abc;2;Muebles
X;Muy corto;1;1;Muebles
DES-004;Escritorio;250;3;Muebles
`

func TestParse_HeaderAndInvalidRows(t *testing.T) {
	rows, invalid, err := importer.Parse(strings.NewReader(sample))
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, "LAP-001", rows[0].SKU)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "1299.9", rows[0].Price.String())
	assert.Equal(t, "Muebles", rows[3].Category)

	require.Len(t, invalid, 1)
	assert.Equal(t, 4, invalid[0].Line)
	assert.Contains(t, invalid[0].Error(), "precio inválido")
}

func TestParse_WrongColumnCount(t *testing.T) {
	rows, invalid, err := importer.Parse(strings.NewReader("A1B;solo dos\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
	require.Len(t, invalid, 1)
	assert.Equal(t, 1, invalid[0].Line)
}

func TestDecodeReader_Latin1(t *testing.T) {
	raw := []byte("CAF-001;Caf\xe9 molido;12;1;Alimentaci\xf3n\n")
	r, err := importer.DecodeReader(bytes.NewReader(raw), "ISO-8859-1")
	require.NoError(t, err)

	rows, _, err := importer.Parse(r)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Café molido", rows[0].Name)
	assert.Equal(t, "Alimentación", rows[0].Category)

	_, err = importer.DecodeReader(bytes.NewReader(raw), "ebcdic")
	assert.Error(t, err)
}

func TestImport_CreatesCategoriesAndSkipsInvalid(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	gw := catalog.NewGateway(store.Categories(), store.Products(), store)
	_, err := gw.CreateCategory(ctx, &entity.Category{Name: "Electronics"})
	require.NoError(t, err)

	rows, _, err := importer.Parse(strings.NewReader(sample + "MOU-002;Mouse repetido;5;1;Electronics\n"))
	require.NoError(t, err)

	sum, err := importer.New(gw, nil).Import(ctx, rows)
	require.NoError(t, err)

	assert.Equal(t, 5, sum.Rows)
	assert.Equal(t, 3, sum.Created)
	assert.Equal(t, 1, sum.CategoriesCreated)
	require.Len(t, sum.Skipped, 2)
	assert.Equal(t, 5, sum.Skipped[0].Line)
	assert.ErrorIs(t, sum.Skipped[0].Err, domain.ErrInvalidInput)
	assert.ErrorIs(t, sum.Skipped[1].Err, domain.ErrDuplicate)

	cats, err := gw.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 2)

	res, err := gw.GetProducts(ctx, entity.DefaultProductQueryOptions())
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalItems)
}

type failingWriter struct{ importer.CatalogWriter }

func (failingWriter) ListCategories(context.Context) ([]*entity.Category, error) {
	return nil, errors.New("sin conexión")
}

func TestImport_StopsOnStorageError(t *testing.T) {
	_, err := importer.New(failingWriter{}, nil).Import(context.Background(), []importer.Row{{Line: 1}})
	assert.ErrorContains(t, err, "sin conexión")
}
