package report_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/simple-inventory/internal/application/catalog"
	"github.com/jhoicas/simple-inventory/internal/application/report"
	"github.com/jhoicas/simple-inventory/internal/domain/entity"
	"github.com/jhoicas/simple-inventory/internal/infrastructure/memory"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

type captureGenerator struct {
	got *report.CatalogSnapshot
}

func (g *captureGenerator) GenerateCatalogPDF(_ context.Context, s *report.CatalogSnapshot) ([]byte, error) {
	g.got = s
	return []byte("%PDF"), nil
}

func (g *captureGenerator) ExportCatalogXML(_ context.Context, s *report.CatalogSnapshot) ([]byte, error) {
	g.got = s
	return []byte("<catalog/>"), nil
}

func seededGateway(t *testing.T, n int) (*catalog.Gateway, *entity.Category) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	gw := catalog.NewGateway(s.Categories(), s.Products(), s)
	cat, err := gw.CreateCategory(ctx, &entity.Category{Name: "Repuestos"})
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		_, err := gw.CreateProduct(ctx, &entity.Product{
			SKU:        fmt.Sprintf("REP-%04d", i),
			Name:       fmt.Sprintf("Repuesto %04d", i),
			Price:      decimal.NewFromInt(2),
			Quantity:   3,
			CategoryID: cat.ID,
		})
		require.NoError(t, err)
	}
	return gw, cat
}

func TestSnapshot_ReadsWholeFilteredCatalog(t *testing.T) {
	gw, cat := seededGateway(t, 250)
	gen := &captureGenerator{}
	uc := report.NewUseCase(gw, gen, gen, report.WithClock(func() time.Time { return fixedNow }))

	b, name, err := uc.CatalogPDF(context.Background(), entity.ProductQueryOptions{CategoryID: &cat.ID, Sort: entity.SortNameDesc, Page: 7, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), b)
	assert.Equal(t, "catalogo-20250314-092653.pdf", name)

	require.NotNil(t, gen.got)
	require.Len(t, gen.got.Products, 250)
	assert.Equal(t, "Repuesto 0249", gen.got.Products[0].Name)
	assert.Equal(t, "Repuesto 0000", gen.got.Products[249].Name)
	assert.Equal(t, 750, gen.got.TotalUnits)
	assert.True(t, gen.got.TotalValue.Equal(decimal.NewFromInt(1500)))
	assert.False(t, gen.got.Truncated)
	assert.Contains(t, gen.got.Filter, "name_desc")
}

func TestSnapshot_AppliesSearch(t *testing.T) {
	gw, _ := seededGateway(t, 30)
	gen := &captureGenerator{}
	uc := report.NewUseCase(gw, gen, gen)

	_, name, err := uc.CatalogXML(context.Background(), entity.ProductQueryOptions{Search: "rep-001"})
	require.NoError(t, err)
	assert.Contains(t, name, ".xml")
	assert.Len(t, gen.got.Products, 10)
	assert.Contains(t, gen.got.Filter, `búsqueda "rep-001"`)
}

type failingSource struct{}

func (failingSource) GetProducts(context.Context, entity.ProductQueryOptions) (entity.PagedResult[*entity.Product], error) {
	return entity.PagedResult[*entity.Product]{}, errors.New("sin conexión")
}

func TestSnapshot_PropagatesSourceErrors(t *testing.T) {
	gen := &captureGenerator{}
	_, _, err := report.NewUseCase(failingSource{}, gen, gen).CatalogPDF(context.Background(), entity.DefaultProductQueryOptions())
	assert.ErrorContains(t, err, "sin conexión")
	assert.Nil(t, gen.got)
}

type countingSource struct {
	report.ProductSource
	calls int
	sizes []int
}

func (c *countingSource) GetProducts(ctx context.Context, opts entity.ProductQueryOptions) (entity.PagedResult[*entity.Product], error) {
	c.calls++
	c.sizes = append(c.sizes, opts.PageSize)
	return c.ProductSource.GetProducts(ctx, opts)
}

func TestSnapshot_SingleRead(t *testing.T) {
	gw, _ := seededGateway(t, 250)
	src := &countingSource{ProductSource: gw}
	gen := &captureGenerator{}

	_, _, err := report.NewUseCase(src, gen, gen).CatalogXML(context.Background(), entity.DefaultProductQueryOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls, "una sola lectura")
	assert.Equal(t, []int{report.MaxRows + 1}, src.sizes)
	assert.Len(t, gen.got.Products, 250)
}

type oversizedSource struct{}

func (oversizedSource) GetProducts(_ context.Context, opts entity.ProductQueryOptions) (entity.PagedResult[*entity.Product], error) {
	items := make([]*entity.Product, opts.PageSize)
	for i := range items {
		items[i] = &entity.Product{ID: int64(i + 1), Price: decimal.NewFromInt(1), Quantity: 1}
	}
	return entity.PagedResult[*entity.Product]{Items: items, Page: 1, PageSize: opts.PageSize, TotalItems: report.MaxRows + 10}, nil
}

func TestSnapshot_TruncatesAtMaxRows(t *testing.T) {
	gen := &captureGenerator{}
	_, _, err := report.NewUseCase(oversizedSource{}, gen, gen).CatalogPDF(context.Background(), entity.DefaultProductQueryOptions())
	require.NoError(t, err)
	assert.True(t, gen.got.Truncated)
	assert.Len(t, gen.got.Products, report.MaxRows)
	assert.Equal(t, report.MaxRows, gen.got.TotalUnits)
}
