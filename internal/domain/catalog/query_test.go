package catalog_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/simple-inventory/internal/domain/catalog"
	"github.com/jhoicas/simple-inventory/internal/domain/entity"
)

const (
	catA int64 = 1
	catB int64 = 2
)

func fixture() []*entity.Product {
	return []*entity.Product{
		{ID: 1, SKU: "AAA-111", Name: "Pro Mouse", Price: decimal.NewFromInt(20), CategoryID: catA},
		{ID: 2, SKU: "BBB-222", Name: "Basic Mouse", Price: decimal.NewFromInt(10), CategoryID: catA},
		{ID: 3, SKU: "CCC-333", Name: "Pro Keyboard", Price: decimal.NewFromInt(50), CategoryID: catB},
		{ID: 4, SKU: "DDD-444", Name: "Cable", Price: decimal.NewFromInt(5), CategoryID: catB},
	}
}

func names(items []*entity.Product) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Name)
	}
	return out
}

func opts(mut func(*entity.ProductQueryOptions)) entity.ProductQueryOptions {
	o := entity.DefaultProductQueryOptions()
	if mut != nil {
		mut(&o)
	}
	return o
}

func TestQuery_SearchIsCaseInsensitiveOverNameAndSKU(t *testing.T) {
	res := catalog.Query(fixture(), opts(func(o *entity.ProductQueryOptions) { o.Search = "  pro " }))

	assert.Equal(t, 2, res.TotalItems)
	assert.ElementsMatch(t, []string{"Pro Mouse", "Pro Keyboard"}, names(res.Items))

	res = catalog.Query(fixture(), opts(func(o *entity.ProductQueryOptions) { o.Search = "ccc" }))
	assert.Equal(t, []string{"Pro Keyboard"}, names(res.Items))
}

func TestQuery_CategoryFilterWithPriceDesc(t *testing.T) {
	b := catB
	res := catalog.Query(fixture(), opts(func(o *entity.ProductQueryOptions) {
		o.CategoryID = &b
		o.Sort = entity.SortPriceDesc
	}))

	assert.Equal(t, []string{"Pro Keyboard", "Cable"}, names(res.Items))
	assert.Equal(t, 2, res.TotalItems)
}

func TestQuery_PaginationWindow(t *testing.T) {
	res := catalog.Query(fixture(), opts(func(o *entity.ProductQueryOptions) {
		o.Page = 2
		o.PageSize = 1
	}))

	assert.Equal(t, []string{"Cable"}, names(res.Items))
	assert.Equal(t, 4, res.TotalItems)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 1, res.PageSize)
	assert.Equal(t, 4, res.TotalPages())
	assert.True(t, res.HasPrev())
	assert.True(t, res.HasNext())
}

func TestQuery_OutOfRangePageIsEmpty(t *testing.T) {
	res := catalog.Query(fixture(), opts(func(o *entity.ProductQueryOptions) { o.Page = 100 }))

	require.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, 4, res.TotalItems)
	assert.Equal(t, 100, res.Page)
	assert.False(t, res.HasNext())
}

func TestQuery_HugePageDoesNotWrapOffset(t *testing.T) {
	for _, size := range []int{4, 2, 3} {
		res := catalog.Query(fixture(), opts(func(o *entity.ProductQueryOptions) {
			o.Page = (1 << 62) + 1
			o.PageSize = size
		}))
		require.NotNil(t, res.Items, "pageSize=%d", size)
		assert.Empty(t, res.Items, "pageSize=%d", size)
		assert.Equal(t, 4, res.TotalItems)
		assert.False(t, res.HasNext())
	}
}

func TestOffset_SaturatesOnOverflow(t *testing.T) {
	o := entity.ProductQueryOptions{Page: (1 << 62) + 1, PageSize: 4}
	assert.Equal(t, math.MaxInt, o.Offset())

	o = entity.ProductQueryOptions{Page: 3, PageSize: 25}
	assert.Equal(t, 50, o.Offset())

	o = entity.ProductQueryOptions{Page: math.MaxInt, PageSize: 1}
	assert.Equal(t, math.MaxInt-1, o.Offset())
}

func TestQuery_ClampsPageAndPageSize(t *testing.T) {
	res := catalog.Query(fixture(), opts(func(o *entity.ProductQueryOptions) {
		o.Page = -3
		o.PageSize = 0
	}))

	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 1, res.PageSize)
	assert.Equal(t, []string{"Basic Mouse"}, names(res.Items))
}

func TestQuery_SortOrders(t *testing.T) {
	cases := []struct {
		sort entity.ProductSort
		want []string
	}{
		{entity.SortNameAsc, []string{"Basic Mouse", "Cable", "Pro Keyboard", "Pro Mouse"}},
		{entity.SortNameDesc, []string{"Pro Mouse", "Pro Keyboard", "Cable", "Basic Mouse"}},
		{entity.SortPriceAsc, []string{"Cable", "Basic Mouse", "Pro Mouse", "Pro Keyboard"}},
		{entity.SortPriceDesc, []string{"Pro Keyboard", "Pro Mouse", "Basic Mouse", "Cable"}},
	}
	for _, tc := range cases {
		t.Run(tc.sort.String(), func(t *testing.T) {
			res := catalog.Query(fixture(), opts(func(o *entity.ProductQueryOptions) { o.Sort = tc.sort }))
			assert.Equal(t, tc.want, names(res.Items))
		})
	}
}

func TestQuery_TieBreaks(t *testing.T) {
	products := []*entity.Product{
		{ID: 9, SKU: "ZZZ-1", Name: "Same", Price: decimal.NewFromInt(1)},
		{ID: 3, SKU: "YYY-1", Name: "Same", Price: decimal.NewFromInt(1)},
		{ID: 5, SKU: "XXX-1", Name: "Alpha", Price: decimal.RequireFromString("1.00")},
	}

	byName := catalog.Query(products, opts(nil))
	assert.Equal(t, []int64{5, 3, 9}, ids(byName.Items))

	byNameDesc := catalog.Query(products, opts(func(o *entity.ProductQueryOptions) { o.Sort = entity.SortNameDesc }))
	assert.Equal(t, []int64{3, 9, 5}, ids(byNameDesc.Items), "nombres iguales se desempatan por id ascendente")

	byPrice := catalog.Query(products, opts(func(o *entity.ProductQueryOptions) { o.Sort = entity.SortPriceDesc }))
	assert.Equal(t, []int64{5, 3, 9}, ids(byPrice.Items), "precios iguales se desempatan por nombre y luego id")
}

func TestQuery_IsIdempotent(t *testing.T) {
	o := opts(func(o *entity.ProductQueryOptions) {
		o.Page = 1
		o.PageSize = 3
		o.Sort = entity.SortPriceAsc
	})
	first := catalog.Query(fixture(), o)
	second := catalog.Query(fixture(), o)
	assert.Equal(t, ids(first.Items), ids(second.Items))
}

func ids(items []*entity.Product) []int64 {
	out := make([]int64, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func TestSortSpec_OrderBy(t *testing.T) {
	assert.Equal(t, "p.name ASC, p.id ASC", catalog.SortSpecFor(entity.SortNameAsc).OrderBy())
	assert.Equal(t, "p.name DESC, p.id ASC", catalog.SortSpecFor(entity.SortNameDesc).OrderBy())
	assert.Equal(t, "p.price ASC, p.name ASC, p.id ASC", catalog.SortSpecFor(entity.SortPriceAsc).OrderBy())
	assert.Equal(t, "p.price DESC, p.name ASC, p.id ASC", catalog.SortSpecFor(entity.SortPriceDesc).OrderBy())
	assert.Equal(t, "p.name ASC, p.id ASC", catalog.SortSpecFor(entity.ProductSort(42)).OrderBy())
}
