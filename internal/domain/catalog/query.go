package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/simple-inventory/internal/domain/entity"
)

// Query aplica búsqueda, filtro por categoría, orden y paginación sobre un conjunto en memoria.
// No modifica products. TotalItems es el conteo filtrado antes de paginar.
func Query(products []*entity.Product, opts entity.ProductQueryOptions) entity.PagedResult[*entity.Product] {
	opts = opts.Normalize()
	match := searchMatcher(opts.Search)

	filtered := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if opts.CategoryID != nil && p.CategoryID != *opts.CategoryID {
			continue
		}
		if !match(p) {
			continue
		}
		filtered = append(filtered, p)
	}

	spec := SortSpecFor(opts.Sort)
	slices.SortStableFunc(filtered, spec.Compare)

	return entity.PagedResult[*entity.Product]{
		Items:      window(filtered, opts.Offset(), opts.PageSize),
		Page:       opts.Page,
		PageSize:   opts.PageSize,
		TotalItems: len(filtered),
	}
}

// searchMatcher compara con plegado de mayúsculas Unicode. Un Caser no es seguro
// entre goroutines, así que se crea uno por consulta.
func searchMatcher(search string) func(*entity.Product) bool {
	if search == "" {
		return func(*entity.Product) bool { return true }
	}
	fold := cases.Fold()
	needle := fold.String(search)
	return func(p *entity.Product) bool {
		return strings.Contains(fold.String(p.Name), needle) || strings.Contains(fold.String(p.SKU), needle)
	}
}

func window(items []*entity.Product, offset, size int) []*entity.Product {
	if offset < 0 || offset >= len(items) {
		return []*entity.Product{}
	}
	end := offset + size
	if end > len(items) || end < offset {
		end = len(items)
	}
	return items[offset:end]
}
