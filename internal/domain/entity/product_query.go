package entity

import (
	"math"
	"strings"
)

// ProductSort orden total aplicado al listado de productos.
type ProductSort int

const (
	SortNameAsc ProductSort = iota
	SortNameDesc
	SortPriceAsc
	SortPriceDesc
)

// DefaultPageSize tamaño de página cuando el llamador no indica uno.
const DefaultPageSize = 10

var sortNames = map[ProductSort]string{
	SortNameAsc:   "name_asc",
	SortNameDesc:  "name_desc",
	SortPriceAsc:  "price_asc",
	SortPriceDesc: "price_desc",
}

func (s ProductSort) String() string {
	if n, ok := sortNames[s]; ok {
		return n
	}
	return sortNames[SortNameAsc]
}

// ParseProductSort acepta "name_asc", "NameAsc", "price-desc", etc. Valores desconocidos devuelven SortNameAsc.
func ParseProductSort(s string) ProductSort {
	key := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(s))
	switch key {
	case "namedesc":
		return SortNameDesc
	case "priceasc":
		return SortPriceAsc
	case "pricedesc":
		return SortPriceDesc
	default:
		return SortNameAsc
	}
}

// ProductQueryOptions filtros, orden y paginación del listado de productos.
type ProductQueryOptions struct {
	Search     string // subcadena en name o sku, sin distinguir mayúsculas
	CategoryID *int64
	Sort       ProductSort
	Page       int // base 1
	PageSize   int
}

// DefaultProductQueryOptions página 1 de DefaultPageSize, orden por nombre.
func DefaultProductQueryOptions() ProductQueryOptions {
	return ProductQueryOptions{Sort: SortNameAsc, Page: 1, PageSize: DefaultPageSize}
}

// Normalize recorta la búsqueda y lleva Page y PageSize a un mínimo de 1.
func (o ProductQueryOptions) Normalize() ProductQueryOptions {
	o.Search = strings.TrimSpace(o.Search)
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PageSize < 1 {
		o.PageSize = 1
	}
	if _, ok := sortNames[o.Sort]; !ok {
		o.Sort = SortNameAsc
	}
	return o
}

// Offset posición del primer elemento de la página. Asume opciones normalizadas.
// Si (Page-1)*PageSize no cabe en un int devuelve math.MaxInt: la página queda fuera de rango.
func (o ProductQueryOptions) Offset() int {
	if o.Page < 1 || o.PageSize < 1 {
		return 0
	}
	if o.Page-1 > math.MaxInt/o.PageSize {
		return math.MaxInt
	}
	return (o.Page - 1) * o.PageSize
}

// PagedResult ventana de un resultado ordenado junto con el total previo a paginar.
type PagedResult[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int
}

// TotalPages ceil(TotalItems / PageSize).
func (r PagedResult[T]) TotalPages() int {
	if r.PageSize < 1 {
		return 0
	}
	return (r.TotalItems + r.PageSize - 1) / r.PageSize
}

func (r PagedResult[T]) HasPrev() bool { return r.Page > 1 }

func (r PagedResult[T]) HasNext() bool { return r.Page < r.TotalPages() }
