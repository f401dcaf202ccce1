package catalog

import (
	"cmp"
	"strings"

	"github.com/jhoicas/simple-inventory/internal/domain/entity"
)

// sortKey extrae y compara una clave de orden; column es su expresión SQL.
type sortKey struct {
	column  string
	compare func(a, b *entity.Product) int
}

var (
	byID    = sortKey{column: "p.id", compare: func(a, b *entity.Product) int { return cmp.Compare(a.ID, b.ID) }}
	byName  = sortKey{column: "p.name", compare: func(a, b *entity.Product) int { return strings.Compare(a.Name, b.Name) }}
	byPrice = sortKey{column: "p.price", compare: func(a, b *entity.Product) int { return a.Price.Cmp(b.Price) }}
)

// SortSpec clave primaria con dirección y desempate ascendente.
// El id cierra siempre el orden para que sea total.
type SortSpec struct {
	primary  sortKey
	desc     bool
	tieBreak sortKey
}

var sortTable = map[entity.ProductSort]SortSpec{
	entity.SortNameAsc:   {primary: byName, tieBreak: byID},
	entity.SortNameDesc:  {primary: byName, desc: true, tieBreak: byID},
	entity.SortPriceAsc:  {primary: byPrice, tieBreak: byName},
	entity.SortPriceDesc: {primary: byPrice, desc: true, tieBreak: byName},
}

// SortSpecFor devuelve la especificación de orden; valores fuera de la enumeración usan SortNameAsc.
func SortSpecFor(s entity.ProductSort) SortSpec {
	if spec, ok := sortTable[s]; ok {
		return spec
	}
	return sortTable[entity.SortNameAsc]
}

// Compare ordena dos productos según la especificación.
func (s SortSpec) Compare(a, b *entity.Product) int {
	c := s.primary.compare(a, b)
	if s.desc {
		c = -c
	}
	if c != 0 {
		return c
	}
	if c = s.tieBreak.compare(a, b); c != 0 || s.tieBreak.column == byID.column {
		return c
	}
	return byID.compare(a, b)
}

// OrderBy cláusula ORDER BY equivalente (sin la palabra clave).
func (s SortSpec) OrderBy() string {
	dir := " ASC"
	if s.desc {
		dir = " DESC"
	}
	order := s.primary.column + dir + ", " + s.tieBreak.column + " ASC"
	if s.tieBreak.column != byID.column {
		order += ", " + byID.column + " ASC"
	}
	return order
}
