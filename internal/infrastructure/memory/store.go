// Package memory implementa los puertos de persistencia del catálogo en memoria.
// Aplica las mismas restricciones que el esquema PostgreSQL: nombre de categoría
// y SKU únicos, FK de producto a categoría con borrado restringido.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/jhoicas/simple-inventory/internal/application/catalog"
	"github.com/jhoicas/simple-inventory/internal/domain/entity"
	"github.com/jhoicas/simple-inventory/internal/domain/repository"
)

var _ catalog.TxRunner = (*Store)(nil)

// Store estado compartido del almacenamiento. Seguro para uso concurrente.
type Store struct {
	mu             sync.RWMutex
	categories     map[int64]entity.Category
	products       map[int64]entity.Product
	nextCategoryID int64
	nextProductID  int64
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		categories: make(map[int64]entity.Category),
		products:   make(map[int64]entity.Product),
	}
}

// Categories repositorio de categorías con bloqueo por operación.
func (s *Store) Categories() *CategoryRepo {
	return &CategoryRepo{s: s}
}

// Products repositorio de productos con bloqueo por operación.
func (s *Store) Products() *ProductRepo {
	return &ProductRepo{s: s}
}

// Run ejecuta fn con el almacenamiento bloqueado en escritura, de modo que
// comprobación y mutación son atómicas. Si fn falla se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapCategories := maps.Clone(s.categories)
	snapProducts := maps.Clone(s.products)
	snapCatID, snapProdID := s.nextCategoryID, s.nextProductID

	if err := fn(&CategoryRepo{s: s, locked: true}, &ProductRepo{s: s, locked: true}); err != nil {
		s.categories, s.products = snapCategories, snapProducts
		s.nextCategoryID, s.nextProductID = snapCatID, snapProdID
		return err
	}
	return nil
}

// read y write toman el candado salvo dentro de Run, que ya lo tiene.
func (s *Store) read(locked bool, fn func()) {
	if !locked {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) write(locked bool, fn func()) {
	if !locked {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn()
}
