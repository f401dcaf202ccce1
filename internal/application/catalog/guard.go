package catalog

import (
	"context"

	"github.com/jhoicas/simple-inventory/internal/domain/repository"
)

// IntegrityGuard decide si una categoría puede borrarse.
type IntegrityGuard struct {
	categories repository.CategoryRepository
}

// NewIntegrityGuard construye el guard sobre el repositorio dado (pool o tx).
func NewIntegrityGuard(categories repository.CategoryRepository) *IntegrityGuard {
	return &IntegrityGuard{categories: categories}
}

// CanDeleteCategory es false si la categoría no existe o algún producto la referencia.
func (g *IntegrityGuard) CanDeleteCategory(ctx context.Context, id int64) (bool, error) {
	c, err := g.categories.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if c == nil {
		return false, nil
	}
	inUse, err := g.categories.IsReferenced(ctx, id)
	if err != nil {
		return false, err
	}
	return !inUse, nil
}
