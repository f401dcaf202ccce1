package catalog

import (
	"context"

	"github.com/jhoicas/simple-inventory/internal/domain/repository"
)

// UniquenessValidator verifica nombres de categoría y SKUs contra el estado actual.
// Es una comprobación previa: el índice único del almacenamiento es la garantía final.
type UniquenessValidator struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// NewUniquenessValidator construye el validador sobre los repositorios dados (pool o tx).
func NewUniquenessValidator(categories repository.CategoryRepository, products repository.ProductRepository) *UniquenessValidator {
	return &UniquenessValidator{categories: categories, products: products}
}

// CategoryNameExists coincidencia exacta del nombre.
func (v *UniquenessValidator) CategoryNameExists(ctx context.Context, name string) (bool, error) {
	return v.categories.ExistsByName(ctx, name)
}

// SKUExists coincidencia exacta del SKU, ignorando excludingID si no es nil.
func (v *UniquenessValidator) SKUExists(ctx context.Context, sku string, excludingID *int64) (bool, error) {
	return v.products.SKUExists(ctx, sku, excludingID)
}
