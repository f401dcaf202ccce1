package repository

import (
	"context"

	"github.com/jhoicas/simple-inventory/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Las búsquedas por ID devuelven (nil, nil) si no existe el registro.
type CategoryRepository interface {
	// List devuelve todas las categorías ordenadas por nombre ascendente.
	List(ctx context.Context) ([]*entity.Category, error)
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	// Create inserta y asigna el ID. Un nombre repetido devuelve domain.DuplicateCategoryName().
	Create(ctx context.Context, category *entity.Category) error
	// Delete devuelve false si no existía. Si aún hay productos que la referencian devuelve domain.ErrConflict.
	Delete(ctx context.Context, id int64) (bool, error)
	// IsReferenced indica si algún producto apunta a la categoría.
	IsReferenced(ctx context.Context, id int64) (bool, error)
}
