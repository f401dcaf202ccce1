package repository

import (
	"context"

	"github.com/jhoicas/simple-inventory/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las escrituras traducen las violaciones de restricciones del almacenamiento al
// mismo *domain.ValidationError que produce la validación previa.
type ProductRepository interface {
	// Search aplica ProductQueryOptions: búsqueda, categoría, orden total y ventana de página.
	Search(ctx context.Context, opts entity.ProductQueryOptions) (entity.PagedResult[*entity.Product], error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// SKUExists compara de forma exacta; excludingID permite ignorar el propio producto.
	SKUExists(ctx context.Context, sku string, excludingID *int64) (bool, error)
	Create(ctx context.Context, product *entity.Product) error
	// Update sobrescribe los campos mutables. Devuelve false si el ID no existe.
	Update(ctx context.Context, product *entity.Product) (bool, error)
	// Delete devuelve la instantánea borrada, o nil si no existía.
	Delete(ctx context.Context, id int64) (*entity.Product, error)
}
