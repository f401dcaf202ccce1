// Package catalog implementa la pasarela de persistencia del catálogo: el único
// punto que lee y escribe categorías y productos, aplicando validación de campos,
// unicidad e integridad referencial antes de cada mutación.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/simple-inventory/internal/domain"
	domcatalog "github.com/jhoicas/simple-inventory/internal/domain/catalog"
	"github.com/jhoicas/simple-inventory/internal/domain/entity"
	"github.com/jhoicas/simple-inventory/internal/domain/repository"
	"github.com/jhoicas/simple-inventory/pkg/logger"
)

// Gateway operaciones del catálogo. No guarda estado entre llamadas; es seguro
// para uso concurrente si los repositorios lo son.
type Gateway struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	tx         TxRunner
	validator  *UniquenessValidator
	log        *logger.Logger
	now        func() time.Time
}

// Option configura el Gateway.
type Option func(*Gateway)

// WithClock reemplaza el reloj usado para UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// WithLogger asigna el logger.
func WithLogger(log *logger.Logger) Option {
	return func(g *Gateway) { g.log = log }
}

// NewGateway construye la pasarela sobre repositorios atados al pool y un TxRunner.
func NewGateway(categories repository.CategoryRepository, products repository.ProductRepository, tx TxRunner, opts ...Option) *Gateway {
	g := &Gateway{
		categories: categories,
		products:   products,
		tx:         tx,
		validator:  NewUniquenessValidator(categories, products),
		log:        logger.Nop(),
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// ListCategories devuelve las categorías ordenadas por nombre.
func (g *Gateway) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return g.categories.List(ctx)
}

// GetCategoryByID devuelve (nil, nil) si no existe.
func (g *Gateway) GetCategoryByID(ctx context.Context, id int64) (*entity.Category, error) {
	return g.categories.GetByID(ctx, id)
}

// CategoryExists indica si ya hay una categoría con el mismo nombre.
func (g *Gateway) CategoryExists(ctx context.Context, category *entity.Category) (bool, error) {
	return g.validator.CategoryNameExists(ctx, category.Name)
}

// CreateCategory valida el nombre y su unicidad, inserta y devuelve la categoría con ID.
func (g *Gateway) CreateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	if err := domcatalog.ValidateCategory(category); err != nil {
		return nil, err
	}
	exists, err := g.validator.CategoryNameExists(ctx, category.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.DuplicateCategoryName()
	}
	created := &entity.Category{Name: category.Name}
	if err := g.categories.Create(ctx, created); err != nil {
		g.logRace(err, "category", category.Name)
		return nil, err
	}
	return created, nil
}

// DeleteCategory borra la categoría si el guard lo permite. Devuelve false, sin error,
// si no existe o aún está en uso. Comprobación y borrado van en una misma transacción;
// la FK con RESTRICT cubre cualquier inserción concurrente que se cuele.
func (g *Gateway) DeleteCategory(ctx context.Context, category *entity.Category) (bool, error) {
	var deleted bool
	err := g.tx.Run(ctx, func(categories repository.CategoryRepository, _ repository.ProductRepository) error {
		ok, err := NewIntegrityGuard(categories).CanDeleteCategory(ctx, category.ID)
		if err != nil || !ok {
			return err
		}
		deleted, err = categories.Delete(ctx, category.ID)
		return err
	})
	if errors.Is(err, domain.ErrConflict) {
		g.log.Debug().Int64("category_id", category.ID).Msg("borrado de categoría bloqueado por la FK")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	if !deleted {
		g.log.Debug().Int64("category_id", category.ID).Msg("categoría inexistente o en uso")
	}
	return deleted, nil
}

// GetProducts delega en el motor de consulta del repositorio.
func (g *Gateway) GetProducts(ctx context.Context, opts entity.ProductQueryOptions) (entity.PagedResult[*entity.Product], error) {
	return g.products.Search(ctx, opts.Normalize())
}

// GetProductByID devuelve (nil, nil) si no existe.
func (g *Gateway) GetProductByID(ctx context.Context, id int64) (*entity.Product, error) {
	return g.products.GetByID(ctx, id)
}

// SKUExists expuesto para que los adaptadores puedan avisar del conflicto antes de enviar.
func (g *Gateway) SKUExists(ctx context.Context, sku string, excludingID *int64) (bool, error) {
	return g.validator.SKUExists(ctx, sku, excludingID)
}

// CreateProduct valida campos, unicidad del SKU y existencia de la categoría antes de escribir.
func (g *Gateway) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	category, err := g.checkProduct(ctx, product, nil)
	if err != nil {
		return nil, err
	}
	created := &entity.Product{
		SKU:          product.SKU,
		Name:         product.Name,
		Price:        product.Price,
		Quantity:     product.Quantity,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		UpdatedAt:    g.now(),
	}
	if err := g.products.Create(ctx, created); err != nil {
		g.logRace(err, "product", product.SKU)
		return nil, err
	}
	return created, nil
}

// UpdateProduct sobrescribe los campos mutables del producto product.ID.
// Devuelve (nil, nil) si no existe. El SKU se compara excluyendo el propio ID.
func (g *Gateway) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	existing, err := g.products.GetByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	category, err := g.checkProduct(ctx, product, &existing.ID)
	if err != nil {
		return nil, err
	}
	existing.SKU = product.SKU
	existing.Name = product.Name
	existing.Price = product.Price
	existing.Quantity = product.Quantity
	existing.CategoryID = category.ID
	existing.CategoryName = category.Name
	existing.UpdatedAt = g.now()

	ok, err := g.products.Update(ctx, existing)
	if err != nil {
		g.logRace(err, "product", product.SKU)
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return existing, nil
}

// DeleteProduct borra sin condiciones y devuelve la instantánea eliminada, o (nil, nil).
func (g *Gateway) DeleteProduct(ctx context.Context, id int64) (*entity.Product, error) {
	return g.products.Delete(ctx, id)
}

// checkProduct devuelve la categoría referenciada si el producto es válido.
func (g *Gateway) checkProduct(ctx context.Context, product *entity.Product, excludingID *int64) (*entity.Category, error) {
	if err := domcatalog.ValidateProduct(product); err != nil {
		return nil, err
	}
	taken, err := g.validator.SKUExists(ctx, product.SKU, excludingID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.DuplicateSKU()
	}
	category, err := g.categories.GetByID(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.UnknownCategory()
	}
	return category, nil
}

// logRace registra las violaciones detectadas por el almacenamiento tras pasar la comprobación previa.
func (g *Gateway) logRace(err error, kind, key string) {
	if errors.Is(err, domain.ErrInvalidInput) {
		g.log.Warn().Err(err).Str("entity", kind).Str("key", key).Msg("restricción del almacenamiento rechazó la escritura")
	}
}
