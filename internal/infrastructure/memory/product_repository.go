package memory

import (
	"context"

	"github.com/jhoicas/simple-inventory/internal/domain"
	"github.com/jhoicas/simple-inventory/internal/domain/catalog"
	"github.com/jhoicas/simple-inventory/internal/domain/entity"
	"github.com/jhoicas/simple-inventory/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s      *Store
	locked bool
}

// Search toma una instantánea del conjunto y aplica el motor de consulta del catálogo.
func (r *ProductRepo) Search(ctx context.Context, opts entity.ProductQueryOptions) (entity.PagedResult[*entity.Product], error) {
	if err := ctx.Err(); err != nil {
		return entity.PagedResult[*entity.Product]{}, err
	}
	var all []*entity.Product
	r.s.read(r.locked, func() {
		all = make([]*entity.Product, 0, len(r.s.products))
		for _, p := range r.s.products {
			all = append(all, r.s.withCategory(p))
		}
	})
	return catalog.Query(all, opts), nil
}

// GetByID devuelve una copia del producto con el nombre de su categoría, o nil.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entity.Product
	r.s.read(r.locked, func() {
		if p, ok := r.s.products[id]; ok {
			out = r.s.withCategory(p)
		}
	})
	return out, nil
}

// SKUExists coincidencia exacta, ignorando excludingID.
func (r *ProductRepo) SKUExists(ctx context.Context, sku string, excludingID *int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var exists bool
	r.s.read(r.locked, func() { exists = r.s.skuTaken(sku, excludingID) })
	return exists, nil
}

// Create inserta y asigna ID, aplicando índice único de SKU y FK a categoría.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	r.s.write(r.locked, func() {
		if err = r.s.checkProductConstraints(product, nil); err != nil {
			return
		}
		r.s.nextProductID++
		product.ID = r.s.nextProductID
		r.s.products[product.ID] = stored(product)
	})
	return err
}

// Update sobrescribe los campos mutables. Devuelve false si el ID no existe.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var (
		ok  bool
		err error
	)
	r.s.write(r.locked, func() {
		if _, ok = r.s.products[product.ID]; !ok {
			return
		}
		if err = r.s.checkProductConstraints(product, &product.ID); err != nil {
			ok = false
			return
		}
		r.s.products[product.ID] = stored(product)
	})
	return ok, err
}

// Delete borra y devuelve la instantánea, o nil si no existía.
func (r *ProductRepo) Delete(ctx context.Context, id int64) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entity.Product
	r.s.write(r.locked, func() {
		p, ok := r.s.products[id]
		if !ok {
			return
		}
		out = r.s.withCategory(p)
		delete(r.s.products, id)
	})
	return out, nil
}

// checkProductConstraints equivalente a uq_products_sku, fk_products_category y a los
// límites de NUMERIC(18,2) e INTEGER. Redondea el precio a 2 decimales como la columna.
func (s *Store) checkProductConstraints(p *entity.Product, excludingID *int64) error {
	price := p.Price.Round(catalog.PriceScale)
	if !catalog.PriceInRange(price) {
		return domain.PriceOutOfRange()
	}
	if p.Quantity > catalog.MaxQuantity {
		return domain.QuantityOutOfRange()
	}
	if s.skuTaken(p.SKU, excludingID) {
		return domain.DuplicateSKU()
	}
	if _, ok := s.categories[p.CategoryID]; !ok {
		return domain.UnknownCategory()
	}
	p.Price = price
	return nil
}

func (s *Store) skuTaken(sku string, excludingID *int64) bool {
	for id, p := range s.products {
		if excludingID != nil && id == *excludingID {
			continue
		}
		if p.SKU == sku {
			return true
		}
	}
	return false
}

func (s *Store) withCategory(p entity.Product) *entity.Product {
	p.CategoryName = s.categories[p.CategoryID].Name
	return &p
}

// stored copia los campos persistidos; CategoryName no se guarda.
func stored(p *entity.Product) entity.Product {
	cp := *p
	cp.CategoryName = ""
	return cp
}
