package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/simple-inventory/internal/domain"
	"github.com/jhoicas/simple-inventory/internal/domain/entity"
	"github.com/jhoicas/simple-inventory/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	s      *Store
	locked bool
}

// List devuelve las categorías ordenadas por nombre (y por ID ante empate).
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var list []*entity.Category
	r.s.read(r.locked, func() {
		list = make([]*entity.Category, 0, len(r.s.categories))
		for _, c := range r.s.categories {
			list = append(list, &c)
		}
	})
	slices.SortFunc(list, func(a, b *entity.Category) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return list, nil
}

// GetByID devuelve una copia de la categoría o nil.
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entity.Category
	r.s.read(r.locked, func() {
		if c, ok := r.s.categories[id]; ok {
			out = &c
		}
	})
	return out, nil
}

// ExistsByName coincidencia exacta.
func (r *CategoryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var exists bool
	r.s.read(r.locked, func() { exists = r.s.categoryNameTaken(name) })
	return exists, nil
}

// Create inserta y asigna ID. El índice único se comprueba bajo el mismo candado.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	r.s.write(r.locked, func() {
		if r.s.categoryNameTaken(category.Name) {
			err = domain.DuplicateCategoryName()
			return
		}
		r.s.nextCategoryID++
		category.ID = r.s.nextCategoryID
		r.s.categories[category.ID] = entity.Category{ID: category.ID, Name: category.Name}
	})
	return err
}

// Delete borra la categoría. Con productos que la referencian devuelve domain.ErrConflict (ON DELETE RESTRICT).
func (r *CategoryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var (
		deleted bool
		err     error
	)
	r.s.write(r.locked, func() {
		if _, ok := r.s.categories[id]; !ok {
			return
		}
		if r.s.categoryReferenced(id) {
			err = domain.ErrConflict
			return
		}
		delete(r.s.categories, id)
		deleted = true
	})
	return deleted, err
}

// IsReferenced indica si algún producto apunta a la categoría.
func (r *CategoryRepo) IsReferenced(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var inUse bool
	r.s.read(r.locked, func() { inUse = r.s.categoryReferenced(id) })
	return inUse, nil
}

func (s *Store) categoryNameTaken(name string) bool {
	for _, c := range s.categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

func (s *Store) categoryReferenced(id int64) bool {
	for _, p := range s.products {
		if p.CategoryID == id {
			return true
		}
	}
	return false
}
