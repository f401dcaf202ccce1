package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/simple-inventory/internal/domain"
	"github.com/jhoicas/simple-inventory/internal/domain/catalog"
	"github.com/jhoicas/simple-inventory/internal/domain/entity"
	"github.com/jhoicas/simple-inventory/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `p.id, p.sku, p.name, p.price, p.quantity, p.category_id, c.name, p.updated_at`

const productFrom = `FROM products p JOIN categories c ON c.id = p.category_id`

// productSearch consulta de listado ya armada: filtro común para el COUNT y la página.
type productSearch struct {
	where string
	args  []any
	order string
	limit int
	skip  int
}

// buildProductSearch arma el WHERE parametrizado y el ORDER BY a partir de opciones normalizadas.
func buildProductSearch(opts entity.ProductQueryOptions) productSearch {
	var (
		conds []string
		args  []any
	)
	if opts.CategoryID != nil {
		args = append(args, *opts.CategoryID)
		conds = append(conds, "p.category_id = $"+strconv.Itoa(len(args)))
	}
	if opts.Search != "" {
		args = append(args, likePattern(opts.Search))
		n := "$" + strconv.Itoa(len(args))
		conds = append(conds, "(p.name ILIKE "+n+" OR p.sku ILIKE "+n+")")
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	return productSearch{
		where: where,
		args:  args,
		order: catalog.SortSpecFor(opts.Sort).OrderBy(),
		limit: opts.PageSize,
		skip:  opts.Offset(),
	}
}

func (s productSearch) countSQL() string {
	return "SELECT count(*) " + productFrom + " " + s.where
}

func (s productSearch) pageSQL() (string, []any) {
	n := len(s.args)
	sql := "SELECT " + productColumns + " " + productFrom + " " + s.where +
		" ORDER BY " + s.order +
		" LIMIT $" + strconv.Itoa(n+1) + " OFFSET $" + strconv.Itoa(n+2)
	args := append(append([]any{}, s.args...), s.limit, s.skip)
	return sql, args
}

// likePattern escapa los comodines de LIKE para que la búsqueda sea por subcadena literal.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// Search lista productos filtrados, ordenados y paginados.
func (r *ProductRepo) Search(ctx context.Context, opts entity.ProductQueryOptions) (entity.PagedResult[*entity.Product], error) {
	opts = opts.Normalize()
	out := entity.PagedResult[*entity.Product]{Items: []*entity.Product{}, Page: opts.Page, PageSize: opts.PageSize}

	s := buildProductSearch(opts)
	if err := r.q.QueryRow(ctx, s.countSQL(), s.args...).Scan(&out.TotalItems); err != nil {
		return out, fmt.Errorf("count products: %w", err)
	}
	if out.TotalItems == 0 || opts.Offset() >= out.TotalItems {
		return out, nil
	}

	sql, args := s.pageSQL()
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return out, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return out, err
		}
		out.Items = append(out.Items, p)
	}
	return out, rows.Err()
}

// GetByID obtiene un producto por ID con el nombre de su categoría.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	row := r.q.QueryRow(ctx, "SELECT "+productColumns+" "+productFrom+" WHERE p.id = $1", id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// SKUExists coincidencia exacta del SKU, ignorando excludingID si se indica.
func (r *ProductRepo) SKUExists(ctx context.Context, sku string, excludingID *int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE sku = $1 AND ($2::bigint IS NULL OR id <> $2))`,
		sku, excludingID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("sku exists: %w", err)
	}
	return exists, nil
}

// Create persiste un nuevo producto y asigna su ID.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	// quantity es INTEGER; pgx rechaza el valor antes de llegar al servidor.
	if product.Quantity > catalog.MaxQuantity {
		return domain.QuantityOutOfRange()
	}
	query := `
		INSERT INTO products (sku, name, price, quantity, category_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, price, updated_at`
	err := r.q.QueryRow(ctx, query,
		product.SKU, product.Name, product.Price, product.Quantity, product.CategoryID, product.UpdatedAt,
	).Scan(&product.ID, &product.Price, &product.UpdatedAt)
	if err != nil {
		if cerr := constraintError(err); cerr != nil {
			return cerr
		}
		return fmt.Errorf("insert product: %w", err)
	}
	product.UpdatedAt = product.UpdatedAt.UTC()
	return nil
}

// Update sobrescribe los campos editables y refresca product con lo guardado.
// Devuelve false si el ID no existe.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) (bool, error) {
	if product.Quantity > catalog.MaxQuantity {
		return false, domain.QuantityOutOfRange()
	}
	query := `
		UPDATE products SET sku = $2, name = $3, price = $4, quantity = $5, category_id = $6, updated_at = $7
		WHERE id = $1
		RETURNING price, updated_at`
	err := r.q.QueryRow(ctx, query,
		product.ID, product.SKU, product.Name, product.Price, product.Quantity, product.CategoryID, product.UpdatedAt,
	).Scan(&product.Price, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		if cerr := constraintError(err); cerr != nil {
			return false, cerr
		}
		return false, fmt.Errorf("update product: %w", err)
	}
	product.UpdatedAt = product.UpdatedAt.UTC()
	return true, nil
}

// Delete elimina un producto y devuelve su último estado, o nil si no existía.
func (r *ProductRepo) Delete(ctx context.Context, id int64) (*entity.Product, error) {
	query := `
		WITH d AS (DELETE FROM products WHERE id = $1 RETURNING *)
		SELECT d.id, d.sku, d.name, d.price, d.quantity, d.category_id, c.name, d.updated_at
		FROM d JOIN categories c ON c.id = d.category_id`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete product: %w", err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Price, &p.Quantity, &p.CategoryID, &p.CategoryName, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}
