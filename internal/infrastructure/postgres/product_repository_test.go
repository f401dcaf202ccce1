package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/simple-inventory/internal/domain"
	"github.com/jhoicas/simple-inventory/internal/domain/entity"
)

func TestBuildProductSearch_NoFilters(t *testing.T) {
	s := buildProductSearch(entity.DefaultProductQueryOptions())

	assert.Empty(t, s.where)
	assert.Empty(t, s.args)
	assert.Equal(t, "SELECT count(*) FROM products p JOIN categories c ON c.id = p.category_id ", s.countSQL())

	sql, args := s.pageSQL()
	assert.Contains(t, sql, "ORDER BY p.name ASC, p.id ASC LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{10, 0}, args)
}

func TestBuildProductSearch_AllFilters(t *testing.T) {
	cat := int64(7)
	opts := entity.ProductQueryOptions{
		Search:     "50%_off",
		CategoryID: &cat,
		Sort:       entity.SortPriceDesc,
		Page:       3,
		PageSize:   5,
	}.Normalize()

	s := buildProductSearch(opts)
	assert.Equal(t, "WHERE p.category_id = $1 AND (p.name ILIKE $2 OR p.sku ILIKE $2)", s.where)
	assert.Equal(t, []any{int64(7), `%50\%\_off%`}, s.args)

	sql, args := s.pageSQL()
	assert.Contains(t, sql, "ORDER BY p.price DESC, p.name ASC, p.id ASC LIMIT $3 OFFSET $4")
	assert.Equal(t, []any{int64(7), `%50\%\_off%`, 5, 10}, args)
	assert.Len(t, s.args, 2, "pageSQL no altera los argumentos del COUNT")
}

func TestLikePattern_EscapesWildcards(t *testing.T) {
	assert.Equal(t, "%mouse%", likePattern("mouse"))
	assert.Equal(t, `%a\\b%`, likePattern(`a\b`))
}

func TestConstraintError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		field string
		dup   bool
	}{
		{"sku duplicado", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: constraintProductSKU}, "sku", true},
		{"categoría duplicada", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: constraintCategoryName}, "name", true},
		{"fk de producto", &pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "fk_products_category"}, "category_id", false},
		{"precio negativo", &pgconn.PgError{Code: codeCheckViolation, ConstraintName: constraintPriceMin}, "price", false},
		{"sku corto", &pgconn.PgError{Code: codeCheckViolation, ConstraintName: constraintSKULength}, "sku", false},
		{"precio fuera de rango", &pgconn.PgError{Code: codeNumericOutOfRange, Message: "numeric field overflow"}, "price", false},
		{"único sin nombre conocido", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "otro", TableName: "products"}, "products", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := constraintError(fmt.Errorf("exec: %w", tt.err))
			verr, ok := domain.AsValidation(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, tt.dup, errors.Is(err, domain.ErrDuplicate))
		})
	}
}

func TestConstraintError_Unknown(t *testing.T) {
	assert.Nil(t, constraintError(errors.New("conexión cerrada")))
	assert.Nil(t, constraintError(errors.New(`ERROR: duplicate key value (SQLSTATE 23505)`)),
		"solo se traducen errores tipados de PostgreSQL")
	assert.Nil(t, constraintError(&pgconn.PgError{Code: "40001"}))
}
