package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/simple-inventory/internal/domain"
)

// Querier abstrae *pgxpool.Pool y pgx.Tx para que los repositorios sirvan dentro y fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SQLSTATE usados.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNumericOutOfRange   = "22003"
)

// Nombres de las restricciones del esquema (ver schema.sql).
const (
	constraintCategoryName  = "uq_categories_name"
	constraintProductSKU    = "uq_products_sku"
	constraintSKULength     = "ck_products_sku_length"
	constraintPriceMin      = "ck_products_price"
	constraintQuantityMin   = "ck_products_quantity"
	constraintProductNameNE = "ck_products_name"
)

// isForeignKeyViolation verifica si un error es una violación de FK (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}

// constraintError traduce una violación de restricción al mismo error de validación
// que produce la comprobación previa. Devuelve nil si err no es una violación conocida.
func constraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		switch pgErr.ConstraintName {
		case constraintCategoryName:
			return domain.DuplicateCategoryName()
		case constraintProductSKU:
			return domain.DuplicateSKU()
		}
		return domain.NewValidationError(columnOf(pgErr), domain.CodeDuplicate, "el valor ya existe")
	case codeForeignKeyViolation:
		// Solo las escrituras de productos llegan aquí; el borrado de categorías lo resuelve CategoryRepo.Delete.
		return domain.UnknownCategory()
	case codeCheckViolation:
		switch pgErr.ConstraintName {
		case constraintSKULength:
			return domain.NewValidationError("sku", domain.CodeLength, "el SKU debe tener entre 3 y 32 caracteres")
		case constraintPriceMin:
			return domain.NewValidationError("price", domain.CodeMin, "el precio debe ser >= 0")
		case constraintQuantityMin:
			return domain.NewValidationError("quantity", domain.CodeMin, "la cantidad debe ser >= 0")
		case constraintProductNameNE:
			return domain.NewValidationError("name", domain.CodeRequired, "el nombre es requerido")
		}
		return domain.NewValidationError(columnOf(pgErr), domain.CodeInvalid, "valor rechazado por el almacenamiento")
	case codeNumericOutOfRange:
		// Solo price (NUMERIC(18,2)) puede desbordar.
		return domain.PriceOutOfRange()
	}
	return nil
}

// columnOf campo al que se atribuye una violación sin nombre de restricción conocido.
func columnOf(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	return pgErr.TableName
}
