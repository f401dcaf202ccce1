// Package catalog contiene las reglas puras del catálogo: validación de campos
// y el motor de consulta de productos (filtro, orden y paginación).
package catalog

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/simple-inventory/internal/domain"
	"github.com/jhoicas/simple-inventory/internal/domain/entity"
)

// Límites de longitud del SKU (inclusivos).
const (
	MinSKULength = 3
	MaxSKULength = 32
)

// Límites de precio y cantidad, los de las columnas NUMERIC(18,2) e INTEGER.
const (
	PriceScale  = 2
	MaxQuantity = math.MaxInt32
)

// MaxPrice cota superior exclusiva del precio.
var MaxPrice = decimal.New(1, 16)

// PriceInRange indica si price cabe en la columna (sin contar decimales).
func PriceInRange(price decimal.Decimal) bool {
	return price.Abs().LessThan(MaxPrice)
}

// ValidateProduct valida los campos de un producto antes de escribirlo.
// Devuelve *domain.ValidationError con todos los campos inválidos, o nil.
func ValidateProduct(p *entity.Product) error {
	verr := &domain.ValidationError{}
	if n := utf8.RuneCountInString(p.SKU); strings.TrimSpace(p.SKU) == "" || n < MinSKULength || n > MaxSKULength {
		verr.Add("sku", domain.CodeLength, fmt.Sprintf("el SKU debe tener entre %d y %d caracteres", MinSKULength, MaxSKULength))
	}
	if strings.TrimSpace(p.Name) == "" {
		verr.Add("name", domain.CodeRequired, "el nombre es requerido")
	}
	switch {
	case p.Price.IsNegative():
		verr.Add("price", domain.CodeMin, "el precio debe ser >= 0")
	case !PriceInRange(p.Price):
		verr.Fields = append(verr.Fields, domain.PriceOutOfRange().Fields...)
	case !p.Price.Equal(p.Price.Truncate(PriceScale)):
		verr.Add("price", domain.CodeScale, fmt.Sprintf("el precio admite hasta %d decimales", PriceScale))
	}
	switch {
	case p.Quantity < 0:
		verr.Add("quantity", domain.CodeMin, "la cantidad debe ser >= 0")
	case p.Quantity > MaxQuantity:
		verr.Fields = append(verr.Fields, domain.QuantityOutOfRange().Fields...)
	}
	if p.CategoryID <= 0 {
		verr.Add("category_id", domain.CodeRequired, "la categoría es requerida")
	}
	return verr.OrNil()
}

// ValidateCategory valida los campos de una categoría.
func ValidateCategory(c *entity.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return domain.NewValidationError("name", domain.CodeRequired, "el nombre es requerido")
	}
	return nil
}
