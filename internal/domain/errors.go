package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnauthorized = errors.New("no autorizado")
)

// Códigos de error por campo.
const (
	CodeRequired  = "required"
	CodeLength    = "length"
	CodeMin       = "min"
	CodeMax       = "max"
	CodeScale     = "scale"
	CodeInvalid   = "invalid"
	CodeDuplicate = "duplicate"
	CodeUnknown   = "unknown_reference"
)

// FieldError describe un fallo de validación atribuido a un campo.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError agrupa los fallos de validación de una operación.
// Se produce igual si lo detecta la validación previa o la restricción del almacenamiento.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError crea un error con un único campo.
func NewValidationError(field, code, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Code: code, Message: message}}}
}

// Add agrega un fallo de campo.
func (e *ValidationError) Add(field, code, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: message})
}

// Empty indica si no se registró ningún fallo.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// OrNil devuelve nil si no hay fallos; evita el nil tipado en interfaces error.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput) y, para duplicados, errors.Is(err, ErrDuplicate).
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return true
	case ErrDuplicate:
		return e.HasCode(CodeDuplicate)
	}
	return false
}

// HasCode indica si algún campo tiene el código dado.
func (e *ValidationError) HasCode(code string) bool {
	for _, f := range e.Fields {
		if f.Code == code {
			return true
		}
	}
	return false
}

// DuplicateSKU error de SKU repetido.
func DuplicateSKU() *ValidationError {
	return NewValidationError("sku", CodeDuplicate, "el SKU debe ser único")
}

// DuplicateCategoryName error de nombre de categoría repetido.
func DuplicateCategoryName() *ValidationError {
	return NewValidationError("name", CodeDuplicate, "el nombre de la categoría debe ser único")
}

// UnknownCategory error de producto que referencia una categoría inexistente.
func UnknownCategory() *ValidationError {
	return NewValidationError("category_id", CodeUnknown, "la categoría no existe")
}

// PriceOutOfRange error de precio que no cabe en NUMERIC(18,2).
func PriceOutOfRange() *ValidationError {
	return NewValidationError("price", CodeMax, "el precio debe ser menor que 10^16")
}

// QuantityOutOfRange error de cantidad que no cabe en un entero de 32 bits.
func QuantityOutOfRange() *ValidationError {
	return NewValidationError("quantity", CodeMax, "la cantidad debe ser <= 2147483647")
}

// AsValidation extrae el ValidationError de una cadena de errores.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
