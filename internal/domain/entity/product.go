package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// CategoryName solo se rellena en lecturas (join) y se ignora al escribir.
type Product struct {
	ID           int64
	SKU          string // único entre productos
	Name         string
	Price        decimal.Decimal
	Quantity     int
	CategoryID   int64
	CategoryName string
	UpdatedAt    time.Time
}
