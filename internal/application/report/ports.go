package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/simple-inventory/internal/domain/entity"
)

// ProductSource origen paginado de productos (lo implementa catalog.Gateway).
type ProductSource interface {
	GetProducts(ctx context.Context, opts entity.ProductQueryOptions) (entity.PagedResult[*entity.Product], error)
}

// CatalogSnapshot productos que cumplen un filtro, en el orden pedido, listos para exportar.
type CatalogSnapshot struct {
	Title       string
	GeneratedAt time.Time
	Filter      string // descripción legible de búsqueda, categoría y orden
	Products    []*entity.Product
	Truncated   bool // se alcanzó MaxRows
	TotalUnits  int
	TotalValue  decimal.Decimal // suma de price * quantity
}

// PDFGenerator genera el reporte del catálogo en PDF.
type PDFGenerator interface {
	GenerateCatalogPDF(ctx context.Context, snapshot *CatalogSnapshot) ([]byte, error)
}

// XMLExporter serializa el catálogo a XML.
type XMLExporter interface {
	ExportCatalogXML(ctx context.Context, snapshot *CatalogSnapshot) ([]byte, error)
}
