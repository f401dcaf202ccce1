// Package report arma instantáneas del catálogo filtrado y las entrega a los
// generadores de PDF y XML.
package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/simple-inventory/internal/domain/entity"
)

// MaxRows límite de filas de una exportación.
const MaxRows = 5000

// UseCase exportaciones del catálogo.
type UseCase struct {
	source ProductSource
	pdf    PDFGenerator
	xml    XMLExporter
	now    func() time.Time
}

// Option configura el UseCase.
type Option func(*UseCase)

// WithClock reemplaza el reloj usado para la fecha del reporte.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) { uc.now = now }
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(source ProductSource, pdf PDFGenerator, xml XMLExporter, opts ...Option) *UseCase {
	uc := &UseCase{source: source, pdf: pdf, xml: xml, now: func() time.Time { return time.Now().UTC() }}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// Snapshot lee en una sola consulta los productos que cumplen opts (Page y PageSize
// se ignoran), así el documento refleja un único estado del catálogo aunque haya
// escrituras concurrentes. Se pide una fila de más para detectar el truncado.
func (uc *UseCase) Snapshot(ctx context.Context, opts entity.ProductQueryOptions) (*CatalogSnapshot, error) {
	opts.Page = 1
	opts.PageSize = MaxRows + 1
	opts = opts.Normalize()

	page, err := uc.source.GetProducts(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("report: leer productos: %w", err)
	}
	items := page.Items
	snap := &CatalogSnapshot{
		Title:       "Catálogo de productos",
		GeneratedAt: uc.now(),
		Filter:      describe(opts),
		TotalValue:  decimal.Zero,
	}
	if len(items) > MaxRows {
		items = items[:MaxRows]
		snap.Truncated = true
	}
	snap.Products = make([]*entity.Product, 0, len(items))
	for _, p := range items {
		snap.Products = append(snap.Products, p)
		snap.TotalUnits += p.Quantity
		snap.TotalValue = snap.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return snap, nil
}

// CatalogPDF devuelve el PDF y el nombre de archivo sugerido.
func (uc *UseCase) CatalogPDF(ctx context.Context, opts entity.ProductQueryOptions) ([]byte, string, error) {
	snap, err := uc.Snapshot(ctx, opts)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateCatalogPDF(ctx, snap)
	if err != nil {
		return nil, "", err
	}
	return b, filename(snap, "pdf"), nil
}

// CatalogXML devuelve el XML y el nombre de archivo sugerido.
func (uc *UseCase) CatalogXML(ctx context.Context, opts entity.ProductQueryOptions) ([]byte, string, error) {
	snap, err := uc.Snapshot(ctx, opts)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.xml.ExportCatalogXML(ctx, snap)
	if err != nil {
		return nil, "", err
	}
	return b, filename(snap, "xml"), nil
}

func filename(s *CatalogSnapshot, ext string) string {
	return "catalogo-" + s.GeneratedAt.Format("20060102-150405") + "." + ext
}

func describe(opts entity.ProductQueryOptions) string {
	parts := make([]string, 0, 3)
	if opts.Search != "" {
		parts = append(parts, "búsqueda \""+opts.Search+"\"")
	}
	if opts.CategoryID != nil {
		parts = append(parts, "categoría "+strconv.FormatInt(*opts.CategoryID, 10))
	}
	parts = append(parts, "orden "+opts.Sort.String())
	return strings.Join(parts, ", ")
}
