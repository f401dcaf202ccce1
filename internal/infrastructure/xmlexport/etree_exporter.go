// Package xmlexport serializa el catálogo a XML con etree.
package xmlexport

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/simple-inventory/internal/application/report"
)

var _ report.XMLExporter = (*Exporter)(nil)

// Exporter implementa report.XMLExporter.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// ExportCatalogXML produce:
//
//	<catalog generatedAt="..." totalItems="n" truncated="false">
//	  <filter>...</filter>
//	  <product id="1"><sku/><name/><price/><quantity/><category id="2">Nombre</category><updatedAt/></product>
//	  <totals units="..." value="..."/>
//	</catalog>
func (e *Exporter) ExportCatalogXML(_ context.Context, snap *report.CatalogSnapshot) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("catalog")
	root.CreateAttr("generatedAt", snap.GeneratedAt.Format(time.RFC3339))
	root.CreateAttr("totalItems", strconv.Itoa(len(snap.Products)))
	root.CreateAttr("truncated", strconv.FormatBool(snap.Truncated))
	root.CreateElement("filter").SetText(snap.Filter)

	for _, p := range snap.Products {
		el := root.CreateElement("product")
		el.CreateAttr("id", strconv.FormatInt(p.ID, 10))
		el.CreateElement("sku").SetText(p.SKU)
		el.CreateElement("name").SetText(p.Name)
		el.CreateElement("price").SetText(p.Price.StringFixed(2))
		el.CreateElement("quantity").SetText(strconv.Itoa(p.Quantity))
		cat := el.CreateElement("category")
		cat.CreateAttr("id", strconv.FormatInt(p.CategoryID, 10))
		cat.SetText(p.CategoryName)
		if !p.UpdatedAt.IsZero() {
			el.CreateElement("updatedAt").SetText(p.UpdatedAt.UTC().Format(time.RFC3339))
		}
	}

	totals := root.CreateElement("totals")
	totals.CreateAttr("units", strconv.Itoa(snap.TotalUnits))
	totals.CreateAttr("value", snap.TotalValue.StringFixed(2))

	doc.Indent(2)
	b, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar catálogo: %w", err)
	}
	return b, nil
}
