package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/simple-inventory/internal/application/report"
)

// ReportHandler exportaciones del catálogo. Usa los mismos filtros que el listado.
type ReportHandler struct {
	uc       *report.UseCase
	products *ProductHandler
}

// NewReportHandler construye el handler; products aporta el parseo de filtros.
func NewReportHandler(uc *report.UseCase, products *ProductHandler) *ReportHandler {
	return &ReportHandler{uc: uc, products: products}
}

// CatalogPDF godoc
// @Summary      Reporte PDF del catálogo
// @Tags         products
// @Security     Bearer
// @Produce      application/pdf
// @Param        q           query  string  false  "Texto a buscar en nombre o SKU"
// @Param        categoryId  query  int     false  "ID de categoría"
// @Param        sort        query  string  false  "name_asc | name_desc | price_asc | price_desc"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/report.pdf [get]
func (h *ReportHandler) CatalogPDF(c *fiber.Ctx) error {
	opts, ok := h.products.queryOptions(c)
	if !ok {
		return invalidQuery(c)
	}
	b, name, err := h.uc.CatalogPDF(c.UserContext(), opts)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(b)
}

// CatalogXML godoc
// @Summary      Exportación XML del catálogo
// @Tags         products
// @Security     Bearer
// @Produce      application/xml
// @Param        q           query  string  false  "Texto a buscar en nombre o SKU"
// @Param        categoryId  query  int     false  "ID de categoría"
// @Param        sort        query  string  false  "name_asc | name_desc | price_asc | price_desc"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/export.xml [get]
func (h *ReportHandler) CatalogXML(c *fiber.Ctx) error {
	opts, ok := h.products.queryOptions(c)
	if !ok {
		return invalidQuery(c)
	}
	b, name, err := h.uc.CatalogXML(c.UserContext(), opts)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(b)
}
