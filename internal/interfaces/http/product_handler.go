package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/simple-inventory/internal/application/catalog"
	"github.com/jhoicas/simple-inventory/internal/application/dto"
	"github.com/jhoicas/simple-inventory/internal/domain/entity"
)

// PageLimits tamaño de página por defecto y máximo del listado.
type PageLimits struct {
	Default int
	Max     int
}

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	gw     *catalog.Gateway
	limits PageLimits
}

// NewProductHandler construye el handler.
func NewProductHandler(gw *catalog.Gateway, limits PageLimits) *ProductHandler {
	if limits.Default < 1 {
		limits.Default = entity.DefaultPageSize
	}
	if limits.Max < limits.Default {
		limits.Max = limits.Default
	}
	return &ProductHandler{gw: gw, limits: limits}
}

// queryOptions lee q, categoryId, sort, page y pageSize. Devuelve false si algún parámetro es inválido.
func (h *ProductHandler) queryOptions(c *fiber.Ctx) (entity.ProductQueryOptions, bool) {
	opts := entity.ProductQueryOptions{
		Search:   c.Query("q"),
		Sort:     entity.ParseProductSort(c.Query("sort")),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", h.limits.Default),
	}
	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return opts, false
		}
		opts.CategoryID = &id
	}
	if opts.PageSize > h.limits.Max {
		opts.PageSize = h.limits.Max
	}
	return opts.Normalize(), true
}

func invalidQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "categoryId debe ser numérico"})
}

// List godoc
// @Summary      Listar productos
// @Description  Búsqueda por nombre o SKU, filtro por categoría, orden y paginación.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        q           query  string  false  "Texto a buscar en nombre o SKU"
// @Param        categoryId  query  int     false  "ID de categoría"
// @Param        sort        query  string  false  "name_asc | name_desc | price_asc | price_desc"  default(name_asc)
// @Param        page        query  int     false  "Página (base 1)"  default(1)
// @Param        pageSize    query  int     false  "Tamaño de página"  default(10)
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	opts, ok := h.queryOptions(c)
	if !ok {
		return invalidQuery(c)
	}
	page, err := h.gw.GetProducts(c.UserContext(), opts)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProductList(page))
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.gw.GetProductByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "producto no encontrado")
	}
	return c.JSON(dto.ToProductResponse(out))
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.gw.CreateProduct(c.UserContext(), in.ToEntity())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProductResponse(out))
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.ProductRequest  true  "Datos completos del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p := in.ToEntity()
	p.ID = id
	out, err := h.gw.UpdateProduct(c.UserContext(), p)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "producto no encontrado")
	}
	return c.JSON(dto.ToProductResponse(out))
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse  "Producto eliminado"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.gw.DeleteProduct(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "producto no encontrado")
	}
	return c.JSON(dto.ToProductResponse(out))
}
