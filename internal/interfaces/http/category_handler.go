package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/simple-inventory/internal/application/catalog"
	"github.com/jhoicas/simple-inventory/internal/application/dto"
	"github.com/jhoicas/simple-inventory/internal/domain/entity"
)

// CategoryHandler maneja las peticiones HTTP para categorías (protegido).
type CategoryHandler struct {
	gw *catalog.Gateway
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(gw *catalog.Gateway) *CategoryHandler {
	return &CategoryHandler{gw: gw}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CategoryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	list, err := h.gw.ListCategories(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCategoryList(list))
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Nombre único"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.gw.CreateCategory(c.UserContext(), &entity.Category{Name: in.Name})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToCategoryResponse(out))
}

// Delete godoc
// @Summary      Eliminar categoría
// @Description  Solo si ningún producto la referencia.
// @Tags         categories
// @Security     Bearer
// @Param        id   path  int  true  "ID de la categoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return invalidID(c)
	}
	ctx := c.UserContext()
	category, err := h.gw.GetCategoryByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if category == nil {
		return notFound(c, "categoría no encontrada")
	}
	deleted, err := h.gw.DeleteCategory(ctx, category)
	if err != nil {
		return writeError(c, err)
	}
	if !deleted {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "CATEGORY_IN_USE",
			Message: "la categoría tiene productos asociados",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
