package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/simple-inventory/internal/domain/entity"
)

// ProductRequest entrada para crear o reemplazar un producto.
type ProductRequest struct {
	SKU        string          `json:"sku" validate:"required,min=3,max=32"`
	Name       string          `json:"name" validate:"required"`
	Price      decimal.Decimal `json:"price" swaggertype:"string" example:"19.99"`
	Quantity   int             `json:"quantity" validate:"min=0"`
	CategoryID int64           `json:"category_id" validate:"required"`
}

// ToEntity construye la entidad a persistir (sin ID).
func (r ProductRequest) ToEntity() *entity.Product {
	return &entity.Product{
		SKU:        r.SKU,
		Name:       r.Name,
		Price:      r.Price,
		Quantity:   r.Quantity,
		CategoryID: r.CategoryID,
	}
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           int64           `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price" swaggertype:"string" example:"19.99"`
	Quantity     int             `json:"quantity"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToProductResponse mapea la entidad a la respuesta.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Price:        p.Price,
		Quantity:     p.Quantity,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToProductList mapea una página del motor de consulta.
func ToProductList(r entity.PagedResult[*entity.Product]) ProductListResponse {
	items := make([]ProductResponse, 0, len(r.Items))
	for _, p := range r.Items {
		items = append(items, ToProductResponse(p))
	}
	return ProductListResponse{
		Items: items,
		Page: PageResponse{
			Page:       r.Page,
			PageSize:   r.PageSize,
			TotalItems: r.TotalItems,
			TotalPages: r.TotalPages(),
			HasPrev:    r.HasPrev(),
			HasNext:    r.HasNext(),
		},
	}
}
