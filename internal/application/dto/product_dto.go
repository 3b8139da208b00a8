package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// Los tags JSON son camelCase para mantener el contrato wire del frontend
// del punto de venta (stockQty, createdAt).

// CreateProductRequest entrada para crear un producto.
// StockQty es el stock inicial; después de la creación solo el ledger lo modifica.
type CreateProductRequest struct {
	Code     string          `json:"code" validate:"required,min=1,max=100"`
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Price    decimal.Decimal `json:"price"`
	StockQty int64           `json:"stockQty" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto. Sin StockQty:
// la cantidad disponible no se edita por este camino.
type UpdateProductRequest struct {
	Code  *string          `json:"code" validate:"omitempty,min=1,max=100"`
	Name  *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Price *decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	StockQty  int64           `json:"stockQty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// NewProductResponse mapea la entidad a su representación HTTP.
func NewProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		Price:     p.Price,
		StockQty:  p.StockQty,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewProductListResponse mapea una página de productos.
func NewProductListResponse(list []*entity.Product, page PageResponse) *ProductListResponse {
	out := &ProductListResponse{Items: make([]ProductResponse, 0, len(list)), Page: page}
	for _, p := range list {
		out.Items = append(out.Items, *NewProductResponse(p))
	}
	return out
}
