package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// CheckoutItemRequest una línea del carrito tal como la envía el caller.
// Price es el precio unitario que vio el cliente al agregar la línea; el
// checkout totaliza con este precio, no con el del catálogo en ese instante.
type CheckoutItemRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"min=1"`
	Price     decimal.Decimal `json:"price"`
}

// CheckoutRequest carrito completo para convertir en venta.
type CheckoutRequest struct {
	Items []CheckoutItemRequest `json:"items"`
}

// CartLines convierte el request en líneas de dominio.
func (r CheckoutRequest) CartLines() []entity.CartLine {
	lines := make([]entity.CartLine, 0, len(r.Items))
	for _, it := range r.Items {
		lines = append(lines, entity.CartLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
		})
	}
	return lines
}

// SaleItemResponse línea de una venta finalizada.
// Forma wire: {productId, name, price, quantity, total}.
type SaleItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// SaleResponse venta finalizada.
// Forma wire: {id, items, totalAmount, createdAt}.
type SaleResponse struct {
	ID          string             `json:"id"`
	Items       []SaleItemResponse `json:"items"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// SaleListResponse lista paginada de ventas, la más reciente primero.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// NewSaleResponse mapea la entidad a su representación HTTP.
func NewSaleResponse(s *entity.Sale) *SaleResponse {
	if s == nil {
		return nil
	}
	out := &SaleResponse{
		ID:          s.ID,
		Items:       make([]SaleItemResponse, 0, len(s.Items)),
		TotalAmount: s.TotalAmount,
		CreatedAt:   s.CreatedAt,
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, SaleItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.UnitPrice,
			Quantity:  it.Quantity,
			Total:     it.Total,
		})
	}
	return out
}

// NewSaleListResponse mapea una página de ventas.
func NewSaleListResponse(list []*entity.Sale, page PageResponse) *SaleListResponse {
	out := &SaleListResponse{Items: make([]SaleResponse, 0, len(list)), Page: page}
	for _, s := range list {
		out.Items = append(out.Items, *NewSaleResponse(s))
	}
	return out
}
