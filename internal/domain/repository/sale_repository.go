package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia de ventas finalizadas (append-only).
// Una venta nunca se actualiza ni se borra después de creada.
type SaleRepository interface {
	// Append persiste una venta nueva e inmutable y devuelve su ID asignado.
	Append(ctx context.Context, sale *entity.Sale) (string, error)

	// GetByID retorna domain.ErrNotFound si la venta no existe.
	GetByID(id string) (*entity.Sale, error)

	// List devuelve las ventas ordenadas por fecha de creación,
	// la más reciente primero.
	List(limit, offset int) ([]*entity.Sale, error)
}
