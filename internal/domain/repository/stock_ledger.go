package repository

import "context"

// StockLedger es el único punto de verdad sobre la cantidad disponible de un
// producto: "¿hay stock suficiente? si sí, tómalo" en un solo paso atómico.
//
// Contrato de concurrencia: dos Reserve concurrentes sobre el mismo producto
// se serializan; nunca hay lost update donde ambas reservas "caben" cuando
// solo una podía satisfacerse. La atomicidad es POR PRODUCTO: componer la
// atomicidad de un carrito completo es trabajo del coordinador de checkout.
type StockLedger interface {
	// Reserve verifica StockQty >= qty y descuenta qty en el mismo paso
	// atómico. Devuelve la cantidad restante. Si el producto no existe
	// retorna domain.ErrNotFound; si no alcanza el stock,
	// domain.ErrInsufficientStock y el ledger queda intacto.
	Reserve(ctx context.Context, productID string, qty int64) (remaining int64, err error)

	// Release devuelve una reserva previamente otorgada (rollback
	// compensatorio). Solo debe usarse para deshacer un Reserve de la misma
	// transacción de checkout.
	Release(ctx context.Context, productID string, qty int64) error
}
