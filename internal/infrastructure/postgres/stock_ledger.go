package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.StockLedger = (*StockLedgerRepo)(nil)

// StockLedgerRepo implementación de StockLedger sobre PostgreSQL.
// La reserva es un solo UPDATE condicional (stock_qty >= cantidad), nunca un
// par leer-modificar-escribir: dos reservas concurrentes sobre la misma fila
// se serializan en el motor y no puede haber lost update ni stock negativo.
type StockLedgerRepo struct {
	q Querier
}

// NewStockLedger construye el adaptador. Pasar pool o tx (Querier).
func NewStockLedger(q Querier) *StockLedgerRepo {
	return &StockLedgerRepo{q: q}
}

// Reserve descuenta qty si y solo si hay stock suficiente, en un paso atómico.
// Devuelve la cantidad restante tras el descuento.
func (r *StockLedgerRepo) Reserve(ctx context.Context, productID string, qty int64) (int64, error) {
	if qty <= 0 {
		return 0, domain.ErrInvalidInput
	}
	query := `
		UPDATE products
		SET stock_qty = stock_qty - $2, updated_at = now()
		WHERE id = $1 AND stock_qty >= $2
		RETURNING stock_qty`
	var remaining int64
	err := r.q.QueryRow(ctx, query, productID, qty).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("reserve stock: %w", err)
	}
	// El UPDATE no tocó filas: o el producto no existe, o no alcanza el stock.
	var exists bool
	if err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID,
	).Scan(&exists); err != nil {
		return 0, fmt.Errorf("reserve stock (exists): %w", err)
	}
	if !exists {
		return 0, domain.ErrNotFound
	}
	return 0, domain.ErrInsufficientStock
}

// Release devuelve una reserva previamente otorgada (rollback compensatorio).
func (r *StockLedgerRepo) Release(ctx context.Context, productID string, qty int64) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock_qty = stock_qty + $2, updated_at = now() WHERE id = $1`,
		productID, qty,
	)
	if err != nil {
		return fmt.Errorf("release stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
