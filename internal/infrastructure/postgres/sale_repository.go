package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo persistencia append-only de ventas sobre PostgreSQL.
// Cabecera en sales y líneas en sale_items; Append escribe ambas en una
// transacción local del adaptador. No existe Update ni Delete.
type SaleRepo struct {
	pool *pgxpool.Pool
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(pool *pgxpool.Pool) *SaleRepo {
	return &SaleRepo{pool: pool}
}

// Append persiste una venta nueva y devuelve su ID asignado.
func (r *SaleRepo) Append(ctx context.Context, sale *entity.Sale) (string, error) {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO sales (id, total_amount, created_at) VALUES ($1, $2, $3)`,
		sale.ID, sale.TotalAmount, sale.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert sale: %w", err)
	}
	for i, item := range sale.Items {
		_, err = tx.Exec(ctx,
			`INSERT INTO sale_items (sale_id, line_no, product_id, name, unit_price, quantity, total)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			sale.ID, i, item.ProductID, item.Name, item.UnitPrice, item.Quantity, item.Total,
		)
		if err != nil {
			return "", fmt.Errorf("insert sale item: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit transaction: %w", err)
	}
	return sale.ID, nil
}

// GetByID obtiene una venta con sus líneas en orden. ErrNotFound si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	ctx := context.Background()
	var s entity.Sale
	err := r.pool.QueryRow(ctx,
		`SELECT id, total_amount, created_at FROM sales WHERE id = $1`, id,
	).Scan(&s.ID, &s.TotalAmount, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.itemsFor(ctx, []string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Items = items[s.ID]
	return &s, nil
}

// List devuelve ventas paginadas, la más reciente primero.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT id, total_amount, created_at
		 FROM sales ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	var ids []string
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.TotalAmount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, &s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return sales, nil
	}
	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range sales {
		s.Items = items[s.ID]
	}
	return sales, nil
}

// itemsFor carga las líneas de un conjunto de ventas, en orden de línea.
func (r *SaleRepo) itemsFor(ctx context.Context, saleIDs []string) (map[string][]entity.SaleLineItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT sale_id, product_id, name, unit_price, quantity, total
		 FROM sale_items WHERE sale_id = ANY($1) ORDER BY sale_id, line_no`,
		saleIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.SaleLineItem, len(saleIDs))
	for rows.Next() {
		var saleID string
		var it entity.SaleLineItem
		if err := rows.Scan(&saleID, &it.ProductID, &it.Name, &it.UnitPrice, &it.Quantity, &it.Total); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		out[saleID] = append(out[saleID], it)
	}
	return out, rows.Err()
}
