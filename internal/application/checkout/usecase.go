package checkout

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// UseCase convierte un carrito en una venta finalizada con impacto de stock
// todo-o-nada: reserva cada producto en el ledger y, si cualquier paso
// posterior falla (otra reserva o la persistencia de la venta), devuelve
// todas las reservas ya otorgadas antes de reportar el error.
//
// El patrón reservar-todo-luego-confirmar-o-compensar da al checkout la misma
// garantía que una transacción multi-fila, sin exigir que el almacenamiento
// soporte transacciones multi-documento. No guarda estado propio.
type UseCase struct {
	ledger  repository.StockLedger
	catalog repository.ProductRepository
	sales   repository.SaleRepository
	timeout time.Duration
	log     *logger.Logger
}

// NewUseCase construye el coordinador. timeout acota la espera de todo el
// checkout (reservas + persistencia); cero desactiva el límite.
func NewUseCase(
	ledger repository.StockLedger,
	catalog repository.ProductRepository,
	sales repository.SaleRepository,
	timeout time.Duration,
	log *logger.Logger,
) *UseCase {
	return &UseCase{ledger: ledger, catalog: catalog, sales: sales, timeout: timeout, log: log}
}

// reservation una reserva otorgada, pendiente de confirmar o devolver.
type reservation struct {
	productID string
	qty       int64
}

// Checkout ejecuta la transacción de venta:
//
//  1. carrito vacío -> domain.ErrEmptyCart; líneas inválidas -> domain.ErrInvalidInput
//  2. cantidades de líneas repetidas del mismo producto se SUMAN antes de
//     reservar: el total solicitado del producto se verifica contra el stock
//     como una sola cifra
//  3. las reservas se adquieren en orden ascendente de ID de producto, para
//     que dos checkouts concurrentes que comparten productos no puedan
//     bloquearse mutuamente
//  4. cualquier falla de reserva o de persistencia devuelve todas las
//     reservas otorgadas; el error indica el producto y la causa
//  5. los totales se calculan con el precio de la línea del carrito (el que
//     vio el cliente), no con el precio vigente del catálogo
func (uc *UseCase) Checkout(ctx context.Context, lines []entity.CartLine) (*entity.Sale, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity < 1 || l.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	// Cantidad total solicitada por producto, y orden determinista de reserva.
	wanted := make(map[string]int64)
	for _, l := range lines {
		wanted[l.ProductID] += l.Quantity
	}
	order := make([]string, 0, len(wanted))
	for id := range wanted {
		order = append(order, id)
	}
	sort.Strings(order)

	// Lectura previa del catálogo: existencia y nombre de cada producto.
	// El precio del catálogo NO se usa para totalizar.
	names := make(map[string]string, len(order))
	for _, id := range order {
		p, err := uc.catalog.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("consultar producto: %w", err)
		}
		if p == nil {
			return nil, domain.NewProductError(id, domain.ErrNotFound)
		}
		names[id] = p.Name
	}

	// Fase de reserva: todo o nada.
	granted := make([]reservation, 0, len(order))
	for _, id := range order {
		if _, err := uc.ledger.Reserve(ctx, id, wanted[id]); err != nil {
			uc.rollback(ctx, granted)
			var perr *domain.ProductError
			if errors.As(err, &perr) {
				return nil, err
			}
			return nil, domain.NewProductError(id, err)
		}
		granted = append(granted, reservation{productID: id, qty: wanted[id]})
	}

	// Totales con el precio de cada línea del carrito.
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		Items:     make([]entity.SaleLineItem, 0, len(lines)),
		CreatedAt: time.Now(),
	}
	total := decimal.Zero
	for _, l := range lines {
		lineTotal := l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
		sale.Items = append(sale.Items, entity.SaleLineItem{
			ProductID: l.ProductID,
			Name:      names[l.ProductID],
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Total:     lineTotal,
		})
		total = total.Add(lineTotal)
	}
	sale.TotalAmount = total

	// Fase de confirmación: persistir la venta. Si falla, el stock no puede
	// quedar descontado para una venta que no existe.
	if _, err := uc.sales.Append(ctx, sale); err != nil {
		uc.rollback(ctx, granted)
		uc.log.Error().Err(err).Str("sale_id", sale.ID).Msg("persistencia de venta falló, reservas devueltas")
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Int("lines", len(sale.Items)).
		Str("total", sale.TotalAmount.String()).
		Msg("venta registrada")
	return sale, nil
}

// rollback devuelve las reservas otorgadas, en orden inverso a la adquisición.
// Usa un contexto sin cancelación: la compensación debe ejecutarse aunque el
// deadline del checkout ya haya vencido.
func (uc *UseCase) rollback(ctx context.Context, granted []reservation) {
	ctx = context.WithoutCancel(ctx)
	for i := len(granted) - 1; i >= 0; i-- {
		r := granted[i]
		if err := uc.ledger.Release(ctx, r.productID, r.qty); err != nil {
			uc.log.Error().Err(err).
				Str("product_id", r.productID).
				Int64("qty", r.qty).
				Msg("no se pudo devolver la reserva")
		}
	}
}
