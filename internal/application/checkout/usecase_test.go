package checkout_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/checkout"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// ── Helpers de test ──────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func newProduct(t *testing.T, store *memory.ProductStore, code, name string, price string, stock int64) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		StockQty:  stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.Create(p))
	return p
}

func stockOf(t *testing.T, store *memory.ProductStore, id string) int64 {
	t.Helper()
	p, err := store.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.StockQty
}

func line(productID string, qty int64, price string) entity.CartLine {
	return entity.CartLine{ProductID: productID, Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func newCheckout(products *memory.ProductStore, sales *memory.SaleStore) *checkout.UseCase {
	return checkout.NewUseCase(products, products, sales, 5*time.Second, testLogger())
}

// failingSaleRepo simula una caída de la persistencia de ventas.
type failingSaleRepo struct{}

func (f *failingSaleRepo) Append(ctx context.Context, sale *entity.Sale) (string, error) {
	return "", fmt.Errorf("db caída")
}
func (f *failingSaleRepo) GetByID(id string) (*entity.Sale, error) { return nil, domain.ErrNotFound }
func (f *failingSaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	return nil, nil
}

// ── Validación de entrada ────────────────────────────────────────────────────

func TestCheckout_CarritoVacio(t *testing.T) {
	products := memory.NewProductStore()
	sales := memory.NewSaleStore()
	uc := newCheckout(products, sales)

	_, err := uc.Checkout(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	list, err := sales.List(10, 0)
	require.NoError(t, err)
	assert.Empty(t, list, "un checkout fallido no debe dejar ventas")
}

func TestCheckout_LineaInvalida(t *testing.T) {
	products := memory.NewProductStore()
	sales := memory.NewSaleStore()
	uc := newCheckout(products, sales)
	p := newProduct(t, products, "A-1", "Café", "10.00", 5)

	casos := []struct {
		nombre string
		lines  []entity.CartLine
	}{
		{"cantidad cero", []entity.CartLine{{ProductID: p.ID, Quantity: 0, UnitPrice: decimal.New(1, 0)}}},
		{"cantidad negativa", []entity.CartLine{{ProductID: p.ID, Quantity: -3, UnitPrice: decimal.New(1, 0)}}},
		{"precio negativo", []entity.CartLine{{ProductID: p.ID, Quantity: 1, UnitPrice: decimal.New(-1, 0)}}},
		{"producto vacío", []entity.CartLine{{ProductID: "", Quantity: 1, UnitPrice: decimal.New(1, 0)}}},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := uc.Checkout(context.Background(), c.lines)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, int64(5), stockOf(t, products, p.ID), "el stock no debe moverse")
		})
	}
}

func TestCheckout_ProductoInexistente(t *testing.T) {
	products := memory.NewProductStore()
	sales := memory.NewSaleStore()
	uc := newCheckout(products, sales)
	p := newProduct(t, products, "A-1", "Café", "10.00", 5)

	_, err := uc.Checkout(context.Background(), []entity.CartLine{
		line(p.ID, 1, "10.00"),
		line("no-existe", 1, "1.00"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var perr *domain.ProductError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "no-existe", perr.ProductID)

	assert.Equal(t, int64(5), stockOf(t, products, p.ID), "nada se reserva si el carrito referencia un producto inexistente")
}

// ── Atomicidad y rollback compensatorio ──────────────────────────────────────

func TestCheckout_RollbackSiUnaReservaFalla(t *testing.T) {
	products := memory.NewProductStore()
	sales := memory.NewSaleStore()
	uc := newCheckout(products, sales)

	p1 := newProduct(t, products, "A-1", "Café", "10.00", 10)
	p2 := newProduct(t, products, "B-2", "Azúcar", "4.00", 2)

	_, err := uc.Checkout(context.Background(), []entity.CartLine{
		line(p1.ID, 3, "10.00"),
		line(p2.ID, 5, "4.00"), // no alcanza: solo hay 2
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var perr *domain.ProductError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, p2.ID, perr.ProductID)

	// Ningún descuento parcial sobrevive al fallo.
	assert.Equal(t, int64(10), stockOf(t, products, p1.ID))
	assert.Equal(t, int64(2), stockOf(t, products, p2.ID))

	list, err := sales.List(10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCheckout_RollbackSiPersistenciaFalla(t *testing.T) {
	products := memory.NewProductStore()
	uc := checkout.NewUseCase(products, products, &failingSaleRepo{}, 5*time.Second, testLogger())

	p := newProduct(t, products, "A-1", "Café", "10.00", 5)

	_, err := uc.Checkout(context.Background(), []entity.CartLine{line(p.ID, 3, "10.00")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistenceFailed)

	// El stock no puede quedar descontado para una venta que no existe.
	assert.Equal(t, int64(5), stockOf(t, products, p.ID))
}

// ── Agregación de líneas repetidas (la suma se verifica como una sola cifra) ─

func TestCheckout_LineasRepetidas_SumaNoAlcanza(t *testing.T) {
	products := memory.NewProductStore()
	sales := memory.NewSaleStore()
	uc := newCheckout(products, sales)

	p := newProduct(t, products, "A-1", "Café", "10.00", 6)

	// 3 y 4 caben por separado, pero 7 > 6: debe fallar como un todo.
	_, err := uc.Checkout(context.Background(), []entity.CartLine{
		line(p.ID, 3, "10.00"),
		line(p.ID, 4, "10.00"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(6), stockOf(t, products, p.ID))
}

func TestCheckout_LineasRepetidas_SumaExacta(t *testing.T) {
	products := memory.NewProductStore()
	sales := memory.NewSaleStore()
	uc := newCheckout(products, sales)

	p := newProduct(t, products, "A-1", "Café", "10.00", 7)

	sale, err := uc.Checkout(context.Background(), []entity.CartLine{
		line(p.ID, 3, "10.00"),
		line(p.ID, 4, "10.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), stockOf(t, products, p.ID), "debe reservar exactamente 7")

	// La venta conserva las dos líneas originales, en orden.
	require.Len(t, sale.Items, 2)
	assert.Equal(t, int64(3), sale.Items[0].Quantity)
	assert.Equal(t, int64(4), sale.Items[1].Quantity)
	assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("70.00")),
		"total esperado 70.00, fue %s", sale.TotalAmount)
}

// ── Totales: el precio de la línea del carrito manda, no el del catálogo ─────

func TestCheckout_TotalesConPrecioDelCarrito(t *testing.T) {
	products := memory.NewProductStore()
	sales := memory.NewSaleStore()
	uc := newCheckout(products, sales)

	// Precio de catálogo 99.99; el cliente vio 10.00 al agregar la línea.
	p := newProduct(t, products, "A-1", "Café", "99.99", 10)

	sale, err := uc.Checkout(context.Background(), []entity.CartLine{
		line(p.ID, 2, "10.00"),
		line(p.ID, 1, "12.50"),
	})
	require.NoError(t, err)

	require.Len(t, sale.Items, 2)
	assert.True(t, sale.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, sale.Items[0].Total.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, sale.Items[1].UnitPrice.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("32.50")))

	// Invariante: el total siempre es la suma de sus propias líneas.
	sum := decimal.Zero
	for _, it := range sale.Items {
		sum = sum.Add(it.Total)
	}
	assert.True(t, sale.TotalAmount.Equal(sum))
}

// ── Escenario de referencia: stock 5, precio 10.00 ───────────────────────────

func TestCheckout_EscenarioReferencia(t *testing.T) {
	products := memory.NewProductStore()
	sales := memory.NewSaleStore()
	uc := newCheckout(products, sales)

	a := newProduct(t, products, "A", "Producto A", "10.00", 5)

	sale, err := uc.Checkout(context.Background(), []entity.CartLine{line(a.ID, 5, "10.00")})
	require.NoError(t, err)
	assert.Equal(t, int64(0), stockOf(t, products, a.ID))
	assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("50.00")))

	// Un segundo checkout posterior debe fallar y dejar el stock en 0.
	_, err = uc.Checkout(context.Background(), []entity.CartLine{line(a.ID, 1, "10.00")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	var perr *domain.ProductError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, a.ID, perr.ProductID)
	assert.Equal(t, int64(0), stockOf(t, products, a.ID))

	// El historial contiene solo la venta exitosa, y leerla es idempotente.
	list, err := sales.List(10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sale.ID, list[0].ID)

	s1, err := sales.GetByID(sale.ID)
	require.NoError(t, err)
	s2, err := sales.GetByID(sale.ID)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
}

// ── Concurrencia: muchos checkouts sobre el mismo producto ───────────────────

func TestCheckout_ConcurrenciaSobreUnProducto(t *testing.T) {
	products := memory.NewProductStore()
	sales := memory.NewSaleStore()
	uc := newCheckout(products, sales)

	const initial = 40
	const intentos = 100
	p := newProduct(t, products, "A-1", "Café", "10.00", initial)

	var wg sync.WaitGroup
	errs := make([]error, intentos)
	for i := 0; i < intentos; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Checkout(context.Background(), []entity.CartLine{line(p.ID, 1, "10.00")})
		}(i)
	}
	wg.Wait()

	exitos := 0
	for _, err := range errs {
		if err == nil {
			exitos++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	// La suma de descuentos exitosos nunca excede el stock inicial.
	assert.Equal(t, initial, exitos)
	assert.Equal(t, int64(0), stockOf(t, products, p.ID))

	list, err := sales.List(intentos, 0)
	require.NoError(t, err)
	assert.Len(t, list, exitos, "solo los checkouts exitosos dejan venta")
}

func TestCheckout_ConcurrenciaCarritosCruzados(t *testing.T) {
	products := memory.NewProductStore()
	sales := memory.NewSaleStore()
	uc := newCheckout(products, sales)

	// Dos carritos comparten productos en orden opuesto; la adquisición en
	// orden determinista de ID evita que se bloqueen mutuamente.
	p1 := newProduct(t, products, "A-1", "Café", "10.00", 100)
	p2 := newProduct(t, products, "B-2", "Azúcar", "4.00", 100)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := uc.Checkout(context.Background(), []entity.CartLine{
				line(p1.ID, 1, "10.00"), line(p2.ID, 1, "4.00"),
			})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := uc.Checkout(context.Background(), []entity.CartLine{
				line(p2.ID, 1, "4.00"), line(p1.ID, 1, "10.00"),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(0), stockOf(t, products, p1.ID))
	assert.Equal(t, int64(0), stockOf(t, products, p2.ID))

	list, err := sales.List(200, 0)
	require.NoError(t, err)
	assert.Len(t, list, 100)
}

// ── Contexto cancelado ───────────────────────────────────────────────────────

func TestCheckout_ContextoCancelado(t *testing.T) {
	products := memory.NewProductStore()
	sales := memory.NewSaleStore()
	uc := newCheckout(products, sales)

	p := newProduct(t, products, "A-1", "Café", "10.00", 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Checkout(ctx, []entity.CartLine{line(p.ID, 1, "10.00")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || errors.Is(err, domain.ErrPersistenceFailed))
	assert.Equal(t, int64(5), stockOf(t, products, p.ID), "un checkout abortado no deja stock descontado")
}
