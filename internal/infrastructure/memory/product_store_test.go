package memory_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
)

func seedProduct(t *testing.T, store *memory.ProductStore, code, name string, stock int64) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      name,
		Price:     decimal.RequireFromString("10.00"),
		StockQty:  stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.Create(p))
	return p
}

// ── Reserve / Release ────────────────────────────────────────────────────────

func TestProductStore_ReserveDescuentaYDevuelveRestante(t *testing.T) {
	store := memory.NewProductStore()
	p := seedProduct(t, store, "A-1", "Café", 10)

	remaining, err := store.Reserve(context.Background(), p.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), remaining)

	got, err := store.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), got.StockQty)
}

func TestProductStore_ReserveStockInsuficiente(t *testing.T) {
	store := memory.NewProductStore()
	p := seedProduct(t, store, "A-1", "Café", 3)

	_, err := store.Reserve(context.Background(), p.ID, 4)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := store.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.StockQty, "una reserva rechazada no descuenta nada")
}

func TestProductStore_ReserveProductoInexistente(t *testing.T) {
	store := memory.NewProductStore()
	_, err := store.Reserve(context.Background(), "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductStore_ReserveCantidadInvalida(t *testing.T) {
	store := memory.NewProductStore()
	p := seedProduct(t, store, "A-1", "Café", 3)

	_, err := store.Reserve(context.Background(), p.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = store.Reserve(context.Background(), p.ID, -2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductStore_ReleaseRestaura(t *testing.T) {
	store := memory.NewProductStore()
	p := seedProduct(t, store, "A-1", "Café", 10)

	_, err := store.Reserve(context.Background(), p.ID, 7)
	require.NoError(t, err)
	require.NoError(t, store.Release(context.Background(), p.ID, 7))

	got, err := store.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.StockQty)
}

// El invariante central: bajo cualquier concurrencia, la cantidad nunca queda
// negativa y la suma de descuentos exitosos nunca excede el stock inicial.
func TestProductStore_ReserveConcurrenteNoNegativo(t *testing.T) {
	store := memory.NewProductStore()
	const initial = 100
	p := seedProduct(t, store, "A-1", "Café", initial)

	var granted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 250; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Reserve(context.Background(), p.ID, 1); err == nil {
				granted.Add(1)
			}
		}()
	}
	wg.Wait()

	got, err := store.GetByID(p.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got.StockQty, int64(0), "el stock nunca puede quedar negativo")
	assert.Equal(t, int64(initial), granted.Load(), "con 250 intentos de 1 unidad deben otorgarse exactamente 100")
	assert.Equal(t, int64(0), got.StockQty)
}

// ── CRUD del catálogo ────────────────────────────────────────────────────────

func TestProductStore_CreateCodigoDuplicado(t *testing.T) {
	store := memory.NewProductStore()
	seedProduct(t, store, "A-1", "Café", 5)

	now := time.Now()
	err := store.Create(&entity.Product{
		ID:        uuid.New().String(),
		Code:      "A-1",
		Name:      "Otro",
		Price:     decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductStore_GetByIDDevuelveCopia(t *testing.T) {
	store := memory.NewProductStore()
	p := seedProduct(t, store, "A-1", "Café", 5)

	got, err := store.GetByID(p.ID)
	require.NoError(t, err)
	got.StockQty = 999 // mutar la copia no debe tocar el almacén

	again, err := store.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), again.StockQty)
}

func TestProductStore_UpdateNoTocaStock(t *testing.T) {
	store := memory.NewProductStore()
	p := seedProduct(t, store, "A-1", "Café", 5)

	upd := *p
	upd.Name = "Café Premium"
	upd.Price = decimal.RequireFromString("12.50")
	upd.StockQty = 999 // debe ser ignorado: solo el ledger mueve stock
	upd.UpdatedAt = time.Now()
	require.NoError(t, store.Update(&upd))

	got, err := store.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Café Premium", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, int64(5), got.StockQty)
}

func TestProductStore_GetByCode(t *testing.T) {
	store := memory.NewProductStore()
	p := seedProduct(t, store, "A-1", "Café", 5)

	got, err := store.GetByCode("A-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)

	missing, err := store.GetByCode("Z-9")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductStore_SearchIgnoraTildesYMayusculas(t *testing.T) {
	store := memory.NewProductStore()
	seedProduct(t, store, "A-1", "Café Orgánico", 5)
	seedProduct(t, store, "B-2", "Azúcar", 5)

	out, err := store.Search("cafe", 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Café Orgánico", out[0].Name)

	out, err = store.Search("AZUCAR", 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Azúcar", out[0].Name)

	// También matchea por código
	out, err = store.Search("b-2", 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestProductStore_ListPaginado(t *testing.T) {
	store := memory.NewProductStore()
	for i := 0; i < 5; i++ {
		seedProduct(t, store, string(rune('A'+i))+"-1", "Producto", 1)
	}

	page1, err := store.List(2, 0)
	require.NoError(t, err)
	assert.Len(t, page1, 2)

	page3, err := store.List(2, 4)
	require.NoError(t, err)
	assert.Len(t, page3, 1)

	empty, err := store.List(2, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
