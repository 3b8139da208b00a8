package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
)

func sampleSale(n int) *entity.Sale {
	price := decimal.RequireFromString("10.00")
	return &entity.Sale{
		Items: []entity.SaleLineItem{{
			ProductID: fmt.Sprintf("prod-%d", n),
			Name:      fmt.Sprintf("Producto %d", n),
			UnitPrice: price,
			Quantity:  1,
			Total:     price,
		}},
		TotalAmount: price,
		CreatedAt:   time.Now(),
	}
}

func TestSaleStore_AppendAsignaIDYGetEsIdempotente(t *testing.T) {
	store := memory.NewSaleStore()

	id, err := store.Append(context.Background(), sampleSale(1))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	s1, err := store.GetByID(id)
	require.NoError(t, err)
	s2, err := store.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, s1, s2, "leer la misma venta dos veces devuelve lo mismo")
	assert.Equal(t, id, s1.ID)
}

func TestSaleStore_GetInexistente(t *testing.T) {
	store := memory.NewSaleStore()
	_, err := store.GetByID("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleStore_AppendIDRepetido(t *testing.T) {
	store := memory.NewSaleStore()

	s := sampleSale(1)
	s.ID = "venta-1"
	_, err := store.Append(context.Background(), s)
	require.NoError(t, err)

	dup := sampleSale(2)
	dup.ID = "venta-1"
	_, err = store.Append(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSaleStore_ListRecientePrimero(t *testing.T) {
	store := memory.NewSaleStore()

	var ids []string
	for i := 0; i < 5; i++ {
		id, err := store.Append(context.Background(), sampleSale(i))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	out, err := store.List(10, 0)
	require.NoError(t, err)
	require.Len(t, out, 5)
	for i, s := range out {
		assert.Equal(t, ids[len(ids)-1-i], s.ID, "la venta más reciente va primero")
	}

	// Paginación sobre el mismo orden.
	page, err := store.List(2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].ID)
	assert.Equal(t, ids[1], page[1].ID)
}

func TestSaleStore_VentaInmutableTrasAppend(t *testing.T) {
	store := memory.NewSaleStore()

	original := sampleSale(1)
	id, err := store.Append(context.Background(), original)
	require.NoError(t, err)

	// Ni mutar lo que se pasó a Append ni mutar lo leído afecta al almacén.
	original.Items[0].Quantity = 999
	got, err := store.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Items[0].Quantity)

	got.Items[0].Quantity = 555
	again, err := store.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.Items[0].Quantity)
}

func TestSaleStore_AppendConContextoCancelado(t *testing.T) {
	store := memory.NewSaleStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Append(ctx, sampleSale(1))
	assert.ErrorIs(t, err, context.Canceled)

	out, err := store.List(10, 0)
	require.NoError(t, err)
	assert.Empty(t, out)
}
