package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo del punto de venta.
// StockQty es la cantidad disponible; invariante StockQty >= 0, y solo se
// modifica a través del StockLedger (reserva atómica) — nunca por Update.
type Product struct {
	ID        string
	Code      string // código único (de barras o interno)
	Name      string
	Price     decimal.Decimal // precio de venta unitario, >= 0
	StockQty  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
