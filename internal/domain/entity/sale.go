package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineItem es una línea de una venta finalizada.
// Total = UnitPrice * Quantity, calculado una sola vez en el checkout.
type SaleLineItem struct {
	ProductID string
	Name      string // nombre del producto al momento de la venta
	UnitPrice decimal.Decimal
	Quantity  int64
	Total     decimal.Decimal
}

// Sale representa una venta finalizada. Se crea exactamente una vez, de forma
// atómica, al final de un checkout exitoso; inmutable después — no hay
// actualización ni borrado. Invariante: TotalAmount == suma de los Total de
// sus líneas.
type Sale struct {
	ID          string
	Items       []SaleLineItem
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}
