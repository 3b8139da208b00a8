package entity

import "github.com/shopspring/decimal"

// CartLine es una línea de carrito tal como la envía el caller al checkout.
// Es efímera: no se persiste. UnitPrice es el precio que vio el cliente al
// agregar la línea; el checkout totaliza con este precio, no con el del
// catálogo en ese instante.
type CartLine struct {
	ProductID string
	Quantity  int64           // >= 1
	UnitPrice decimal.Decimal // >= 0
}
