package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrEmptyCart          = errors.New("el carrito está vacío")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrPersistenceFailed  = errors.New("no se pudo registrar la venta")
)

// ProductError asocia un error de dominio al producto que lo causó.
// El checkout lo usa para que el caller sepa exactamente qué producto
// falló (ErrInsufficientStock o ErrNotFound) y pueda mostrar un mensaje preciso.
type ProductError struct {
	ProductID string
	Err       error
}

func (e *ProductError) Error() string {
	return fmt.Sprintf("producto %s: %v", e.ProductID, e.Err)
}

// Unwrap permite errors.Is contra los sentinelas (ErrInsufficientStock, etc.).
func (e *ProductError) Unwrap() error { return e.Err }

// NewProductError construye un ProductError.
func NewProductError(productID string, err error) *ProductError {
	return &ProductError{ProductID: productID, Err: err}
}
