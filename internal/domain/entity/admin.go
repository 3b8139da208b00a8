package entity

import "time"

// Admin representa un administrador del punto de venta (gestión de catálogo).
type Admin struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
