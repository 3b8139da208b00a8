package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// AdminRepository puerto de persistencia de administradores.
type AdminRepository interface {
	Create(admin *entity.Admin) error
	GetByEmail(email string) (*entity.Admin, error)
	GetByID(id string) (*entity.Admin, error)
}
