package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.AdminRepository = (*AdminRepo)(nil)

// AdminRepo implementación de AdminRepository sobre PostgreSQL.
type AdminRepo struct {
	q Querier
}

// NewAdminRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdminRepository(q Querier) *AdminRepo {
	return &AdminRepo{q: q}
}

// Create persiste un administrador nuevo.
func (r *AdminRepo) Create(admin *entity.Admin) error {
	query := `
		INSERT INTO admins (id, email, password_hash, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		admin.ID, admin.Email, admin.PasswordHash, admin.Name, admin.CreatedAt, admin.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// GetByEmail obtiene un administrador por email; nil si no existe.
func (r *AdminRepo) GetByEmail(email string) (*entity.Admin, error) {
	return r.get(`SELECT id, email, password_hash, name, created_at, updated_at FROM admins WHERE email = $1`, email)
}

// GetByID obtiene un administrador por ID; nil si no existe.
func (r *AdminRepo) GetByID(id string) (*entity.Admin, error) {
	return r.get(`SELECT id, email, password_hash, name, created_at, updated_at FROM admins WHERE id = $1`, id)
}

func (r *AdminRepo) get(query, arg string) (*entity.Admin, error) {
	var a entity.Admin
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &a, nil
}
