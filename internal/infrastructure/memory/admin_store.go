package memory

import (
	"sync"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.AdminRepository = (*AdminStore)(nil)

// AdminStore persistencia de administradores en memoria (modo development).
type AdminStore struct {
	mu      sync.RWMutex
	byID    map[string]*entity.Admin
	byEmail map[string]string
}

// NewAdminStore construye el almacén vacío.
func NewAdminStore() *AdminStore {
	return &AdminStore{byID: make(map[string]*entity.Admin), byEmail: make(map[string]string)}
}

// Create guarda un administrador; ErrEmailAlreadyExists si el email ya está.
func (s *AdminStore) Create(admin *entity.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[admin.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	a := *admin
	s.byID[a.ID] = &a
	s.byEmail[a.Email] = a.ID
	return nil
}

// GetByEmail devuelve una copia o nil si no existe.
func (s *AdminStore) GetByEmail(email string) (*entity.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, nil
	}
	a := *s.byID[id]
	return &a, nil
}

// GetByID devuelve una copia o nil si no existe.
func (s *AdminStore) GetByID(id string) (*entity.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	admin, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	a := *admin
	return &a, nil
}
