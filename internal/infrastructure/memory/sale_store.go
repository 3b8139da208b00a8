package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleStore)(nil)

// SaleStore persistencia append-only de ventas en memoria.
// Los lectores reciben copias: una venta es inmutable después de Append.
type SaleStore struct {
	mu    sync.RWMutex
	byID  map[string]*entity.Sale
	order []string // orden de inserción; List recorre al revés (reciente primero)
}

// NewSaleStore construye el almacén vacío.
func NewSaleStore() *SaleStore {
	return &SaleStore{byID: make(map[string]*entity.Sale)}
}

// Append guarda una venta nueva y devuelve su ID asignado.
func (s *SaleStore) Append(ctx context.Context, sale *entity.Sale) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if _, ok := s.byID[sale.ID]; ok {
		return "", domain.ErrDuplicate
	}
	s.byID[sale.ID] = copySale(sale)
	s.order = append(s.order, sale.ID)
	return sale.ID, nil
}

// GetByID devuelve la venta o domain.ErrNotFound.
func (s *SaleStore) GetByID(id string) (*entity.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sale, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copySale(sale), nil
}

// List devuelve ventas paginadas, la más reciente primero.
func (s *SaleStore) List(limit, offset int) ([]*entity.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.Sale
	for i := len(s.order) - 1 - offset; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, copySale(s.byID[s.order[i]]))
	}
	return out, nil
}

func copySale(in *entity.Sale) *entity.Sale {
	out := *in
	out.Items = make([]entity.SaleLineItem, len(in.Items))
	copy(out.Items, in.Items)
	return &out
}
