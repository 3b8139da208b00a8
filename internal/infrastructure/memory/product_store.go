package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/search"
)

var _ repository.ProductRepository = (*ProductStore)(nil)
var _ repository.StockLedger = (*ProductStore)(nil)

// ProductStore catálogo y ledger de stock en memoria (modo development y tests).
// El candado de reserva es POR PRODUCTO y se sostiene solo durante el
// check-and-decrement, así dos checkouts sin productos en común nunca se
// serializan entre sí.
type ProductStore struct {
	mu     sync.RWMutex // protege el mapa y el índice por código, no las cantidades
	slots  map[string]*productSlot
	byCode map[string]string // code -> id
}

type productSlot struct {
	mu sync.Mutex // serializa Reserve/Release de este producto
	p  entity.Product
}

// NewProductStore construye el almacén vacío.
func NewProductStore() *ProductStore {
	return &ProductStore{
		slots:  make(map[string]*productSlot),
		byCode: make(map[string]string),
	}
}

// Reserve verifica y descuenta en el mismo paso atómico, bajo el candado del
// producto. Nunca deja la cantidad negativa.
func (s *ProductStore) Reserve(ctx context.Context, productID string, qty int64) (int64, error) {
	if qty <= 0 {
		return 0, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	slot := s.slot(productID)
	if slot == nil {
		return 0, domain.ErrNotFound
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.p.StockQty < qty {
		return 0, domain.ErrInsufficientStock
	}
	slot.p.StockQty -= qty
	return slot.p.StockQty, nil
}

// Release devuelve una reserva otorgada (rollback compensatorio).
func (s *ProductStore) Release(ctx context.Context, productID string, qty int64) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	slot := s.slot(productID)
	if slot == nil {
		return domain.ErrNotFound
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	slot.p.StockQty += qty
	return nil
}

// Create agrega un producto; ErrDuplicate si el código ya existe.
func (s *ProductStore) Create(product *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.slots[product.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := s.byCode[product.Code]; ok {
		return domain.ErrDuplicate
	}
	s.slots[product.ID] = &productSlot{p: *product}
	s.byCode[product.Code] = product.ID
	return nil
}

// GetByID devuelve una copia del producto; nil si no existe.
func (s *ProductStore) GetByID(id string) (*entity.Product, error) {
	slot := s.slot(id)
	if slot == nil {
		return nil, nil
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	p := slot.p
	return &p, nil
}

// GetByCode devuelve una copia del producto por código; nil si no existe.
func (s *ProductStore) GetByCode(code string) (*entity.Product, error) {
	s.mu.RLock()
	id, ok := s.byCode[code]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return s.GetByID(id)
}

// Update reemplaza código, nombre y precio; nunca StockQty (solo el ledger lo toca).
func (s *ProductStore) Update(product *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if otherID, taken := s.byCode[product.Code]; taken && otherID != product.ID {
		return domain.ErrDuplicate
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	delete(s.byCode, slot.p.Code)
	slot.p.Code = product.Code
	slot.p.Name = product.Name
	slot.p.Price = product.Price
	slot.p.UpdatedAt = product.UpdatedAt
	s.byCode[product.Code] = product.ID
	return nil
}

// List devuelve productos paginados, los más recientes primero.
func (s *ProductStore) List(limit, offset int) ([]*entity.Product, error) {
	all := s.snapshot()
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	return page(all, limit, offset), nil
}

// Search busca por nombre o código, sin distinguir mayúsculas ni tildes.
func (s *ProductStore) Search(query string, limit int) ([]*entity.Product, error) {
	all := s.snapshot()
	var out []*entity.Product
	for _, p := range all {
		if search.Matches(query, p.Name, p.Code) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *ProductStore) slot(id string) *productSlot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots[id]
}

func (s *ProductStore) snapshot() []*entity.Product {
	s.mu.RLock()
	slots := make([]*productSlot, 0, len(s.slots))
	for _, slot := range s.slots {
		slots = append(slots, slot)
	}
	s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(slots))
	for _, slot := range slots {
		slot.mu.Lock()
		p := slot.p
		slot.mu.Unlock()
		out = append(out, &p)
	}
	return out
}

func page(list []*entity.Product, limit, offset int) []*entity.Product {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}
