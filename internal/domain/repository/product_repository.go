package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// ProductRepository puerto de catálogo (lecturas y gestión de productos).
// El write path de stock NO pasa por aquí: Update nunca toca StockQty.
// La única mutación de cantidad disponible es StockLedger.Reserve/Release.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	Search(query string, limit int) ([]*entity.Product, error)
}
