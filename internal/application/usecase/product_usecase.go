package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ProductUseCase casos de uso de catálogo: crear, consultar, listar, buscar y
// actualizar productos. El stock solo se fija al crear; Update no lo toca.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create valida y persiste un producto nuevo con su stock inicial.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" || in.Price.IsNegative() || in.StockQty < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      name,
		Price:     in.Price,
		StockQty:  in.StockQty,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(p), nil
}

// GetByID devuelve el producto o nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(p), nil
}

// List devuelve una página de productos.
func (uc *ProductUseCase) List(page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return dto.NewProductListResponse(list, dto.PageResponse{Limit: page.Limit, Offset: page.Offset}), nil
}

// Search busca por nombre o código.
func (uc *ProductUseCase) Search(query string, limit int) (*dto.ProductListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return &dto.ProductListResponse{Items: []dto.ProductResponse{}}, nil
	}
	list, err := uc.repo.Search(query, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewProductListResponse(list, dto.PageResponse{Limit: limit}), nil
}

// Update aplica cambios parciales (código, nombre, precio). Nunca el stock:
// esa mutación solo existe a través del ledger durante el checkout.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Code = code
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = name
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.Price = *in.Price
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(p), nil
}
