package usecase

import (
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// SaleUseCase lado de lectura del historial de ventas. La escritura de ventas
// existe únicamente en el checkout; aquí no hay update ni delete.
type SaleUseCase struct {
	repo repository.SaleRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(repo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{repo: repo}
}

// GetByID devuelve una venta; domain.ErrNotFound si no existe.
func (uc *SaleUseCase) GetByID(id string) (*dto.SaleResponse, error) {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return dto.NewSaleResponse(s), nil
}

// List devuelve una página de ventas, la más reciente primero.
func (uc *SaleUseCase) List(page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return dto.NewSaleListResponse(list, dto.PageResponse{Limit: page.Limit, Offset: page.Offset}), nil
}
