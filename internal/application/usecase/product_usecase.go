package usecase

import (
	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/domain/entity"
	domaininv "github.com/clinivac/npwt-inventario/internal/domain/inventory"
	"github.com/clinivac/npwt-inventario/internal/domain/repository"
)

// ProductUseCase lecturas de catálogo de productos. Las escrituras (crear,
// editar, stock) viven en application/inventory porque mutan el kardex.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{
		Products: make([]*dto.ProductResponse, 0, len(list)),
		Page:     dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, p := range list {
		resp.Products = append(resp.Products, toProductResponse(p))
	}
	return resp, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Code:       p.Code,
		Category:   p.Category,
		Stock:      p.Stock,
		MinStock:   p.MinStock,
		UnitPrice:  p.UnitPrice,
		Lot:        p.Lot,
		StockValue: p.StockValue(),
		Status:     domaininv.StockStatus(p),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
