package reports

import (
	"context"
	"time"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	domaininv "github.com/clinivac/npwt-inventario/internal/domain/inventory"
	"github.com/clinivac/npwt-inventario/internal/domain/repository"
	"github.com/clinivac/npwt-inventario/pkg/logger"
)

// InventoryUseCase valoriza el catálogo actual. No lee el kardex: trabaja solo
// sobre el stock denormalizado y el precio vigente de cada producto.
type InventoryUseCase struct {
	productRepo repository.ProductRepository
	cache       Cache // puede ser nil (cache deshabilitado)
	log         *logger.Logger
}

// NewInventoryUseCase construye el caso de uso. cache nil deshabilita el cacheo.
func NewInventoryUseCase(productRepo repository.ProductRepository, cache Cache, log *logger.Logger) *InventoryUseCase {
	return &InventoryUseCase{productRepo: productRepo, cache: cache, log: log}
}

// GetInventoryReport genera el reporte de inventario valorizado. Sirve desde
// cache si hay una copia fresca; el miss o cualquier fallo de cache cae a la
// lectura de catálogo.
func (uc *InventoryUseCase) GetInventoryReport(ctx context.Context) (*dto.InventoryReport, error) {
	if uc.cache != nil {
		if report, ok := uc.cache.GetInventoryReport(ctx); ok {
			return report, nil
		}
	}

	catalog, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, err
	}

	valuation := domaininv.Valuate(catalog)
	report := &dto.InventoryReport{
		GeneratedAt:   time.Now(),
		Rows:          make([]*dto.InventoryRow, 0, len(catalog)),
		TotalValue:    valuation.TotalValue,
		LowStockValue: valuation.LowStockValue,
	}
	if valuation.HighestStock != nil {
		report.HighestStockProduct = valuation.HighestStock.Name
	}
	for _, p := range catalog {
		report.Rows = append(report.Rows, &dto.InventoryRow{
			ProductID:  p.ID,
			Name:       p.Name,
			Code:       p.Code,
			Category:   p.Category,
			Stock:      p.Stock,
			MinStock:   p.MinStock,
			UnitPrice:  p.UnitPrice,
			StockValue: p.StockValue(),
			Status:     domaininv.StockStatus(p),
		})
	}

	if uc.cache != nil {
		uc.cache.SetInventoryReport(ctx, report)
	}
	return report, nil
}

// ListBelowMinimum devuelve los productos con stock en o bajo el mínimo,
// delegando el corte al almacén (consulta agregada del lado del servidor).
func (uc *InventoryUseCase) ListBelowMinimum(ctx context.Context) ([]*dto.InventoryRow, error) {
	products, err := uc.productRepo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]*dto.InventoryRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, &dto.InventoryRow{
			ProductID:  p.ID,
			Name:       p.Name,
			Code:       p.Code,
			Category:   p.Category,
			Stock:      p.Stock,
			MinStock:   p.MinStock,
			UnitPrice:  p.UnitPrice,
			StockValue: p.StockValue(),
			Status:     domaininv.StockStatus(p),
		})
	}
	return rows, nil
}
