package reports_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/application/reports"
	"github.com/clinivac/npwt-inventario/internal/domain/entity"
	"github.com/clinivac/npwt-inventario/pkg/logger"
)

type stubCache struct {
	stored *dto.InventoryReport
	hits   int
	sets   int
}

func (s *stubCache) GetInventoryReport(context.Context) (*dto.InventoryReport, bool) {
	if s.stored == nil {
		return nil, false
	}
	s.hits++
	return s.stored, true
}

func (s *stubCache) SetInventoryReport(_ context.Context, report *dto.InventoryReport) {
	s.stored = report
	s.sets++
}

func newInventoryUC(products []*entity.Product, cache reports.Cache) *reports.InventoryUseCase {
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return reports.NewInventoryUseCase(&stubProductRepo{catalog: products}, cache, log)
}

func TestInventoryReport_ValorizaYClasifica(t *testing.T) {
	products := []*entity.Product{
		{ID: "p1", Name: "Apósito", Code: "AP-1", Category: entity.CategoryAposito,
			Stock: 10, MinStock: 3, UnitPrice: decimal.RequireFromString("1500")},
		{ID: "p2", Name: "Canister", Code: "CA-1", Category: entity.CategoryCanister,
			Stock: 2, MinStock: 5, UnitPrice: decimal.RequireFromString("8000")},
		{ID: "p3", Name: "Sellante", Code: "SE-1", Category: entity.CategorySellante,
			Stock: 0, MinStock: 1, UnitPrice: decimal.RequireFromString("3000")},
	}

	out, err := newInventoryUC(products, nil).GetInventoryReport(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Rows, 3)

	assert.Equal(t, "normal", out.Rows[0].Status)
	assert.Equal(t, "low_stock", out.Rows[1].Status)
	assert.Equal(t, "out_of_stock", out.Rows[2].Status)
	assert.True(t, out.Rows[0].StockValue.Equal(decimal.RequireFromString("15000")))

	// 15000 + 16000 + 0
	assert.True(t, out.TotalValue.Equal(decimal.RequireFromString("31000")))
	// Solo p2 y p3 están en o bajo el mínimo.
	assert.True(t, out.LowStockValue.Equal(decimal.RequireFromString("16000")))
	assert.Equal(t, "Apósito", out.HighestStockProduct)
}

func TestInventoryReport_CatalogoVacio(t *testing.T) {
	out, err := newInventoryUC(nil, nil).GetInventoryReport(context.Background())
	require.NoError(t, err)

	assert.Empty(t, out.Rows)
	assert.True(t, out.TotalValue.IsZero())
	assert.Empty(t, out.HighestStockProduct)
}

func TestInventoryReport_CacheMissLuegoHit(t *testing.T) {
	products := []*entity.Product{
		{ID: "p1", Name: "Apósito", Code: "AP-1", Category: entity.CategoryAposito,
			Stock: 4, MinStock: 2, UnitPrice: decimal.RequireFromString("1000")},
	}
	cache := &stubCache{}
	uc := newInventoryUC(products, cache)

	first, err := uc.GetInventoryReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets, "el miss genera y guarda")
	assert.Equal(t, 0, cache.hits)

	second, err := uc.GetInventoryReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits, "la segunda lectura sale del cache")
	assert.Equal(t, 1, cache.sets, "un hit no vuelve a escribir")
	assert.Equal(t, first.GeneratedAt, second.GeneratedAt)
}

func TestInventoryReport_BajoMinimo(t *testing.T) {
	products := []*entity.Product{
		{ID: "p1", Name: "Apósito", Stock: 10, MinStock: 3, UnitPrice: decimal.RequireFromString("1000")},
		{ID: "p2", Name: "Canister", Stock: 2, MinStock: 5, UnitPrice: decimal.RequireFromString("8000")},
	}

	rows, err := newInventoryUC(products, nil).ListBelowMinimum(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "p2", rows[0].ProductID)
	assert.Equal(t, "low_stock", rows[0].Status)
}
