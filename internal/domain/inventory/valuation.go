package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/clinivac/npwt-inventario/internal/domain/entity"
)

// Estados de stock de un producto (servicio de dominio, sin lectura de kardex).
const (
	StatusNormal     = "normal"
	StatusLowStock   = "low_stock"
	StatusOutOfStock = "out_of_stock"
)

// StockStatus clasifica el producto según stock actual vs stock mínimo.
// out_of_stock si stock == 0; low_stock si stock <= mínimo; normal en otro caso.
func StockStatus(p *entity.Product) string {
	switch {
	case p.Stock <= 0:
		return StatusOutOfStock
	case p.Stock <= p.MinStock:
		return StatusLowStock
	default:
		return StatusNormal
	}
}

// Valuation resultado de valorizar un catálogo completo.
type Valuation struct {
	TotalValue    decimal.Decimal // Σ stock × precio
	LowStockValue decimal.Decimal // Σ sobre productos low/out
	HighestStock  *entity.Product // argmax de stock; nil con catálogo vacío
}

// Valuate calcula los agregados de valorización sobre el catálogo actual.
// Función pura: no toca el kardex.
func Valuate(products []*entity.Product) Valuation {
	v := Valuation{TotalValue: decimal.Zero, LowStockValue: decimal.Zero}
	for _, p := range products {
		value := p.StockValue()
		v.TotalValue = v.TotalValue.Add(value)
		if s := StockStatus(p); s != StatusNormal {
			v.LowStockValue = v.LowStockValue.Add(value)
		}
		if v.HighestStock == nil || p.Stock > v.HighestStock.Stock {
			v.HighestStock = p
		}
	}
	return v
}
