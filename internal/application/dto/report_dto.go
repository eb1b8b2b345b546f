package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsumptionRow una fila del reporte de consumo: un producto del catálogo,
// con ceros si no tuvo salidas en el rango.
type ConsumptionRow struct {
	ProductID       string          `json:"product_id"`
	Name            string          `json:"name"`
	Code            string          `json:"code"`
	Category        string          `json:"category"`
	TotalConsumed   int64           `json:"total_consumed"`
	TotalValue      decimal.Decimal `json:"total_value"`
	ProceduresCount int             `json:"procedures_count"` // procedimientos distintos
	PatientsCount   int             `json:"patients_count"`   // pacientes distintos
}

// ConsumptionSummary agregados del período.
type ConsumptionSummary struct {
	TotalProcedures   int             `json:"total_procedures"` // todos los creados en el rango
	TotalValue        decimal.Decimal `json:"total_value"`
	AvgValuePerProc   decimal.Decimal `json:"avg_value_per_procedure"` // 0 si no hay procedimientos
	MostUsedProductID string          `json:"most_used_product_id,omitempty"`
	MostUsedProduct   string          `json:"most_used_product,omitempty"`
}

// ConsumptionReport reporte de consumo para [start, end].
type ConsumptionReport struct {
	Start   time.Time          `json:"start"`
	End     time.Time          `json:"end"`
	Rows    []*ConsumptionRow  `json:"rows"`
	Summary ConsumptionSummary `json:"summary"`
}

// InventoryRow una fila del reporte de inventario valorizado.
type InventoryRow struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	Code       string          `json:"code"`
	Category   string          `json:"category"`
	Stock      int64           `json:"stock"`
	MinStock   int64           `json:"min_stock"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	StockValue decimal.Decimal `json:"stock_value"`
	Status     string          `json:"status"` // normal, low_stock, out_of_stock
}

// InventoryReport valorización del catálogo actual (no lee kardex).
type InventoryReport struct {
	GeneratedAt         time.Time       `json:"generated_at"`
	Rows                []*InventoryRow `json:"rows"`
	TotalValue          decimal.Decimal `json:"total_value"`
	LowStockValue       decimal.Decimal `json:"low_stock_value"`
	HighestStockProduct string          `json:"highest_stock_product,omitempty"`
}
