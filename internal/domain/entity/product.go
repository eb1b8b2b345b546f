package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de insumo NPWT.
const (
	CategoryAposito    = "aposito"
	CategoryCanister   = "canister"
	CategoryTubuladura = "tubuladura"
	CategorySellante   = "sellante"
	CategoryOtro       = "otro"
)

// Product representa un insumo del inventario de terapia de presión negativa.
// Stock es un campo denormalizado: el valor autoritativo es la suma firmada del
// kardex de movimientos; toda escritura de Stock debe ir acompañada de un
// Movement en la misma transacción.
type Product struct {
	ID        string
	Name      string
	Code      string // único, normalizado a mayúsculas
	Category  string
	Stock     int64
	MinStock  int64           // umbral de stock bajo
	UnitPrice decimal.Decimal // precio unitario vigente
	Lot       string          // lote/batch
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockValue devuelve el valor del stock actual (stock × precio unitario).
func (p *Product) StockValue() decimal.Decimal {
	return decimal.NewFromInt(p.Stock).Mul(p.UnitPrice)
}
