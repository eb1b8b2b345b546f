package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// InitialStock > 0 genera además un movimiento initial_stock.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	Category     string          `json:"category"`
	InitialStock int64           `json:"initial_stock"`
	MinStock     int64           `json:"min_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Lot          string          `json:"lot,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. Lleva el juego completo
// de atributos, incluido el nuevo stock; el delta de stock genera un movimiento
// manual_edit.
type UpdateProductRequest struct {
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	Category  string          `json:"category"`
	Stock     int64           `json:"stock"`
	MinStock  int64           `json:"min_stock"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Lot       string          `json:"lot,omitempty"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Code       string          `json:"code"`
	Category   string          `json:"category"`
	Stock      int64           `json:"stock"`
	MinStock   int64           `json:"min_stock"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Lot        string          `json:"lot,omitempty"`
	StockValue decimal.Decimal `json:"stock_value"`
	Status     string          `json:"status"` // normal, low_stock, out_of_stock
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Products []*ProductResponse `json:"products"`
	Page     PageResponse       `json:"page"`
}
