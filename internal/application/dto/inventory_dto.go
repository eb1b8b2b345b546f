package dto

import "time"

// StockEntryItem un renglón del ingreso masivo de stock.
type StockEntryItem struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"` // <= 0 se omite sin error
	Reason    string `json:"reason,omitempty"`
}

// StockEntryRequest body para POST /api/inventory/entries.
type StockEntryRequest struct {
	Items []StockEntryItem `json:"items"`
}

// StockEntryFailure un producto cuyo par (stock, movimiento) no pudo aplicarse.
type StockEntryFailure struct {
	ProductID string `json:"product_id"`
	Error     string `json:"error"`
}

// StockEntryResult resultado del ingreso masivo: best-effort entre productos,
// atómico por producto. Failed no vacío implica aplicación parcial del batch.
type StockEntryResult struct {
	Applied []string            `json:"applied"` // ids con stock y kardex escritos
	Skipped []string            `json:"skipped"` // ids omitidos por cantidad <= 0
	Failed  []StockEntryFailure `json:"failed"`
}

// MovementResponse una fila del kardex para la vista de historial.
// Note llega enriquecida con el nombre actual del paciente para movimientos de
// procedimiento; el texto almacenado no se modifica.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Direction string    `json:"direction"` // in, out
	Quantity  int64     `json:"quantity"`  // siempre magnitud positiva
	RefKind   string    `json:"ref_kind"`
	RefID     string    `json:"ref_id,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MovementHistorySummary panel resumen sobre la ventana consultada.
// CurrentStock viene del catálogo, no se recalcula de la ventana (que puede
// ser un subconjunto del historial).
type MovementHistorySummary struct {
	TotalIn      int64 `json:"total_in"`
	TotalOut     int64 `json:"total_out"`
	CurrentStock int64 `json:"current_stock"`
}

// MovementHistoryResponse historial de un producto (hasta 50 filas recientes).
type MovementHistoryResponse struct {
	ProductID   string                 `json:"product_id"`
	ProductName string                 `json:"product_name"`
	Movements   []*MovementResponse    `json:"movements"`
	Summary     MovementHistorySummary `json:"summary"`
}
