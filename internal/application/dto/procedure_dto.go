package dto

import "time"

// CreateProcedureRequest body para POST /api/procedures.
type CreateProcedureRequest struct {
	PatientID string    `json:"patient_id"`
	MachineID string    `json:"machine_id"`
	Surgeon   string    `json:"surgeon"`
	Assistant string    `json:"assistant,omitempty"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	Diagnosis string    `json:"diagnosis,omitempty"`
	Location  string    `json:"location,omitempty"`
}

// ConsumeItem un insumo a consumir dentro de un procedimiento activo.
type ConsumeItem struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"` // > 0
}

// ConsumeRequest body para POST /api/procedures/:id/products.
// El batch es todo-o-nada: un faltante de stock bloquea el conjunto completo.
type ConsumeRequest struct {
	Items []ConsumeItem `json:"items"`
}

// CloseProcedureRequest body para POST /api/procedures/:id/close.
type CloseProcedureRequest struct {
	EndTime string `json:"end_time,omitempty"` // HH:MM
}

// ProcedureResponse representación HTTP de un procedimiento.
type ProcedureResponse struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	MachineID string    `json:"machine_id"`
	Surgeon   string    `json:"surgeon"`
	Assistant string    `json:"assistant,omitempty"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time,omitempty"`
	Diagnosis string    `json:"diagnosis,omitempty"`
	Location  string    `json:"location,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ProcedureProductResponse consumo registrado en un procedimiento.
type ProcedureProductResponse struct {
	ProductID string    `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}
