package entity

import "time"

// Estados de un procedimiento NPWT.
const (
	ProcedureActive    = "active"
	ProcedureCompleted = "completed"
	ProcedureCancelled = "cancelled"
)

// Procedure representa una terapia de presión negativa instalada a un paciente
// con una máquina. Mientras está en estado active es la única vía válida de
// consumo de insumos y marca la máquina como "en uso".
type Procedure struct {
	ID        string
	PatientID string
	MachineID string
	Surgeon   string
	Assistant string
	Date      time.Time
	StartTime string // HH:MM
	EndTime   string // HH:MM, vacío mientras está activo
	Diagnosis string
	Location  string // ubicación anatómica de la herida
	Status    string // active, completed, cancelled
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProcedureProduct registra el consumo de un insumo dentro de un procedimiento.
// Se crea junto con el Movement de kind=procedure, en la misma transacción.
type ProcedureProduct struct {
	ID          string
	ProcedureID string
	ProductID   string
	Quantity    int64
	CreatedAt   time.Time
}
