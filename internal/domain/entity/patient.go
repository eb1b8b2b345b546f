package entity

import "time"

// Estados de un paciente en el programa NPWT.
const (
	PatientActive    = "active"
	PatientCompleted = "completed"
)

// Patient representa un paciente en tratamiento de presión negativa.
type Patient struct {
	ID        string
	Name      string
	Document  string // documento de identidad
	Age       int
	Diagnosis string
	Status    string // active, completed
	CreatedAt time.Time
	UpdatedAt time.Time
}
