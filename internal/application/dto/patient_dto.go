package dto

import "time"

// CreatePatientRequest body para POST /api/patients.
type CreatePatientRequest struct {
	Name      string `json:"name"`
	Document  string `json:"document"`
	Age       int    `json:"age,omitempty"`
	Diagnosis string `json:"diagnosis,omitempty"`
}

// UpdatePatientRequest body para PUT /api/patients/:id (campos opcionales).
type UpdatePatientRequest struct {
	Name      *string `json:"name,omitempty"`
	Document  *string `json:"document,omitempty"`
	Age       *int    `json:"age,omitempty"`
	Diagnosis *string `json:"diagnosis,omitempty"`
}

// PatientResponse representación HTTP de un paciente.
type PatientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Age       int       `json:"age,omitempty"`
	Diagnosis string    `json:"diagnosis,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
