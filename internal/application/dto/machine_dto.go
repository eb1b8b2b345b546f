package dto

import "time"

// CreateMachineRequest body para POST /api/machines.
type CreateMachineRequest struct {
	Name   string `json:"name"`
	Serial string `json:"serial"`
}

// UpdateMachineRequest body para PUT /api/machines/:id.
type UpdateMachineRequest struct {
	Name   *string `json:"name,omitempty"`
	Serial *string `json:"serial,omitempty"`
	Status *string `json:"status,omitempty"` // active, maintenance, inactive
}

// MachineResponse representación HTTP de una máquina. InUse se deriva de la
// existencia de un procedimiento activo, no es un campo almacenado.
type MachineResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Serial    string    `json:"serial"`
	Status    string    `json:"status"`
	InUse     bool      `json:"in_use"`
	CreatedAt time.Time `json:"created_at"`
}
