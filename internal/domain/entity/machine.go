package entity

import "time"

// Estados operativos de una máquina. "En uso" no es un estado almacenado:
// se deriva de la existencia de un procedimiento active que la referencie.
const (
	MachineActive      = "active"
	MachineMaintenance = "maintenance"
	MachineInactive    = "inactive"
)

// Machine representa un equipo de terapia de presión negativa.
type Machine struct {
	ID        string
	Name      string
	Serial    string
	Status    string // active, maintenance, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
