package repository

import "github.com/clinivac/npwt-inventario/internal/domain/entity"

// MachineRepository define el puerto de persistencia para Machine (DIP).
type MachineRepository interface {
	Create(machine *entity.Machine) error
	GetByID(id string) (*entity.Machine, error)
	Update(machine *entity.Machine) error
	List(limit, offset int) ([]*entity.Machine, error)
	CountByStatus(status string) (int, error)
}
