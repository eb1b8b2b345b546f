package repository

import "github.com/clinivac/npwt-inventario/internal/domain/entity"

// PatientRepository define el puerto de persistencia para Patient (DIP).
type PatientRepository interface {
	Create(patient *entity.Patient) error
	GetByID(id string) (*entity.Patient, error)
	Update(patient *entity.Patient) error
	UpdateStatus(id, status string) error
	List(limit, offset int) ([]*entity.Patient, error)
}
