package repository

import (
	"context"
	"time"

	"github.com/clinivac/npwt-inventario/internal/domain/entity"
)

// ProcedureRepository define el puerto de persistencia para procedimientos
// y su join de consumo (procedure_products).
type ProcedureRepository interface {
	Create(procedure *entity.Procedure) error
	GetByID(id string) (*entity.Procedure, error)
	// UpdateStatus cambia el estado del procedimiento; endTime se escribe solo
	// si no es vacío.
	UpdateStatus(id, status, endTime string) error
	List(limit, offset int) ([]*entity.Procedure, error)
	// CountCreatedInRange cuenta TODOS los procedimientos creados en [from, to],
	// tengan o no consumo de insumos.
	CountCreatedInRange(ctx context.Context, from, to time.Time) (int, error)
	// ExistsActiveByMachine reporta si hay un procedimiento active que use la máquina.
	ExistsActiveByMachine(machineID string) (bool, error)
	CountByStatus(status string) (int, error)
	// PatientIDsByProcedures devuelve procedimiento id → paciente id para el
	// conjunto dado (consulta IN, una ida a la base).
	PatientIDsByProcedures(ctx context.Context, procedureIDs []string) (map[string]string, error)

	CreateProduct(pp *entity.ProcedureProduct) error
	ListProducts(procedureID string) ([]*entity.ProcedureProduct, error)
}
