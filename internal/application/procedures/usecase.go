package procedures

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/domain"
	"github.com/clinivac/npwt-inventario/internal/domain/authz"
	"github.com/clinivac/npwt-inventario/internal/domain/entity"
	"github.com/clinivac/npwt-inventario/internal/domain/repository"
	"github.com/clinivac/npwt-inventario/pkg/logger"
)

// UseCase ciclo de vida de procedimientos NPWT: instalar (crear), cerrar y
// cancelar. El cierre es una transición de dos entidades (procedimiento y
// paciente) sin transacción que las abarque; el fallo del segundo paso se
// reporta como PartialFailure sin compensación automática.
type UseCase struct {
	procRepo    repository.ProcedureRepository
	patientRepo repository.PatientRepository
	machineRepo repository.MachineRepository
	authz       authz.Checker
	log         *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	procRepo repository.ProcedureRepository,
	patientRepo repository.PatientRepository,
	machineRepo repository.MachineRepository,
	checker authz.Checker,
	log *logger.Logger,
) *UseCase {
	return &UseCase{procRepo: procRepo, patientRepo: patientRepo, machineRepo: machineRepo, authz: checker, log: log}
}

// Create instala una terapia: valida que el paciente exista, que la máquina
// exista, esté operativa (status active) y no esté en uso por otro
// procedimiento activo.
func (uc *UseCase) Create(actor authz.Actor, in dto.CreateProcedureRequest) (*dto.ProcedureResponse, error) {
	if !uc.authz.Can(actor.Role, authz.ActionManageClinic) {
		return nil, domain.ErrForbidden
	}
	if in.PatientID == "" || in.MachineID == "" || strings.TrimSpace(in.Surgeon) == "" {
		return nil, domain.ErrInvalidInput
	}

	patient, err := uc.patientRepo.GetByID(in.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.ErrNotFound
	}

	machine, err := uc.machineRepo.GetByID(in.MachineID)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, domain.ErrNotFound
	}
	if machine.Status != entity.MachineActive {
		return nil, domain.ErrConflict
	}
	inUse, err := uc.procRepo.ExistsActiveByMachine(in.MachineID)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	procedure := &entity.Procedure{
		ID:        uuid.New().String(),
		PatientID: in.PatientID,
		MachineID: in.MachineID,
		Surgeon:   strings.TrimSpace(in.Surgeon),
		Assistant: strings.TrimSpace(in.Assistant),
		Date:      date,
		StartTime: in.StartTime,
		Diagnosis: in.Diagnosis,
		Location:  in.Location,
		Status:    entity.ProcedureActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.procRepo.Create(procedure); err != nil {
		return nil, err
	}

	uc.log.Info().Str("procedure_id", procedure.ID).Str("machine_id", in.MachineID).
		Msg("procedimiento instalado")
	return toResponse(procedure), nil
}

// Close cierra un procedimiento activo: procedimiento → completed y su
// paciente → completed. Si la actualización del paciente falla después de
// completar el procedimiento, devuelve PartialFailure: el procedimiento queda
// cerrado y el paciente inconsistente (sin compensación automática).
func (uc *UseCase) Close(actor authz.Actor, id string, in dto.CloseProcedureRequest) error {
	if !uc.authz.Can(actor.Role, authz.ActionManageClinic) {
		return domain.ErrForbidden
	}
	procedure, err := uc.procRepo.GetByID(id)
	if err != nil {
		return err
	}
	if procedure == nil {
		return domain.ErrNotFound
	}
	if procedure.Status != entity.ProcedureActive {
		return domain.ErrProcedureNotActive
	}

	endTime := in.EndTime
	if endTime == "" {
		endTime = time.Now().Format("15:04")
	}
	if err := uc.procRepo.UpdateStatus(id, entity.ProcedureCompleted, endTime); err != nil {
		return err
	}
	if err := uc.patientRepo.UpdateStatus(procedure.PatientID, entity.PatientCompleted); err != nil {
		uc.log.Error().Err(err).Str("procedure_id", id).Str("patient_id", procedure.PatientID).
			Msg("procedimiento cerrado pero el paciente no pudo actualizarse")
		return &domain.PartialFailure{
			Op:   "cerrar procedimiento",
			Done: "procedimiento completado",
			Err:  err,
		}
	}

	uc.log.Info().Str("procedure_id", id).Msg("procedimiento cerrado")
	return nil
}

// Cancel cancela un procedimiento activo. El paciente conserva su estado.
func (uc *UseCase) Cancel(actor authz.Actor, id string) error {
	if !uc.authz.Can(actor.Role, authz.ActionManageClinic) {
		return domain.ErrForbidden
	}
	procedure, err := uc.procRepo.GetByID(id)
	if err != nil {
		return err
	}
	if procedure == nil {
		return domain.ErrNotFound
	}
	if procedure.Status != entity.ProcedureActive {
		return domain.ErrProcedureNotActive
	}
	if err := uc.procRepo.UpdateStatus(id, entity.ProcedureCancelled, ""); err != nil {
		return err
	}
	uc.log.Info().Str("procedure_id", id).Msg("procedimiento cancelado")
	return nil
}

// GetByID obtiene un procedimiento.
func (uc *UseCase) GetByID(id string) (*dto.ProcedureResponse, error) {
	procedure, err := uc.procRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if procedure == nil {
		return nil, nil
	}
	return toResponse(procedure), nil
}

// List lista procedimientos con paginación.
func (uc *UseCase) List(limit, offset int) ([]*dto.ProcedureResponse, error) {
	list, err := uc.procRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProcedureResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toResponse(p))
	}
	return out, nil
}

// ListProducts lista el consumo registrado de un procedimiento.
func (uc *UseCase) ListProducts(id string) ([]*dto.ProcedureProductResponse, error) {
	list, err := uc.procRepo.ListProducts(id)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProcedureProductResponse, 0, len(list))
	for _, pp := range list {
		out = append(out, &dto.ProcedureProductResponse{
			ProductID: pp.ProductID,
			Quantity:  pp.Quantity,
			CreatedAt: pp.CreatedAt,
		})
	}
	return out, nil
}

func toResponse(p *entity.Procedure) *dto.ProcedureResponse {
	return &dto.ProcedureResponse{
		ID:        p.ID,
		PatientID: p.PatientID,
		MachineID: p.MachineID,
		Surgeon:   p.Surgeon,
		Assistant: p.Assistant,
		Date:      p.Date,
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
		Diagnosis: p.Diagnosis,
		Location:  p.Location,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}
