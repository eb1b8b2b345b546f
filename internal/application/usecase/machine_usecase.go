package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/domain"
	"github.com/clinivac/npwt-inventario/internal/domain/authz"
	"github.com/clinivac/npwt-inventario/internal/domain/entity"
	"github.com/clinivac/npwt-inventario/internal/domain/repository"
)

// MachineUseCase casos de uso CRUD para máquinas. "En uso" se deriva por
// consulta de procedimientos activos, nunca se almacena.
type MachineUseCase struct {
	repo     repository.MachineRepository
	procRepo repository.ProcedureRepository
	authz    authz.Checker
}

// NewMachineUseCase construye el caso de uso.
func NewMachineUseCase(repo repository.MachineRepository, procRepo repository.ProcedureRepository, checker authz.Checker) *MachineUseCase {
	return &MachineUseCase{repo: repo, procRepo: procRepo, authz: checker}
}

// Create registra una máquina en estado active.
func (uc *MachineUseCase) Create(actor authz.Actor, in dto.CreateMachineRequest) (*dto.MachineResponse, error) {
	if !uc.authz.Can(actor.Role, authz.ActionManageClinic) {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.Serial) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	machine := &entity.Machine{
		ID:        uuid.New().String(),
		Name:      name,
		Serial:    strings.TrimSpace(in.Serial),
		Status:    entity.MachineActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(machine); err != nil {
		return nil, err
	}
	return uc.toResponse(machine)
}

// GetByID obtiene una máquina con su estado de uso derivado.
func (uc *MachineUseCase) GetByID(id string) (*dto.MachineResponse, error) {
	machine, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, nil
	}
	return uc.toResponse(machine)
}

// Update actualiza nombre, serial o estado operativo. No permite pasar a
// maintenance/inactive una máquina con procedimiento activo.
func (uc *MachineUseCase) Update(actor authz.Actor, id string, in dto.UpdateMachineRequest) (*dto.MachineResponse, error) {
	if !uc.authz.Can(actor.Role, authz.ActionManageClinic) {
		return nil, domain.ErrForbidden
	}
	machine, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		machine.Name = strings.TrimSpace(*in.Name)
	}
	if in.Serial != nil {
		machine.Serial = strings.TrimSpace(*in.Serial)
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.MachineActive, entity.MachineMaintenance, entity.MachineInactive:
		default:
			return nil, domain.ErrInvalidInput
		}
		if *in.Status != entity.MachineActive {
			inUse, err := uc.procRepo.ExistsActiveByMachine(id)
			if err != nil {
				return nil, err
			}
			if inUse {
				return nil, domain.ErrConflict
			}
		}
		machine.Status = *in.Status
	}
	if machine.Name == "" || machine.Serial == "" {
		return nil, domain.ErrInvalidInput
	}
	machine.UpdatedAt = time.Now()
	if err := uc.repo.Update(machine); err != nil {
		return nil, err
	}
	return uc.toResponse(machine)
}

// List lista máquinas con su estado de uso derivado.
func (uc *MachineUseCase) List(limit, offset int) ([]*dto.MachineResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MachineResponse, 0, len(list))
	for _, m := range list {
		resp, err := uc.toResponse(m)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (uc *MachineUseCase) toResponse(m *entity.Machine) (*dto.MachineResponse, error) {
	inUse, err := uc.procRepo.ExistsActiveByMachine(m.ID)
	if err != nil {
		return nil, err
	}
	return &dto.MachineResponse{
		ID:        m.ID,
		Name:      m.Name,
		Serial:    m.Serial,
		Status:    m.Status,
		InUse:     inUse,
		CreatedAt: m.CreatedAt,
	}, nil
}
