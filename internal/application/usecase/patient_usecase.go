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

// PatientUseCase casos de uso CRUD para pacientes. El estado del paciente
// (active/completed) lo gobierna el cierre de procedimientos, no este CRUD.
type PatientUseCase struct {
	repo  repository.PatientRepository
	authz authz.Checker
}

// NewPatientUseCase construye el caso de uso.
func NewPatientUseCase(repo repository.PatientRepository, checker authz.Checker) *PatientUseCase {
	return &PatientUseCase{repo: repo, authz: checker}
}

// Create registra un paciente nuevo en estado active.
func (uc *PatientUseCase) Create(actor authz.Actor, in dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	if !uc.authz.Can(actor.Role, authz.ActionManageClinic) {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.Document) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	patient := &entity.Patient{
		ID:        uuid.New().String(),
		Name:      name,
		Document:  strings.TrimSpace(in.Document),
		Age:       in.Age,
		Diagnosis: in.Diagnosis,
		Status:    entity.PatientActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(patient); err != nil {
		return nil, err
	}
	return toPatientResponse(patient), nil
}

// GetByID obtiene un paciente. Devuelve nil si no existe.
func (uc *PatientUseCase) GetByID(id string) (*dto.PatientResponse, error) {
	patient, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, nil
	}
	return toPatientResponse(patient), nil
}

// Update actualiza los datos demográficos del paciente (no su estado).
func (uc *PatientUseCase) Update(actor authz.Actor, id string, in dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	if !uc.authz.Can(actor.Role, authz.ActionManageClinic) {
		return nil, domain.ErrForbidden
	}
	patient, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		patient.Name = strings.TrimSpace(*in.Name)
	}
	if in.Document != nil {
		patient.Document = strings.TrimSpace(*in.Document)
	}
	if in.Age != nil {
		patient.Age = *in.Age
	}
	if in.Diagnosis != nil {
		patient.Diagnosis = *in.Diagnosis
	}
	if patient.Name == "" || patient.Document == "" {
		return nil, domain.ErrInvalidInput
	}
	patient.UpdatedAt = time.Now()
	if err := uc.repo.Update(patient); err != nil {
		return nil, err
	}
	return toPatientResponse(patient), nil
}

// List lista pacientes con paginación.
func (uc *PatientUseCase) List(limit, offset int) ([]*dto.PatientResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PatientResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPatientResponse(p))
	}
	return out, nil
}

func toPatientResponse(p *entity.Patient) *dto.PatientResponse {
	return &dto.PatientResponse{
		ID:        p.ID,
		Name:      p.Name,
		Document:  p.Document,
		Age:       p.Age,
		Diagnosis: p.Diagnosis,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}
