package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clinivac/npwt-inventario/internal/domain"
	"github.com/clinivac/npwt-inventario/internal/domain/entity"
	"github.com/clinivac/npwt-inventario/internal/domain/repository"
)

var _ repository.PatientRepository = (*PatientRepo)(nil)

const patientColumns = "id, name, document, age, diagnosis, status, created_at, updated_at"

// PatientRepo adaptador PostgreSQL para pacientes.
type PatientRepo struct {
	q Querier
}

// NewPatientRepository construye el adaptador de pacientes.
func NewPatientRepository(q Querier) *PatientRepo {
	return &PatientRepo{q: q}
}

// Create persiste un nuevo paciente.
func (r *PatientRepo) Create(patient *entity.Patient) error {
	query := `
		INSERT INTO patients (id, name, document, age, diagnosis, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		patient.ID, patient.Name, patient.Document, patient.Age,
		patient.Diagnosis, patient.Status, patient.CreatedAt, patient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

// GetByID obtiene un paciente por ID.
func (r *PatientRepo) GetByID(id string) (*entity.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`
	var p entity.Patient
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Document, &p.Age, &p.Diagnosis, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return &p, nil
}

// Update actualiza los datos del paciente.
func (r *PatientRepo) Update(patient *entity.Patient) error {
	query := `
		UPDATE patients
		SET name = $2, document = $3, age = $4, diagnosis = $5, status = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		patient.ID, patient.Name, patient.Document, patient.Age,
		patient.Diagnosis, patient.Status, patient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia solo el estado del paciente.
func (r *PatientRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE patients SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update patient status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista pacientes por nombre con paginación.
func (r *PatientRepo) List(limit, offset int) ([]*entity.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	var list []*entity.Patient
	for rows.Next() {
		var p entity.Patient
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Document, &p.Age, &p.Diagnosis, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
