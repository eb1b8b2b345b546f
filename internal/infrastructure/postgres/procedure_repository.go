package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/clinivac/npwt-inventario/internal/domain"
	"github.com/clinivac/npwt-inventario/internal/domain/entity"
	"github.com/clinivac/npwt-inventario/internal/domain/repository"
)

var _ repository.ProcedureRepository = (*ProcedureRepo)(nil)

const procedureColumns = "id, patient_id, machine_id, surgeon, assistant, date, start_time, end_time, diagnosis, location, status, created_at, updated_at"

// ProcedureRepo adaptador PostgreSQL para procedimientos y su join de consumo.
type ProcedureRepo struct {
	q Querier
}

// NewProcedureRepository construye el adaptador de procedimientos.
func NewProcedureRepository(q Querier) *ProcedureRepo {
	return &ProcedureRepo{q: q}
}

// Create persiste un nuevo procedimiento.
func (r *ProcedureRepo) Create(procedure *entity.Procedure) error {
	query := `
		INSERT INTO procedures (id, patient_id, machine_id, surgeon, assistant, date, start_time, end_time, diagnosis, location, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		procedure.ID, procedure.PatientID, procedure.MachineID, procedure.Surgeon, procedure.Assistant,
		procedure.Date, procedure.StartTime, procedure.EndTime, procedure.Diagnosis, procedure.Location,
		procedure.Status, procedure.CreatedAt, procedure.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert procedure: %w", err)
	}
	return nil
}

// GetByID obtiene un procedimiento por ID.
func (r *ProcedureRepo) GetByID(id string) (*entity.Procedure, error) {
	query := `SELECT ` + procedureColumns + ` FROM procedures WHERE id = $1`
	var p entity.Procedure
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.PatientID, &p.MachineID, &p.Surgeon, &p.Assistant, &p.Date,
		&p.StartTime, &p.EndTime, &p.Diagnosis, &p.Location, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get procedure: %w", err)
	}
	return &p, nil
}

// UpdateStatus cambia el estado; end_time solo se sobreescribe si viene no vacío.
func (r *ProcedureRepo) UpdateStatus(id, status, endTime string) error {
	query := `
		UPDATE procedures
		SET status = $2,
		    end_time = CASE WHEN $3 <> '' THEN $3 ELSE end_time END,
		    updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, status, endTime)
	if err != nil {
		return fmt.Errorf("update procedure status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista procedimientos, más reciente primero.
func (r *ProcedureRepo) List(limit, offset int) ([]*entity.Procedure, error) {
	query := `SELECT ` + procedureColumns + ` FROM procedures ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list procedures: %w", err)
	}
	defer rows.Close()

	var list []*entity.Procedure
	for rows.Next() {
		var p entity.Procedure
		if err := rows.Scan(
			&p.ID, &p.PatientID, &p.MachineID, &p.Surgeon, &p.Assistant, &p.Date,
			&p.StartTime, &p.EndTime, &p.Diagnosis, &p.Location, &p.Status,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan procedure: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountCreatedInRange cuenta procedimientos creados en el período, con o sin consumo.
func (r *ProcedureRepo) CountCreatedInRange(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM procedures WHERE created_at >= $1 AND created_at <= $2`,
		from, to,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count procedures: %w", err)
	}
	return n, nil
}

// ExistsActiveByMachine reporta si la máquina tiene un procedimiento activo.
func (r *ProcedureRepo) ExistsActiveByMachine(machineID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM procedures WHERE machine_id = $1 AND status = $2)`,
		machineID, entity.ProcedureActive,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists active by machine: %w", err)
	}
	return exists, nil
}

// CountByStatus cuenta procedimientos por estado.
func (r *ProcedureRepo) CountByStatus(status string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM procedures WHERE status = $1`, status,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count procedures by status: %w", err)
	}
	return n, nil
}

// PatientIDsByProcedures resuelve procedimiento -> paciente en una sola consulta.
func (r *ProcedureRepo) PatientIDsByProcedures(ctx context.Context, procedureIDs []string) (map[string]string, error) {
	result := make(map[string]string, len(procedureIDs))
	if len(procedureIDs) == 0 {
		return result, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, patient_id FROM procedures WHERE id = ANY($1)`, procedureIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("patients by procedures: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var procID, patientID string
		if err := rows.Scan(&procID, &patientID); err != nil {
			return nil, fmt.Errorf("scan procedure patient: %w", err)
		}
		result[procID] = patientID
	}
	return result, rows.Err()
}

// CreateProduct registra el consumo de un insumo dentro del procedimiento.
func (r *ProcedureRepo) CreateProduct(pp *entity.ProcedureProduct) error {
	query := `
		INSERT INTO procedure_products (id, procedure_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		pp.ID, pp.ProcedureID, pp.ProductID, pp.Quantity, pp.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert procedure product: %w", err)
	}
	return nil
}

// ListProducts consumos registrados para un procedimiento.
func (r *ProcedureRepo) ListProducts(procedureID string) ([]*entity.ProcedureProduct, error) {
	query := `
		SELECT id, procedure_id, product_id, quantity, created_at
		FROM procedure_products
		WHERE procedure_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, procedureID)
	if err != nil {
		return nil, fmt.Errorf("list procedure products: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProcedureProduct
	for rows.Next() {
		var pp entity.ProcedureProduct
		if err := rows.Scan(&pp.ID, &pp.ProcedureID, &pp.ProductID, &pp.Quantity, &pp.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan procedure product: %w", err)
		}
		list = append(list, &pp)
	}
	return list, rows.Err()
}
