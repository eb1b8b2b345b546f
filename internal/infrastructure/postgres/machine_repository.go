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

var _ repository.MachineRepository = (*MachineRepo)(nil)

const machineColumns = "id, name, serial, status, created_at, updated_at"

// MachineRepo adaptador PostgreSQL para máquinas NPWT.
type MachineRepo struct {
	q Querier
}

// NewMachineRepository construye el adaptador de máquinas.
func NewMachineRepository(q Querier) *MachineRepo {
	return &MachineRepo{q: q}
}

// Create persiste una nueva máquina.
func (r *MachineRepo) Create(machine *entity.Machine) error {
	query := `
		INSERT INTO machines (id, name, serial, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		machine.ID, machine.Name, machine.Serial, machine.Status, machine.CreatedAt, machine.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert machine: %w", err)
	}
	return nil
}

// GetByID obtiene una máquina por ID.
func (r *MachineRepo) GetByID(id string) (*entity.Machine, error) {
	query := `SELECT ` + machineColumns + ` FROM machines WHERE id = $1`
	var m entity.Machine
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Name, &m.Serial, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get machine: %w", err)
	}
	return &m, nil
}

// Update actualiza los datos de la máquina.
func (r *MachineRepo) Update(machine *entity.Machine) error {
	query := `
		UPDATE machines
		SET name = $2, serial = $3, status = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		machine.ID, machine.Name, machine.Serial, machine.Status, machine.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update machine: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista máquinas por nombre con paginación.
func (r *MachineRepo) List(limit, offset int) ([]*entity.Machine, error) {
	query := `SELECT ` + machineColumns + ` FROM machines ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list machines: %w", err)
	}
	defer rows.Close()

	var list []*entity.Machine
	for rows.Next() {
		var m entity.Machine
		if err := rows.Scan(&m.ID, &m.Name, &m.Serial, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan machine: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountByStatus cuenta máquinas por estado.
func (r *MachineRepo) CountByStatus(status string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM machines WHERE status = $1`, status,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count machines: %w", err)
	}
	return n, nil
}
