package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/clinivac/npwt-inventario/internal/domain/entity"
	"github.com/clinivac/npwt-inventario/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = "id, product_id, direction, quantity, ref_kind, ref_id, note, created_by, created_at"

// MovementRepo adaptador PostgreSQL del libro de movimientos. La tabla es
// append-only: no hay UPDATE ni DELETE en este repositorio.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un movimiento en el libro.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, product_id, direction, quantity, ref_kind, ref_id, note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.Direction, m.Quantity, m.RefKind, m.RefID, m.Note, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByProduct últimos movimientos de un producto, más reciente primero.
func (r *MovementRepo) ListByProduct(productID string, limit int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListOutInRange salidas del período [from, to] para el reporte de consumo.
func (r *MovementRepo) ListOutInRange(ctx context.Context, from, to time.Time) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE direction = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, entity.DirectionOut, from, to)
	if err != nil {
		return nil, fmt.Errorf("list out movements: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// DistinctProcedureIDs procedimientos distintos que consumieron un producto en el período.
func (r *MovementRepo) DistinctProcedureIDs(ctx context.Context, productID string, from, to time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT ref_id
		FROM movements
		WHERE product_id = $1 AND ref_kind = $2 AND ref_id <> ''
		  AND created_at >= $3 AND created_at <= $4`
	rows, err := r.q.Query(ctx, query, productID, entity.RefProcedure, from, to)
	if err != nil {
		return nil, fmt.Errorf("distinct procedures: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan procedure id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SignedSumByProduct suma con signo del libro para un producto (entradas
// positivas, salidas negativas). Fuente de verdad en reconciliaciones.
func (r *MovementRepo) SignedSumByProduct(ctx context.Context, productID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN direction = $2 THEN quantity ELSE -quantity END), 0)
		FROM movements
		WHERE product_id = $1`
	var sum int64
	if err := r.q.QueryRow(ctx, query, productID, entity.DirectionIn).Scan(&sum); err != nil {
		return 0, fmt.Errorf("signed sum: %w", err)
	}
	return sum, nil
}

// CountInRange movimientos registrados en el período (para el dashboard).
func (r *MovementRepo) CountInRange(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM movements WHERE created_at >= $1 AND created_at <= $2`,
		from, to,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func (r *MovementRepo) scanMany(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Direction, &m.Quantity, &m.RefKind,
			&m.RefID, &m.Note, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
