package repository

import (
	"context"
	"time"

	"github.com/clinivac/npwt-inventario/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para el kardex.
// Los movimientos son append-only: no hay Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// ListByProduct devuelve los movimientos más recientes del producto,
	// ordenados por created_at descendente, hasta limit filas.
	ListByProduct(productID string, limit int) ([]*entity.Movement, error)
	// ListOutInRange devuelve todas las salidas con created_at en [from, to].
	ListOutInRange(ctx context.Context, from, to time.Time) ([]*entity.Movement, error)
	// DistinctProcedureIDs devuelve los ids de procedimiento distintos
	// referenciados por salidas kind=procedure del producto en el rango.
	DistinctProcedureIDs(ctx context.Context, productID string, from, to time.Time) ([]string, error)
	// SignedSumByProduct devuelve la suma firmada del kardex de un producto
	// (entradas positivas, salidas negativas). Oráculo de reconciliación
	// contra el stock denormalizado.
	SignedSumByProduct(ctx context.Context, productID string) (int64, error)
	// CountInRange cuenta movimientos con created_at en [from, to].
	CountInRange(ctx context.Context, from, to time.Time) (int, error)
}
