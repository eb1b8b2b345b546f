package inventory

import (
	"context"

	"github.com/clinivac/npwt-inventario/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que cada mutación de stock y su
// movimiento de kardex se escriban juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		procRepo repository.ProcedureRepository,
	) error) error
}
