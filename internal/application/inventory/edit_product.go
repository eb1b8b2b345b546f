package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/domain"
	"github.com/clinivac/npwt-inventario/internal/domain/authz"
	"github.com/clinivac/npwt-inventario/internal/domain/entity"
	"github.com/clinivac/npwt-inventario/internal/domain/repository"
)

// EditProduct actualiza el juego completo de atributos del producto, incluido
// un nuevo valor de stock. Si el stock cambia, escribe además un movimiento
// manual_edit con el delta (in si sube, out si baja) en la misma transacción.
// Con delta cero es una edición pura de metadatos: no se toca el kardex.
func (uc *UseCase) EditProduct(ctx context.Context, actor authz.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !uc.authz.Can(actor.Role, authz.ActionEditProduct) {
		return nil, domain.ErrForbidden
	}

	name := strings.TrimSpace(in.Name)
	code := NormalizeCode(in.Code)
	if name == "" || code == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Stock < 0 || in.MinStock < 0 || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Lectura y delta dentro de la transacción, con la fila bloqueada: dos
	// ediciones concurrentes se serializan y cada movimiento manual_edit
	// registra el delta contra el stock realmente vigente.
	var product *entity.Product
	var oldStock, delta int64
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		_ repository.ProcedureRepository,
	) error {
		var err error
		product, err = productRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		if code != product.Code {
			if existing, err := productRepo.GetByCode(code); err != nil {
				return err
			} else if existing != nil && existing.ID != id {
				return domain.ErrDuplicateCode
			}
		}

		oldStock = product.Stock
		delta = in.Stock - oldStock

		product.Name = name
		product.Code = code
		product.Category = in.Category
		product.Stock = in.Stock
		product.MinStock = in.MinStock
		product.UnitPrice = in.UnitPrice
		product.Lot = in.Lot
		product.UpdatedAt = now

		if err := productRepo.Update(product); err != nil {
			return err
		}
		if delta == 0 {
			return nil
		}
		direction := entity.DirectionIn
		qty := delta
		if delta < 0 {
			direction = entity.DirectionOut
			qty = -delta
		}
		mov := &entity.Movement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Direction: direction,
			Quantity:  qty,
			RefKind:   entity.RefManualEdit,
			Note:      fmt.Sprintf("edición manual: stock %d -> %d", oldStock, in.Stock),
			CreatedBy: actor.ID,
			CreatedAt: now,
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}

	if delta != 0 {
		uc.log.Info().Str("product_id", product.ID).
			Int64("old_stock", oldStock).Int64("new_stock", in.Stock).
			Msg("stock editado manualmente")
	}
	return toProductResponse(product), nil
}
