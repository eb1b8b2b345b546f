package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/domain"
	"github.com/clinivac/npwt-inventario/internal/domain/authz"
	"github.com/clinivac/npwt-inventario/internal/domain/entity"
	"github.com/clinivac/npwt-inventario/internal/domain/repository"
)

// BulkStockEntry registra un ingreso masivo de stock. Renglones con cantidad
// <= 0 se omiten sin error. Cada producto aplica su par (stock += qty,
// movimiento stock_entry) en una transacción propia; el batch completo es
// best-effort: un producto fallido no revierte los ya aplicados, queda
// reportado en Failed y advertido en el log.
func (uc *UseCase) BulkStockEntry(ctx context.Context, actor authz.Actor, in dto.StockEntryRequest) (*dto.StockEntryResult, error) {
	if !uc.authz.Can(actor.Role, authz.ActionStockEntry) {
		return nil, domain.ErrForbidden
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	result := &dto.StockEntryResult{}
	now := time.Now()

	for _, item := range in.Items {
		if item.Quantity <= 0 {
			result.Skipped = append(result.Skipped, item.ProductID)
			continue
		}

		item := item
		err := uc.txRunner.Run(ctx, func(
			productRepo repository.ProductRepository,
			movRepo repository.MovementRepository,
			_ repository.ProcedureRepository,
		) error {
			if err := productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
			note := item.Reason
			if note == "" {
				note = "ingreso de stock"
			}
			mov := &entity.Movement{
				ID:        uuid.New().String(),
				ProductID: item.ProductID,
				Direction: entity.DirectionIn,
				Quantity:  item.Quantity,
				RefKind:   entity.RefStockEntry,
				Note:      note,
				CreatedBy: actor.ID,
				CreatedAt: now,
			}
			return movRepo.Create(mov)
		})
		if err != nil {
			uc.log.Warn().Err(err).Str("product_id", item.ProductID).
				Msg("ingreso de stock fallido para el producto; el batch continúa")
			result.Failed = append(result.Failed, dto.StockEntryFailure{
				ProductID: item.ProductID,
				Error:     err.Error(),
			})
			continue
		}
		result.Applied = append(result.Applied, item.ProductID)
	}

	uc.log.Info().Int("applied", len(result.Applied)).Int("skipped", len(result.Skipped)).
		Int("failed", len(result.Failed)).Msg("ingreso masivo de stock procesado")
	return result, nil
}
