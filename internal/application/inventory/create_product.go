package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/domain"
	"github.com/clinivac/npwt-inventario/internal/domain/authz"
	"github.com/clinivac/npwt-inventario/internal/domain/entity"
	"github.com/clinivac/npwt-inventario/internal/domain/repository"
)

// CreateProduct crea un producto y, si trae stock inicial > 0, el movimiento
// initial_stock correspondiente, ambos en una transacción. El chequeo de
// código duplicado se hace antes de escribir; la constraint única de la DB es
// la autoridad final ante dos creadores concurrentes (23505 → ErrDuplicateCode).
func (uc *UseCase) CreateProduct(ctx context.Context, actor authz.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !uc.authz.Can(actor.Role, authz.ActionCreateProduct) {
		return nil, domain.ErrForbidden
	}

	name := strings.TrimSpace(in.Name)
	code := NormalizeCode(in.Code)
	if name == "" || code == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialStock < 0 || in.MinStock < 0 || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Chequeo rápido; la unique constraint cubre la carrera check-then-insert.
	if existing, err := uc.productRepo.GetByCode(code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateCode
	}

	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		Code:      code,
		Category:  in.Category,
		Stock:     in.InitialStock,
		MinStock:  in.MinStock,
		UnitPrice: in.UnitPrice,
		Lot:       in.Lot,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		_ repository.ProcedureRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if in.InitialStock > 0 {
			mov := &entity.Movement{
				ID:        uuid.New().String(),
				ProductID: product.ID,
				Direction: entity.DirectionIn,
				Quantity:  in.InitialStock,
				RefKind:   entity.RefInitialStock,
				Note:      "stock inicial al crear el producto",
				CreatedBy: actor.ID,
				CreatedAt: now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("product_id", product.ID).Str("code", product.Code).
		Int64("initial_stock", in.InitialStock).Msg("producto creado")
	return toProductResponse(product), nil
}
