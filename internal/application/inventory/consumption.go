package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/domain"
	"github.com/clinivac/npwt-inventario/internal/domain/authz"
	"github.com/clinivac/npwt-inventario/internal/domain/entity"
	"github.com/clinivac/npwt-inventario/internal/domain/repository"
)

// ConsumeForProcedure descuenta insumos contra un procedimiento activo.
// Todo el batch corre en UNA transacción: el descuento de stock es condicional
// (stock >= qty en la misma sentencia), y cualquier faltante aborta el conjunto
// completo sin efecto parcial. Por cada insumo quedan escritos el decremento,
// la fila procedure_products y el movimiento out/procedure.
func (uc *UseCase) ConsumeForProcedure(ctx context.Context, actor authz.Actor, procedureID string, in dto.ConsumeRequest) error {
	if !uc.authz.Can(actor.Role, authz.ActionConsume) {
		return domain.ErrForbidden
	}
	if len(in.Items) == 0 {
		return domain.ErrInvalidInput
	}

	procedure, err := uc.procRepo.GetByID(procedureID)
	if err != nil {
		return err
	}
	if procedure == nil {
		return domain.ErrNotFound
	}
	if procedure.Status != entity.ProcedureActive {
		return domain.ErrProcedureNotActive
	}

	// El nombre del paciente solo enriquece la nota del movimiento: si la
	// lectura falla se deja la nota genérica y el consumo sigue.
	patientName := ""
	if patient, err := uc.patientRepo.GetByID(procedure.PatientID); err != nil {
		uc.log.Warn().Err(err).Str("patient_id", procedure.PatientID).
			Msg("no se pudo resolver el paciente para la nota de consumo")
	} else if patient != nil {
		patientName = patient.Name
	}

	// Consolidar repetidos y fijar orden determinista de productos para que dos
	// consumos concurrentes no se bloqueen en orden cruzado.
	quantities := make(map[string]int64, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
		quantities[item.ProductID] += item.Quantity
	}
	productIDs := make([]string, 0, len(quantities))
	for id := range quantities {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		procRepo repository.ProcedureRepository,
	) error {
		for _, productID := range productIDs {
			qty := quantities[productID]
			if product, err := productRepo.GetByID(productID); err != nil {
				return err
			} else if product == nil {
				return domain.ErrNotFound
			}
			ok, err := productRepo.DecrementStock(productID, qty)
			if err != nil {
				return err
			}
			if !ok {
				// El rollback de la tx deja sin efecto los descuentos previos
				// del batch: todo-o-nada.
				return domain.ErrInsufficientStock
			}
		}
		for _, productID := range productIDs {
			qty := quantities[productID]
			pp := &entity.ProcedureProduct{
				ID:          uuid.New().String(),
				ProcedureID: procedureID,
				ProductID:   productID,
				Quantity:    qty,
				CreatedAt:   now,
			}
			if err := procRepo.CreateProduct(pp); err != nil {
				return err
			}
			note := "consumo en procedimiento"
			if patientName != "" {
				note = fmt.Sprintf("consumo en procedimiento de %s", patientName)
			}
			mov := &entity.Movement{
				ID:        uuid.New().String(),
				ProductID: productID,
				Direction: entity.DirectionOut,
				Quantity:  qty,
				RefKind:   entity.RefProcedure,
				RefID:     procedureID,
				Note:      note,
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
		return err
	}

	uc.log.Info().Str("procedure_id", procedureID).Int("products", len(productIDs)).
		Msg("consumo de procedimiento registrado")
	return nil
}
