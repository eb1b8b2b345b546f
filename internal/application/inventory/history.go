package inventory

import (
	"context"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/domain"
	"github.com/clinivac/npwt-inventario/internal/domain/entity"
)

// historyWindow cuántos movimientos recientes trae la vista de historial.
const historyWindow = 50

// GetMovementHistory devuelve los movimientos más recientes de un producto
// (hasta 50, descendente por fecha). Para filas de procedimiento la nota
// mostrada se reescribe con el nombre ACTUAL del paciente; es enriquecimiento de
// presentación, la nota almacenada no se modifica. El stock del resumen sale
// del catálogo, no se recalcula de la ventana.
func (uc *UseCase) GetMovementHistory(ctx context.Context, productID string) (*dto.MovementHistoryResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	movements, err := uc.movRepo.ListByProduct(productID, historyWindow)
	if err != nil {
		return nil, err
	}

	patientNames, err := uc.resolvePatientNames(ctx, movements)
	if err != nil {
		// La vista sigue sirviendo con las notas almacenadas.
		uc.log.Warn().Err(err).Str("product_id", productID).
			Msg("no se pudieron resolver pacientes para enriquecer el historial")
		patientNames = nil
	}

	resp := &dto.MovementHistoryResponse{
		ProductID:   product.ID,
		ProductName: product.Name,
		Movements:   make([]*dto.MovementResponse, 0, len(movements)),
	}
	for _, m := range movements {
		qty := m.Magnitude()
		note := m.Note
		if m.RefKind == entity.RefProcedure && m.RefID != "" {
			if name, ok := patientNames[m.RefID]; ok && name != "" {
				note = "consumo en procedimiento de " + name
			}
		}
		resp.Movements = append(resp.Movements, &dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Direction: m.Direction,
			Quantity:  qty,
			RefKind:   m.RefKind,
			RefID:     m.RefID,
			Note:      note,
			CreatedBy: m.CreatedBy,
			CreatedAt: m.CreatedAt,
		})
		switch m.Direction {
		case entity.DirectionIn:
			resp.Summary.TotalIn += qty
		case entity.DirectionOut:
			resp.Summary.TotalOut += qty
		}
	}
	resp.Summary.CurrentStock = product.Stock
	return resp, nil
}

// resolvePatientNames mapea procedimiento id → nombre actual del paciente para
// los movimientos kind=procedure de la ventana.
func (uc *UseCase) resolvePatientNames(ctx context.Context, movements []*entity.Movement) (map[string]string, error) {
	var procedureIDs []string
	seen := make(map[string]bool)
	for _, m := range movements {
		if m.RefKind == entity.RefProcedure && m.RefID != "" && !seen[m.RefID] {
			seen[m.RefID] = true
			procedureIDs = append(procedureIDs, m.RefID)
		}
	}
	if len(procedureIDs) == 0 {
		return nil, nil
	}

	patientByProc, err := uc.procRepo.PatientIDsByProcedures(ctx, procedureIDs)
	if err != nil {
		return nil, err
	}

	nameByPatient := make(map[string]string)
	names := make(map[string]string, len(patientByProc))
	for procID, patientID := range patientByProc {
		name, ok := nameByPatient[patientID]
		if !ok {
			patient, err := uc.patientRepo.GetByID(patientID)
			if err != nil {
				return nil, err
			}
			if patient != nil {
				name = patient.Name
			}
			nameByPatient[patientID] = name
		}
		names[procID] = name
	}
	return names, nil
}
