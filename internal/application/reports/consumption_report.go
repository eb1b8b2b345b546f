package reports

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/domain"
	"github.com/clinivac/npwt-inventario/internal/domain/entity"
	"github.com/clinivac/npwt-inventario/internal/domain/repository"
	"github.com/clinivac/npwt-inventario/pkg/logger"
)

// ConsumptionUseCase arma el reporte de consumo por producto sobre un rango de
// fechas, derivado del kardex de salidas. Una fila por producto del catálogo
// actual, incluidos los de consumo cero en el rango.
type ConsumptionUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
	procRepo    repository.ProcedureRepository
	log         *logger.Logger
}

// NewConsumptionUseCase construye el caso de uso.
func NewConsumptionUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	procRepo repository.ProcedureRepository,
	log *logger.Logger,
) *ConsumptionUseCase {
	return &ConsumptionUseCase{productRepo: productRepo, movRepo: movRepo, procRepo: procRepo, log: log}
}

// acumulador por producto antes de la deduplicación.
type consumptionAcc struct {
	qty          int64
	value        decimal.Decimal
	hasProcedure bool
}

// GetConsumptionReport genera el reporte para [start, end] (inclusivo, por
// created_at del movimiento). El valor usa el precio unitario VIGENTE del
// producto, no un precio histórico. Los conteos de procedimientos y pacientes
// son sobre ids distintos: un procedimiento que consumió el mismo insumo en
// dos llamadas separadas produce dos filas de kardex pero cuenta una sola vez.
func (uc *ConsumptionUseCase) GetConsumptionReport(ctx context.Context, start, end time.Time) (*dto.ConsumptionReport, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}

	catalog, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	outs, err := uc.movRepo.ListOutInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	// Paso de agrupación: magnitudes absolutas valorizadas a precio actual.
	grouped := make(map[string]*consumptionAcc)
	for _, m := range outs {
		product, ok := byID[m.ProductID]
		if !ok {
			// Movimiento huérfano (producto fuera del catálogo): se omite de la
			// agrupación, igual que un producto ya no listado.
			continue
		}
		acc := grouped[m.ProductID]
		if acc == nil {
			acc = &consumptionAcc{value: decimal.Zero}
			grouped[m.ProductID] = acc
		}
		qty := m.Magnitude()
		acc.qty += qty
		acc.value = acc.value.Add(decimal.NewFromInt(qty).Mul(product.UnitPrice))
		if m.RefKind == entity.RefProcedure && m.RefID != "" {
			acc.hasProcedure = true
		}
	}

	distinct, err := uc.resolveDistinctCounts(ctx, grouped, start, end)
	if err != nil {
		return nil, err
	}

	// Fusión con el catálogo completo: consumo cero también aparece.
	rows := make([]*dto.ConsumptionRow, 0, len(catalog))
	totalValue := decimal.Zero
	for _, p := range catalog {
		row := &dto.ConsumptionRow{
			ProductID:  p.ID,
			Name:       p.Name,
			Code:       p.Code,
			Category:   p.Category,
			TotalValue: decimal.Zero,
		}
		if acc, ok := grouped[p.ID]; ok {
			row.TotalConsumed = acc.qty
			row.TotalValue = acc.value
			if d, ok := distinct[p.ID]; ok {
				row.ProceduresCount = d.procedures
				row.PatientsCount = d.patients
			}
			totalValue = totalValue.Add(acc.value)
		}
		rows = append(rows, row)
	}
	sortRows(rows)

	totalProcedures, err := uc.procRepo.CountCreatedInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	summary := dto.ConsumptionSummary{
		TotalProcedures: totalProcedures,
		TotalValue:      totalValue,
		AvgValuePerProc: decimal.Zero,
	}
	if totalProcedures > 0 {
		summary.AvgValuePerProc = totalValue.Div(decimal.NewFromInt(int64(totalProcedures)))
	}
	for _, row := range rows {
		if row.TotalConsumed > 0 {
			summary.MostUsedProductID = row.ProductID
			summary.MostUsedProduct = row.Name
			break
		}
	}

	return &dto.ConsumptionReport{Start: start, End: end, Rows: rows, Summary: summary}, nil
}

type distinctCounts struct {
	procedures int
	patients   int
}

// resolveDistinctCounts segunda pasada: para cada producto con movimientos de
// procedimiento en el rango consulta los ids de procedimiento DISTINTOS y, con
// una consulta IN, los pacientes de esos procedimientos. Las consultas por
// producto salen en paralelo (son solo lectura).
func (uc *ConsumptionUseCase) resolveDistinctCounts(
	ctx context.Context,
	grouped map[string]*consumptionAcc,
	start, end time.Time,
) (map[string]distinctCounts, error) {
	result := make(map[string]distinctCounts)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for productID, acc := range grouped {
		if !acc.hasProcedure {
			continue
		}
		wg.Add(1)
		go func(productID string) {
			defer wg.Done()

			procedureIDs, err := uc.movRepo.DistinctProcedureIDs(ctx, productID, start, end)
			if err == nil && len(procedureIDs) > 0 {
				var patientByProc map[string]string
				patientByProc, err = uc.procRepo.PatientIDsByProcedures(ctx, procedureIDs)
				if err == nil {
					patients := make(map[string]bool, len(patientByProc))
					for _, patientID := range patientByProc {
						patients[patientID] = true
					}
					mu.Lock()
					result[productID] = distinctCounts{
						procedures: len(procedureIDs),
						patients:   len(patients),
					}
					mu.Unlock()
					return
				}
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(productID)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return result, nil
}

// sortRows ordena primero los productos con consumo (valor descendente,
// desempate por cantidad descendente) y después los de consumo cero en orden
// alfabético por nombre.
func sortRows(rows []*dto.ConsumptionRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		aZero := a.TotalConsumed == 0
		bZero := b.TotalConsumed == 0
		if aZero != bZero {
			return !aZero
		}
		if aZero {
			return a.Name < b.Name
		}
		if !a.TotalValue.Equal(b.TotalValue) {
			return a.TotalValue.GreaterThan(b.TotalValue)
		}
		return a.TotalConsumed > b.TotalConsumed
	})
}
