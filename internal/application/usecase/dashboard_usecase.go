package usecase

import (
	"context"
	"time"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/domain/entity"
	"github.com/clinivac/npwt-inventario/internal/domain/repository"
)

// DashboardUseCase arma las tarjetas del tablero principal con conteos
// livianos sobre catálogo, procedimientos, máquinas y kardex.
type DashboardUseCase struct {
	productRepo repository.ProductRepository
	procRepo    repository.ProcedureRepository
	machineRepo repository.MachineRepository
	movRepo     repository.MovementRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	procRepo repository.ProcedureRepository,
	machineRepo repository.MachineRepository,
	movRepo repository.MovementRepository,
) *DashboardUseCase {
	return &DashboardUseCase{productRepo: productRepo, procRepo: procRepo, machineRepo: machineRepo, movRepo: movRepo}
}

// GetSummary calcula los indicadores del tablero.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummary, error) {
	summary := &dto.DashboardSummary{}

	var err error
	if summary.Products, err = uc.productRepo.Count(); err != nil {
		return nil, err
	}
	low, err := uc.productRepo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	summary.LowStockProducts = len(low)

	if summary.ActiveProcedures, err = uc.procRepo.CountByStatus(entity.ProcedureActive); err != nil {
		return nil, err
	}
	// Máquinas en uso == procedimientos activos (una máquina por procedimiento).
	summary.MachinesInUse = summary.ActiveProcedures
	activeMachines, err := uc.machineRepo.CountByStatus(entity.MachineActive)
	if err != nil {
		return nil, err
	}
	summary.MachinesAvailable = activeMachines - summary.MachinesInUse
	if summary.MachinesAvailable < 0 {
		summary.MachinesAvailable = 0
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if summary.MovementsToday, err = uc.movRepo.CountInRange(ctx, dayStart, now); err != nil {
		return nil, err
	}
	return summary, nil
}
