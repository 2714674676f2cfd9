// Package workorder implementa los casos de uso de órdenes de trabajo: el
// rollup de costos, las transiciones de estado y las operaciones de producción
// que lo disparan (salida de material, partes de horas, avance de piezas).
package workorder

import (
	"context"

	"github.com/tallersur/taller-api/internal/application/ledger"
	"github.com/tallersur/taller-api/internal/domain"
	"github.com/tallersur/taller-api/internal/domain/costing"
	"github.com/tallersur/taller-api/internal/domain/entity"
	"github.com/tallersur/taller-api/internal/domain/repository"
)

// UseCase opera las órdenes de trabajo.
type UseCase struct {
	txRunner  TxRunner
	woRepo    repository.WorkOrderRepository
	catRepo   repository.MachineCategoryRepository
	paramRepo repository.CostingParamRepository
	ledgerUC  *ledger.UseCase // costo de referencia para salidas de material
}

// NewUseCase construye el caso de uso. ledgerUC resuelve el costo de
// referencia de las salidas de material.
func NewUseCase(
	txRunner TxRunner,
	woRepo repository.WorkOrderRepository,
	catRepo repository.MachineCategoryRepository,
	paramRepo repository.CostingParamRepository,
	ledgerUC *ledger.UseCase,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		woRepo:    woRepo,
		catRepo:   catRepo,
		paramRepo: paramRepo,
		ledgerUC:  ledgerUC,
	}
}

// resolveRates arma la cadena de fallback de tarifas para la OT:
// categoría de máquina → parámetros globales legados → cero.
func (uc *UseCase) resolveRates(ctx context.Context, wo *entity.WorkOrder) (costing.RateSet, error) {
	var cat *entity.MachineCostingCategory
	if wo.MachineCatID != nil {
		var err error
		cat, err = uc.catRepo.GetByID(ctx, *wo.MachineCatID)
		if err != nil {
			return costing.RateSet{}, err
		}
	}
	globals, err := uc.paramRepo.GlobalRates(ctx)
	if err != nil {
		return costing.RateSet{}, err
	}
	return costing.ResolveRates(cat, globals), nil
}

// RecomputeCosts recalcula el snapshot de costos de la OT desde el historial
// completo y lo persiste. Idempotente: dos invocaciones sin cambios de datos
// intermedios producen resultados idénticos. Los cuatro campos se escriben
// juntos en una transacción. Dos recálculos concurrentes de la misma OT pueden
// competir sin daño: el último commit gana y cualquier estado intermedio es
// consistente.
func (uc *UseCase) RecomputeCosts(ctx context.Context, workOrderID string) (entity.CostSnapshot, error) {
	wo, err := uc.woRepo.GetByID(ctx, workOrderID)
	if err != nil {
		return entity.CostSnapshot{}, err
	}
	if wo == nil {
		return entity.CostSnapshot{}, domain.ErrNotFound
	}
	rates, err := uc.resolveRates(ctx, wo)
	if err != nil {
		return entity.CostSnapshot{}, err
	}

	var snap entity.CostSnapshot
	err = uc.txRunner.RunWorkOrder(ctx, func(
		woRepo repository.WorkOrderRepository,
		ledgerRepo repository.LedgerRepository,
		logRepo repository.ProductionLogRepository,
	) error {
		// Releer dentro de la tx para que piezas y líneas estén frescas.
		w, err := woRepo.GetByID(ctx, workOrderID)
		if err != nil {
			return err
		}
		if w == nil {
			return domain.ErrNotFound
		}
		movements, err := ledgerRepo.ListByRef(ctx, entity.WorkOrderRef(workOrderID))
		if err != nil {
			return err
		}
		logs, err := logRepo.ListByWorkOrder(ctx, workOrderID)
		if err != nil {
			return err
		}
		snap = costing.Rollup(costing.RollupInput{
			Movements: movements,
			Logs:      logs,
			Pieces:    w.Pieces,
			Rates:     rates,
		})
		return woRepo.UpdateCostSnapshot(ctx, workOrderID, snap)
	})
	if err != nil {
		return entity.CostSnapshot{}, err
	}
	return snap, nil
}

// ChangeStatus aplica una transición de la máquina de estados de la OT.
func (uc *UseCase) ChangeStatus(ctx context.Context, workOrderID, newStatus string) error {
	wo, err := uc.woRepo.GetByID(ctx, workOrderID)
	if err != nil {
		return err
	}
	if wo == nil {
		return domain.ErrNotFound
	}
	if !entity.CanTransitionWorkOrder(wo.Status, newStatus) {
		return domain.ErrInvalidTransition
	}
	return uc.woRepo.UpdateStatus(ctx, workOrderID, newStatus)
}
