package workorder

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallersur/taller-api/internal/domain"
	"github.com/tallersur/taller-api/internal/domain/entity"
	"github.com/tallersur/taller-api/internal/domain/repository"
)

// IssueMaterialInput entrada para una salida de material a OT.
type IssueMaterialInput struct {
	WorkOrderID    string
	MaterialLineID string
	Qty            decimal.Decimal // positiva; el asiento la vuelve negativa
	Note           string
}

// IssueMaterial asienta la salida de material al libro (cantidad negativa,
// tipo ISSUE_TO_WORK_ORDER, referencia a la OT), incrementa el contador de
// cantidad emitida de la línea y recalcula el snapshot de costos. Asiento y
// contador van en la misma transacción; el recálculo corre después sobre las
// fuentes ya commiteadas.
func (uc *UseCase) IssueMaterial(ctx context.Context, in IssueMaterialInput) (entity.CostSnapshot, error) {
	if !in.Qty.IsPositive() {
		return entity.CostSnapshot{}, domain.ErrInvalidInput
	}
	wo, err := uc.woRepo.GetByID(ctx, in.WorkOrderID)
	if err != nil {
		return entity.CostSnapshot{}, err
	}
	if wo == nil {
		return entity.CostSnapshot{}, domain.ErrNotFound
	}
	if wo.Status == entity.WorkOrderDone || wo.Status == entity.WorkOrderCancelled {
		return entity.CostSnapshot{}, domain.ErrInvalidTransition
	}
	var line *entity.MaterialLine
	for i := range wo.Materials {
		if wo.Materials[i].ID == in.MaterialLineID {
			line = &wo.Materials[i]
			break
		}
	}
	if line == nil {
		return entity.CostSnapshot{}, domain.ErrNotFound
	}

	// El costo de la salida es el costo de referencia vigente del SKU.
	unitCost, err := uc.ledgerUC.GetReferenceCost(ctx, line.SKU)
	if err != nil {
		return entity.CostSnapshot{}, err
	}

	now := time.Now()
	err = uc.txRunner.RunWorkOrder(ctx, func(
		woRepo repository.WorkOrderRepository,
		ledgerRepo repository.LedgerRepository,
		_ repository.ProductionLogRepository,
	) error {
		entry := &entity.LedgerEntry{
			ID:        uuid.New().String(),
			SKU:       line.SKU,
			Kind:      entity.MovementIssueToWorkOrder,
			Quantity:  in.Qty.Neg(),
			UnitCost:  unitCost,
			Ref:       entity.WorkOrderRef(in.WorkOrderID),
			Note:      in.Note,
			Date:      now,
			CreatedAt: now,
		}
		if err := ledgerRepo.Append(ctx, entry); err != nil {
			return err
		}
		return woRepo.AddIssuedQty(ctx, in.MaterialLineID, in.Qty)
	})
	if err != nil {
		return entity.CostSnapshot{}, err
	}
	return uc.RecomputeCosts(ctx, in.WorkOrderID)
}

// LogProductionInput entrada para un parte de producción.
type LogProductionInput struct {
	WorkOrderID string
	UserID      string
	MachineID   string
	Horas       decimal.Decimal
	Date        time.Time
}

// LogProduction registra horas trabajadas sobre la OT y recalcula el snapshot.
func (uc *UseCase) LogProduction(ctx context.Context, in LogProductionInput) (entity.CostSnapshot, error) {
	if !in.Horas.IsPositive() {
		return entity.CostSnapshot{}, domain.ErrInvalidInput
	}
	wo, err := uc.woRepo.GetByID(ctx, in.WorkOrderID)
	if err != nil {
		return entity.CostSnapshot{}, err
	}
	if wo == nil {
		return entity.CostSnapshot{}, domain.ErrNotFound
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	err = uc.txRunner.RunWorkOrder(ctx, func(
		_ repository.WorkOrderRepository,
		_ repository.LedgerRepository,
		logRepo repository.ProductionLogRepository,
	) error {
		return logRepo.Create(ctx, &entity.ProductionLogEntry{
			ID:          uuid.New().String(),
			WorkOrderID: in.WorkOrderID,
			UserID:      in.UserID,
			MachineID:   in.MachineID,
			Horas:       in.Horas,
			Date:        date,
			CreatedAt:   time.Now(),
		})
	})
	if err != nil {
		return entity.CostSnapshot{}, err
	}
	return uc.RecomputeCosts(ctx, in.WorkOrderID)
}

// CompletePieces fija la cantidad hecha de una línea de piezas y recalcula el
// snapshot (la cantidad hecha alimenta el componente de herramental).
func (uc *UseCase) CompletePieces(ctx context.Context, workOrderID, pieceLineID string, qtyHecha decimal.Decimal) (entity.CostSnapshot, error) {
	if qtyHecha.IsNegative() {
		return entity.CostSnapshot{}, domain.ErrInvalidInput
	}
	wo, err := uc.woRepo.GetByID(ctx, workOrderID)
	if err != nil {
		return entity.CostSnapshot{}, err
	}
	if wo == nil {
		return entity.CostSnapshot{}, domain.ErrNotFound
	}
	found := false
	for i := range wo.Pieces {
		if wo.Pieces[i].ID == pieceLineID {
			found = true
			break
		}
	}
	if !found {
		return entity.CostSnapshot{}, domain.ErrNotFound
	}
	if err := uc.woRepo.SetPieceDone(ctx, pieceLineID, qtyHecha); err != nil {
		return entity.CostSnapshot{}, err
	}
	return uc.RecomputeCosts(ctx, workOrderID)
}
