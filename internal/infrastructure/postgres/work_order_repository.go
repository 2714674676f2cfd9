package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tallersur/taller-api/internal/domain/entity"
	"github.com/tallersur/taller-api/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo implementación de órdenes de trabajo sobre PostgreSQL (usable
// con pool o tx).
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

// GetByID obtiene la OT con sus líneas de material y de piezas cargadas, o nil
// si no existe.
func (r *WorkOrderRepo) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	query := `
		SELECT id, code, status, priority, machine_cat_id,
		       cost_materials, cost_labor, cost_overhead, cost_total,
		       created_at, updated_at
		FROM work_orders WHERE id = $1`
	var wo entity.WorkOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&wo.ID, &wo.Code, &wo.Status, &wo.Priority, &wo.MachineCatID,
		&wo.CostMaterials, &wo.CostLabor, &wo.CostOverhead, &wo.CostTotal,
		&wo.CreatedAt, &wo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}

	if wo.Materials, err = r.listMaterials(ctx, id); err != nil {
		return nil, err
	}
	if wo.Pieces, err = r.listPieces(ctx, id); err != nil {
		return nil, err
	}
	return &wo, nil
}

func (r *WorkOrderRepo) listMaterials(ctx context.Context, workOrderID string) ([]entity.MaterialLine, error) {
	query := `
		SELECT id, work_order_id, sku, qty_plan, qty_emitida
		FROM work_order_materials WHERE work_order_id = $1 ORDER BY sku`
	rows, err := r.q.Query(ctx, query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("list material lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.MaterialLine
	for rows.Next() {
		var l entity.MaterialLine
		if err := rows.Scan(&l.ID, &l.WorkOrderID, &l.SKU, &l.QtyPlan, &l.QtyEmitida); err != nil {
			return nil, fmt.Errorf("scan material line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *WorkOrderRepo) listPieces(ctx context.Context, workOrderID string) ([]entity.PieceLine, error) {
	query := `
		SELECT id, work_order_id, description, qty_plan, qty_hecha
		FROM work_order_pieces WHERE work_order_id = $1 ORDER BY description`
	rows, err := r.q.Query(ctx, query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("list piece lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.PieceLine
	for rows.Next() {
		var l entity.PieceLine
		if err := rows.Scan(&l.ID, &l.WorkOrderID, &l.Description, &l.QtyPlan, &l.QtyHecha); err != nil {
			return nil, fmt.Errorf("scan piece line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// UpdateCostSnapshot persiste los cuatro campos de costo de una vez. Nunca se
// escriben por separado.
func (r *WorkOrderRepo) UpdateCostSnapshot(ctx context.Context, id string, snap entity.CostSnapshot) error {
	query := `
		UPDATE work_orders
		SET cost_materials = $2, cost_labor = $3, cost_overhead = $4, cost_total = $5, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, snap.Materials, snap.Labor, snap.Overhead, snap.Total)
	if err != nil {
		return fmt.Errorf("update cost snapshot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update cost snapshot: work order %s no existe", id)
	}
	return nil
}

// UpdateStatus cambia el estado de la OT. La validación de transición es del
// caso de uso, no de este repo.
func (r *WorkOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE work_orders SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update work order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update work order status: work order %s no existe", id)
	}
	return nil
}

// AddIssuedQty incrementa el contador corrido de cantidad emitida de la línea.
func (r *WorkOrderRepo) AddIssuedQty(ctx context.Context, materialLineID string, qty decimal.Decimal) error {
	query := `UPDATE work_order_materials SET qty_emitida = qty_emitida + $2 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, materialLineID, qty)
	if err != nil {
		return fmt.Errorf("add issued qty: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("add issued qty: línea %s no existe", materialLineID)
	}
	return nil
}

// SetPieceDone fija la cantidad hecha de una línea de piezas.
func (r *WorkOrderRepo) SetPieceDone(ctx context.Context, pieceLineID string, qtyHecha decimal.Decimal) error {
	query := `UPDATE work_order_pieces SET qty_hecha = $2 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, pieceLineID, qtyHecha)
	if err != nil {
		return fmt.Errorf("set piece done: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set piece done: línea %s no existe", pieceLineID)
	}
	return nil
}
