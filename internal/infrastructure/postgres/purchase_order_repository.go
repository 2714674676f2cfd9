package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tallersur/taller-api/internal/domain/entity"
	"github.com/tallersur/taller-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de órdenes de compra sobre PostgreSQL
// (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// GetByID obtiene la orden con sus líneas cargadas, o nil si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, code, status, supplier, request_id, note, created_at, updated_at
		FROM purchase_orders WHERE id = $1`
	var order entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.Code, &order.Status, &order.Supplier, &order.RequestID,
		&order.Note, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}

	lineQuery := `
		SELECT id, order_id, sku, cantidad, unit_cost, request_line_id
		FROM purchase_order_lines WHERE order_id = $1 ORDER BY sku`
	rows, err := r.q.Query(ctx, lineQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.SKU, &l.Cantidad, &l.UnitCost, &l.RequestLineID); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		order.Lines = append(order.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus cambia el estado de la orden. La validación de transición es
// del caso de uso.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update order status: orden %s no existe", id)
	}
	return nil
}

// ListLinesByRequest lista todas las líneas de orden que trazan a alguna línea
// de la solicitud, a través de cualquier orden no cancelada.
func (r *PurchaseOrderRepo) ListLinesByRequest(ctx context.Context, requestID string) ([]entity.OrderLine, error) {
	query := `
		SELECT l.id, l.order_id, l.sku, l.cantidad, l.unit_cost, l.request_line_id
		FROM purchase_order_lines l
		JOIN purchase_orders o ON o.id = l.order_id
		JOIN purchase_request_lines rl ON rl.id = l.request_line_id
		WHERE rl.request_id = $1 AND o.status <> $2
		ORDER BY l.order_id, l.sku`
	rows, err := r.q.Query(ctx, query, requestID, entity.OrderCancelled)
	if err != nil {
		return nil, fmt.Errorf("list lines by request: %w", err)
	}
	defer rows.Close()

	var lines []entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.SKU, &l.Cantidad, &l.UnitCost, &l.RequestLineID); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
