package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tallersur/taller-api/internal/domain/entity"
	"github.com/tallersur/taller-api/internal/domain/repository"
)

var _ repository.PurchaseRequestRepository = (*PurchaseRequestRepo)(nil)

// PurchaseRequestRepo implementación de solicitudes de compra sobre PostgreSQL
// (usable con pool o tx).
type PurchaseRequestRepo struct {
	q Querier
}

// NewPurchaseRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRequestRepository(q Querier) *PurchaseRequestRepo {
	return &PurchaseRequestRepo{q: q}
}

// GetByID obtiene la solicitud con sus líneas cargadas, o nil si no existe.
func (r *PurchaseRequestRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
	query := `
		SELECT id, code, status, requester, note, created_at, updated_at
		FROM purchase_requests WHERE id = $1`
	var req entity.PurchaseRequest
	err := r.q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.Code, &req.Status, &req.Requester, &req.Note, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase request: %w", err)
	}

	lineQuery := `
		SELECT id, request_id, sku, cantidad, est_unit_cost, note
		FROM purchase_request_lines WHERE request_id = $1 ORDER BY sku`
	rows, err := r.q.Query(ctx, lineQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list request lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.RequestLine
		if err := rows.Scan(&l.ID, &l.RequestID, &l.SKU, &l.Cantidad, &l.EstUnitCost, &l.Note); err != nil {
			return nil, fmt.Errorf("scan request line: %w", err)
		}
		req.Lines = append(req.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateStatus cambia el estado de la solicitud. La validación de transición
// es del caso de uso.
func (r *PurchaseRequestRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE purchase_requests SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update request status: solicitud %s no existe", id)
	}
	return nil
}
