package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tallersur/taller-api/internal/domain"
	"github.com/tallersur/taller-api/internal/domain/entity"
	"github.com/tallersur/taller-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del libro de movimientos sobre PostgreSQL (usable
// con pool o tx). La tabla stock_ledger solo recibe INSERT: no hay UPDATE ni
// DELETE en ninguna consulta de este repo.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// refToColumns descompone el DocumentRef en el par de columnas nullable.
func refToColumns(ref entity.DocumentRef) (*string, *string) {
	if ref.IsZero() {
		return nil, nil
	}
	kind := string(ref.Kind)
	id := ref.ID
	return &kind, &id
}

// refFromColumns reconstruye el DocumentRef desde las columnas nullable.
func refFromColumns(kind, id *string) entity.DocumentRef {
	if kind == nil || id == nil {
		return entity.NoRef()
	}
	return entity.DocumentRef{Kind: entity.RefKind(*kind), ID: *id}
}

// Append persiste un asiento del libro.
func (r *LedgerRepo) Append(ctx context.Context, entry *entity.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	refKind, refID := refToColumns(entry.Ref)
	query := `
		INSERT INTO stock_ledger (id, sku, kind, quantity, unit_cost, ref_kind, ref_id, note, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.SKU, entry.Kind, entry.Quantity, entry.UnitCost,
		refKind, refID, entry.Note, entry.Date, entry.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Reintento con el mismo ID de asiento: el libro ya lo tiene.
			return domain.ErrDuplicate
		}
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// SumBySKU devuelve el stock derivado de un SKU. COALESCE garantiza 0 sin
// error para SKU sin movimientos.
func (r *LedgerRepo) SumBySKU(ctx context.Context, sku string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock_ledger WHERE sku = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, sku).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum ledger by sku: %w", err)
	}
	return total, nil
}

// SumAll devuelve el stock de todos los SKUs con movimientos en una sola
// agregación agrupada.
func (r *LedgerRepo) SumAll(ctx context.Context) (map[string]decimal.Decimal, error) {
	query := `SELECT sku, SUM(quantity) FROM stock_ledger GROUP BY sku`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sum ledger grouped: %w", err)
	}
	defer rows.Close()

	out := map[string]decimal.Decimal{}
	for rows.Next() {
		var sku string
		var total decimal.Decimal
		if err := rows.Scan(&sku, &total); err != nil {
			return nil, fmt.Errorf("scan ledger sum: %w", err)
		}
		out[sku] = total
	}
	return out, rows.Err()
}

// LastReceiptCost devuelve el costo unitario de la recepción más reciente del
// SKU, o nil si nunca hubo una.
func (r *LedgerRepo) LastReceiptCost(ctx context.Context, sku string) (*decimal.Decimal, error) {
	query := `
		SELECT unit_cost FROM stock_ledger
		WHERE sku = $1 AND kind = ANY($2) AND quantity > 0
		ORDER BY date DESC, created_at DESC
		LIMIT 1`
	var cost decimal.Decimal
	err := r.q.QueryRow(ctx, query, sku, entity.ReceiptKinds).Scan(&cost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last receipt cost: %w", err)
	}
	return &cost, nil
}

// RecentReceipts lista las recepciones con cantidad positiva del SKU, de más
// reciente a más antigua, hasta limit filas.
func (r *LedgerRepo) RecentReceipts(ctx context.Context, sku string, limit int) ([]entity.LedgerEntry, error) {
	query := `
		SELECT id, sku, kind, quantity, unit_cost, ref_kind, ref_id, note, date, created_at
		FROM stock_ledger
		WHERE sku = $1 AND kind = ANY($2) AND quantity > 0
		ORDER BY date DESC, created_at DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, sku, entity.ReceiptKinds, limit)
	if err != nil {
		return nil, fmt.Errorf("recent receipts: %w", err)
	}
	defer rows.Close()
	return scanLedgerEntries(rows)
}

// ListByRef lista los movimientos que referencian un documento (OT u OC).
func (r *LedgerRepo) ListByRef(ctx context.Context, ref entity.DocumentRef) ([]entity.LedgerEntry, error) {
	query := `
		SELECT id, sku, kind, quantity, unit_cost, ref_kind, ref_id, note, date, created_at
		FROM stock_ledger
		WHERE ref_kind = $1 AND ref_id = $2
		ORDER BY date ASC, created_at ASC`
	rows, err := r.q.Query(ctx, query, string(ref.Kind), ref.ID)
	if err != nil {
		return nil, fmt.Errorf("list ledger by ref: %w", err)
	}
	defer rows.Close()
	return scanLedgerEntries(rows)
}

// SKUsWithReceipts lista los SKUs que tienen al menos una recepción.
func (r *LedgerRepo) SKUsWithReceipts(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT sku FROM stock_ledger
		WHERE kind = ANY($1) AND quantity > 0
		ORDER BY sku`
	rows, err := r.q.Query(ctx, query, entity.ReceiptKinds)
	if err != nil {
		return nil, fmt.Errorf("skus with receipts: %w", err)
	}
	defer rows.Close()

	var skus []string
	for rows.Next() {
		var sku string
		if err := rows.Scan(&sku); err != nil {
			return nil, fmt.Errorf("scan sku: %w", err)
		}
		skus = append(skus, sku)
	}
	return skus, rows.Err()
}

func scanLedgerEntries(rows pgx.Rows) ([]entity.LedgerEntry, error) {
	var list []entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		var refKind, refID *string
		if err := rows.Scan(&e.ID, &e.SKU, &e.Kind, &e.Quantity, &e.UnitCost,
			&refKind, &refID, &e.Note, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.Ref = refFromColumns(refKind, refID)
		list = append(list, e)
	}
	return list, rows.Err()
}
