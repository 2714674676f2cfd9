package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tallersur/taller-api/internal/domain/entity"
)

// LedgerRepository es el puerto de persistencia del libro de movimientos.
// El libro es append-only: no existe Update ni Delete; las correcciones se
// hacen con contraasientos.
type LedgerRepository interface {
	Append(ctx context.Context, entry *entity.LedgerEntry) error

	// SumBySKU devuelve el stock derivado de un SKU (suma de cantidades).
	// SKU sin movimientos = 0, sin error.
	SumBySKU(ctx context.Context, sku string) (decimal.Decimal, error)

	// SumAll devuelve el stock de todos los SKUs con movimientos en una sola
	// agregación agrupada.
	SumAll(ctx context.Context) (map[string]decimal.Decimal, error)

	// LastReceiptCost devuelve el costo unitario de la recepción más reciente
	// (PURCHASE_RECEIPT o MANUAL_ADJUSTMENT_IN) del SKU, o nil si no hay.
	LastReceiptCost(ctx context.Context, sku string) (*decimal.Decimal, error)

	// RecentReceipts lista las recepciones con cantidad positiva del SKU, de
	// más reciente a más antigua, hasta limit filas.
	RecentReceipts(ctx context.Context, sku string, limit int) ([]entity.LedgerEntry, error)

	// ListByRef lista los movimientos que referencian un documento (OT u OC).
	ListByRef(ctx context.Context, ref entity.DocumentRef) ([]entity.LedgerEntry, error)

	// SKUsWithReceipts lista los SKUs que tienen al menos una recepción.
	SKUsWithReceipts(ctx context.Context) ([]string, error)
}
