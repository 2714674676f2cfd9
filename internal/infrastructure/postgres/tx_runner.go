package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallersur/taller-api/internal/application/costing"
	"github.com/tallersur/taller-api/internal/application/purchasing"
	"github.com/tallersur/taller-api/internal/application/workorder"
	"github.com/tallersur/taller-api/internal/domain/repository"
)

// Ensure TxRunner implements the application transaction ports.
var _ workorder.TxRunner = (*TxRunner)(nil)
var _ purchasing.TxRunner = (*TxRunner)(nil)
var _ costing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunWorkOrder inicia una transacción con los repos de OT, libro y partes de
// producción y hace Commit o Rollback.
func (r *TxRunner) RunWorkOrder(ctx context.Context, fn func(
	woRepo repository.WorkOrderRepository,
	ledgerRepo repository.LedgerRepository,
	logRepo repository.ProductionLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	woRepo := NewWorkOrderRepository(tx)
	ledgerRepo := NewLedgerRepository(tx)
	logRepo := NewProductionLogRepository(tx)

	if err := fn(woRepo, ledgerRepo, logRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPurchasing inicia una transacción con los repos de órdenes de compra y
// libro (recepción de mercancía).
func (r *TxRunner) RunPurchasing(ctx context.Context, fn func(
	orderRepo repository.PurchaseOrderRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewPurchaseOrderRepository(tx)
	ledgerRepo := NewLedgerRepository(tx)

	if err := fn(orderRepo, ledgerRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCosting inicia una transacción con los repos de categorías y parámetros
// de costeo (conversión de moneda).
func (r *TxRunner) RunCosting(ctx context.Context, fn func(
	catRepo repository.MachineCategoryRepository,
	paramRepo repository.CostingParamRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	catRepo := NewMachineCategoryRepository(tx)
	paramRepo := NewCostingParamRepository(tx)

	if err := fn(catRepo, paramRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
