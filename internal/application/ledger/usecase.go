// Package ledger implementa los casos de uso del libro de movimientos y del
// motor de stock/valoración: asiento de movimientos, stock derivado, costo de
// referencia y re-baseline por promedio ponderado.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallersur/taller-api/internal/domain"
	"github.com/tallersur/taller-api/internal/domain/entity"
	"github.com/tallersur/taller-api/internal/domain/repository"
)

// UseCase opera el libro de movimientos. El stock nunca se guarda: se deriva
// en cada lectura como la suma de cantidades del SKU.
type UseCase struct {
	ledgerRepo  repository.LedgerRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(ledgerRepo repository.LedgerRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{ledgerRepo: ledgerRepo, productRepo: productRepo}
}

// validKinds son los tipos de movimiento aceptados por el asiento.
var validKinds = map[string]bool{
	entity.MovementPurchaseReceipt:     true,
	entity.MovementManualAdjustmentIn:  true,
	entity.MovementManualAdjustmentOut: true,
	entity.MovementIssueToWorkOrder:    true,
	entity.MovementReturnFromWorkOrder: true,
}

// AppendMovementInput entrada para asentar un movimiento.
type AppendMovementInput struct {
	SKU      string
	Kind     string
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
	Ref      entity.DocumentRef
	Note     string
}

// AppendMovement asienta una fila inmutable en el libro. Falla con
// ErrInvalidInput si la cantidad es cero o el tipo no existe, y con
// ErrUnknownSKU si el SKU no está en el catálogo. La convención de signo la
// impone el que escribe; el libro acepta cualquier cantidad con signo.
func (uc *UseCase) AppendMovement(ctx context.Context, in AppendMovementInput) (*entity.LedgerEntry, error) {
	if in.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !validKinds[in.Kind] {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrUnknownSKU
	}

	now := time.Now()
	entry := &entity.LedgerEntry{
		ID:        uuid.New().String(),
		SKU:       in.SKU,
		Kind:      in.Kind,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Ref:       in.Ref,
		Note:      in.Note,
		Date:      now,
		CreatedAt: now,
	}
	if err := uc.ledgerRepo.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetStock devuelve el stock actual del SKU. Un SKU inexistente o sin
// movimientos devuelve 0, sin error: la corrección todo-o-nada aplica al
// invariante de suma, no al chequeo de existencia.
func (uc *UseCase) GetStock(ctx context.Context, sku string) (decimal.Decimal, error) {
	return uc.ledgerRepo.SumBySKU(ctx, sku)
}

// GetStockAll devuelve el stock de todos los SKUs en una agregación agrupada.
func (uc *UseCase) GetStockAll(ctx context.Context) (map[string]decimal.Decimal, error) {
	return uc.ledgerRepo.SumAll(ctx)
}

// GetReferenceCost devuelve el costo unitario de la recepción más reciente del
// SKU; si no hay recepciones cae al costo de referencia guardado del producto.
func (uc *UseCase) GetReferenceCost(ctx context.Context, sku string) (decimal.Decimal, error) {
	product, err := uc.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, domain.ErrUnknownSKU
	}
	last, err := uc.ledgerRepo.LastReceiptCost(ctx, sku)
	if err != nil {
		return decimal.Zero, err
	}
	if last != nil {
		return *last, nil
	}
	return product.CostoRef, nil
}
