package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallersur/taller-api/internal/domain"
	"github.com/tallersur/taller-api/internal/domain/entity"
	domainpurch "github.com/tallersur/taller-api/internal/domain/purchasing"
	"github.com/tallersur/taller-api/internal/domain/repository"
)

// ReceiptLineInput es una línea de recepción física: cuánto llegó de qué SKU.
// UnitCost nil usa el costo unitario pactado en la línea de orden.
type ReceiptLineInput struct {
	SKU      string
	Cantidad decimal.Decimal
	UnitCost *decimal.Decimal
	Note     string
}

// ReceiveOrder registra una recepción física contra la orden: asienta un
// movimiento PURCHASE_RECEIPT por línea recibida (referenciando la orden) y
// actualiza el estado de la orden según el pendiente recalculado
// (PARTIALLY_RECEIVED o RECEIVED). Asientos y estado commitean juntos.
func (uc *UseCase) ReceiveOrder(ctx context.Context, orderID string, lines []ReceiptLineInput) (domainpurch.OrderReceipt, error) {
	if len(lines) == 0 {
		return domainpurch.OrderReceipt{}, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return domainpurch.OrderReceipt{}, err
	}
	if order == nil {
		return domainpurch.OrderReceipt{}, domain.ErrNotFound
	}
	if order.Status != entity.OrderIssued && order.Status != entity.OrderPartiallyReceived {
		return domainpurch.OrderReceipt{}, domain.ErrInvalidTransition
	}

	// Cada SKU recibido debe estar pedido en la orden; el costo por defecto es
	// el pactado en la línea.
	costBySKU := make(map[string]decimal.Decimal, len(order.Lines))
	for _, ol := range order.Lines {
		costBySKU[ol.SKU] = ol.UnitCost
	}
	for _, in := range lines {
		if !in.Cantidad.IsPositive() {
			return domainpurch.OrderReceipt{}, domain.ErrInvalidInput
		}
		if _, ok := costBySKU[in.SKU]; !ok {
			return domainpurch.OrderReceipt{}, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	var result domainpurch.OrderReceipt
	err = uc.txRunner.RunPurchasing(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		for _, in := range lines {
			unitCost := costBySKU[in.SKU]
			if in.UnitCost != nil {
				unitCost = *in.UnitCost
			}
			entry := &entity.LedgerEntry{
				ID:        uuid.New().String(),
				SKU:       in.SKU,
				Kind:      entity.MovementPurchaseReceipt,
				Quantity:  in.Cantidad,
				UnitCost:  unitCost,
				Ref:       entity.PurchaseOrderRef(orderID),
				Note:      in.Note,
				Date:      now,
				CreatedAt: now,
			}
			if err := ledgerRepo.Append(ctx, entry); err != nil {
				return err
			}
		}

		// Estado derivado del pendiente con los asientos recién escritos.
		receipts, err := ledgerRepo.ListByRef(ctx, entity.PurchaseOrderRef(orderID))
		if err != nil {
			return err
		}
		result = domainpurch.ReceiptForOrder(order, receipts)
		newStatus := entity.OrderPartiallyReceived
		if result.Fulfilled() {
			newStatus = entity.OrderReceived
		}
		result.Status = newStatus
		return orderRepo.UpdateStatus(ctx, orderID, newStatus)
	})
	if err != nil {
		return domainpurch.OrderReceipt{}, err
	}
	return result, nil
}
