package purchasing

import (
	"context"

	"github.com/tallersur/taller-api/internal/domain/entity"
	domainpurch "github.com/tallersur/taller-api/internal/domain/purchasing"
	"github.com/tallersur/taller-api/internal/domain/repository"
)

// TxRunner ejecuta la recepción de una orden dentro de una transacción:
// asientos de recepción y cambio de estado de la orden commitean juntos.
type TxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		orderRepo repository.PurchaseOrderRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}

// OrderPDFGenerator genera el documento PDF de una orden de compra con su
// estado de recepción.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.PurchaseOrder, receipt domainpurch.OrderReceipt) ([]byte, error)
}
