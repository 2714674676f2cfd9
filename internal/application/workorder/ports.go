package workorder

import (
	"context"

	"github.com/tallersur/taller-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el snapshot de costos de la OT
// se escriba completo o no se escriba: un lector nunca ve materiales nuevos
// con mano de obra vieja.
type TxRunner interface {
	RunWorkOrder(ctx context.Context, fn func(
		woRepo repository.WorkOrderRepository,
		ledgerRepo repository.LedgerRepository,
		logRepo repository.ProductionLogRepository,
	) error) error
}
