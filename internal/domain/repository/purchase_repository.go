package repository

import (
	"context"

	"github.com/tallersur/taller-api/internal/domain/entity"
)

// PurchaseRequestRepository es el puerto de persistencia de solicitudes de
// compra.
type PurchaseRequestRepository interface {
	// GetByID devuelve la solicitud con sus líneas cargadas, o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.PurchaseRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// PurchaseOrderRepository es el puerto de persistencia de órdenes de compra.
type PurchaseOrderRepository interface {
	// GetByID devuelve la orden con sus líneas cargadas, o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id, status string) error

	// ListLinesByRequest lista todas las líneas de orden que trazan a alguna
	// línea de la solicitud indicada, a través de cualquier orden.
	ListLinesByRequest(ctx context.Context, requestID string) ([]entity.OrderLine, error)
}
