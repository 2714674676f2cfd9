package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tallersur/taller-api/internal/domain/entity"
)

// WorkOrderRepository es el puerto de persistencia de órdenes de trabajo.
type WorkOrderRepository interface {
	// GetByID devuelve la OT con sus líneas de material y de piezas cargadas,
	// o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.WorkOrder, error)

	// UpdateCostSnapshot persiste los cuatro campos de costo de una vez.
	UpdateCostSnapshot(ctx context.Context, id string, snap entity.CostSnapshot) error

	UpdateStatus(ctx context.Context, id, status string) error

	// AddIssuedQty incrementa el contador corrido de cantidad emitida de la
	// línea de material.
	AddIssuedQty(ctx context.Context, materialLineID string, qty decimal.Decimal) error

	// SetPieceDone fija la cantidad hecha de una línea de piezas.
	SetPieceDone(ctx context.Context, pieceLineID string, qtyHecha decimal.Decimal) error
}

// ProductionLogRepository es el puerto de persistencia de partes de producción.
type ProductionLogRepository interface {
	Create(ctx context.Context, log *entity.ProductionLogEntry) error
	ListByWorkOrder(ctx context.Context, workOrderID string) ([]entity.ProductionLogEntry, error)
}
