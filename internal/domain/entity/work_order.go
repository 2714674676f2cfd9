package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de trabajo (OT).
const (
	WorkOrderDraft      = "DRAFT"
	WorkOrderOpen       = "OPEN"
	WorkOrderInProgress = "IN_PROGRESS"
	WorkOrderDone       = "DONE"
	WorkOrderCancelled  = "CANCELLED"
)

// workOrderTransitions define la máquina de estados de la OT.
// CANCELLED es alcanzable desde cualquier estado no terminal.
var workOrderTransitions = map[string][]string{
	WorkOrderDraft:      {WorkOrderOpen, WorkOrderCancelled},
	WorkOrderOpen:       {WorkOrderInProgress, WorkOrderCancelled},
	WorkOrderInProgress: {WorkOrderDone, WorkOrderCancelled},
}

// CanTransitionWorkOrder indica si el cambio de estado from → to es válido.
func CanTransitionWorkOrder(from, to string) bool {
	for _, next := range workOrderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// WorkOrder es una orden de trabajo de producción. Los cuatro campos de costo
// son un snapshot materializado: una cache de una función pura sobre el libro
// de movimientos, los partes de producción y las piezas. El único escritor es
// el recálculo de costos; un lector no debe asumir frescura más allá del
// último recálculo explícito.
type WorkOrder struct {
	ID            string
	Code          string
	Status        string
	Priority      int
	MachineCatID  *string // categoría de costeo de máquina; nil = fallback global
	CostMaterials *decimal.Decimal
	CostLabor     *decimal.Decimal
	CostOverhead  *decimal.Decimal
	CostTotal     *decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Materials []MaterialLine
	Pieces    []PieceLine
}

// MaterialLine es una línea de material planificado de la OT.
// QtyEmitida es un contador corrido que incrementa cada salida de material.
type MaterialLine struct {
	ID          string
	WorkOrderID string
	SKU         string
	QtyPlan     decimal.Decimal
	QtyEmitida  decimal.Decimal
}

// PieceLine es una línea de piezas a fabricar de la OT.
type PieceLine struct {
	ID          string
	WorkOrderID string
	Description string
	QtyPlan     decimal.Decimal
	QtyHecha    decimal.Decimal
}

// CostSnapshot agrupa el resultado de un recálculo de costos.
type CostSnapshot struct {
	Materials decimal.Decimal
	Labor     decimal.Decimal
	Overhead  decimal.Decimal
	Total     decimal.Decimal
}
