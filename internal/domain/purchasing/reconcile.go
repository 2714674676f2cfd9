// Package purchasing implementa el cálculo puro de conciliación de compras:
// cobertura de líneas de solicitud contra órdenes y recepción de líneas de
// orden contra el libro de movimientos. Nada de esto se persiste; los
// pendientes se derivan siempre en la lectura.
package purchasing

import (
	"github.com/shopspring/decimal"

	"github.com/tallersur/taller-api/internal/domain"
	"github.com/tallersur/taller-api/internal/domain/entity"
)

// LineCoverage es la cobertura derivada de una línea de solicitud.
type LineCoverage struct {
	LineID     string
	SKU        string
	Solicitado decimal.Decimal
	Cubierto   decimal.Decimal // Σ cantidad de líneas de orden que la referencian
	Pendiente  decimal.Decimal // max(0, solicitado − cubierto), 3 decimales
}

// RequestCoverage agrega la cobertura de toda la solicitud.
type RequestCoverage struct {
	RequestID    string
	Status       string
	Lines        []LineCoverage
	OrderedTotal decimal.Decimal
	PendingTotal decimal.Decimal
}

// CoverRequest cruza las líneas de la solicitud con todas las líneas de orden
// que les apuntan. El pendiente nunca baja de cero: una sobre-orden es un piso
// de negocio, no un error. Una cobertura negativa (cantidad de orden negativa
// en el esquema) sí es una violación defensiva: ErrInconsistentState.
func CoverRequest(req *entity.PurchaseRequest, orderLines []entity.OrderLine) (RequestCoverage, error) {
	coveredByLine := make(map[string]decimal.Decimal, len(req.Lines))
	for _, ol := range orderLines {
		if ol.RequestLineID == nil {
			continue
		}
		coveredByLine[*ol.RequestLineID] = coveredByLine[*ol.RequestLineID].Add(ol.Cantidad)
	}

	out := RequestCoverage{RequestID: req.ID, Status: req.Status}
	for _, line := range req.Lines {
		covered := coveredByLine[line.ID]
		if covered.IsNegative() {
			return RequestCoverage{}, domain.ErrInconsistentState
		}
		pending := decimal.Max(decimal.Zero, line.Cantidad.Sub(covered)).Round(3)
		out.Lines = append(out.Lines, LineCoverage{
			LineID:     line.ID,
			SKU:        line.SKU,
			Solicitado: line.Cantidad,
			Cubierto:   covered,
			Pendiente:  pending,
		})
		out.OrderedTotal = out.OrderedTotal.Add(covered)
		out.PendingTotal = out.PendingTotal.Add(pending)
	}
	return out, nil
}

// LineReceipt es la recepción derivada de una línea de orden.
type LineReceipt struct {
	LineID    string
	SKU       string
	Pedido    decimal.Decimal
	Recibido  decimal.Decimal // Σ cantidad de recepciones de la orden para el SKU
	Pendiente decimal.Decimal // max(0, pedido − recibido), 3 decimales
	Importe   decimal.Decimal // pedido × costo unitario
}

// OrderReceipt agrega la recepción de toda la orden.
type OrderReceipt struct {
	OrderID      string
	Status       string
	Lines        []LineReceipt
	PendingTotal decimal.Decimal
}

// Fulfilled indica si ya no queda nada pendiente de recibir.
func (r OrderReceipt) Fulfilled() bool { return r.PendingTotal.IsZero() }

// ReceiptForOrder cruza cada línea de la orden con los movimientos de
// recepción del libro que referencian esa orden y ese SKU. Igual que en la
// cobertura, la sobre-entrega se recorta a pendiente cero.
func ReceiptForOrder(order *entity.PurchaseOrder, receipts []entity.LedgerEntry) OrderReceipt {
	receivedBySKU := make(map[string]decimal.Decimal, len(order.Lines))
	for _, mov := range receipts {
		if mov.Kind != entity.MovementPurchaseReceipt {
			continue
		}
		if mov.Ref.Kind != entity.RefPurchaseOrder || mov.Ref.ID != order.ID {
			continue
		}
		receivedBySKU[mov.SKU] = receivedBySKU[mov.SKU].Add(mov.Quantity)
	}

	out := OrderReceipt{OrderID: order.ID, Status: order.Status}
	for _, line := range order.Lines {
		received := receivedBySKU[line.SKU]
		pending := decimal.Max(decimal.Zero, line.Cantidad.Sub(received)).Round(3)
		out.Lines = append(out.Lines, LineReceipt{
			LineID:    line.ID,
			SKU:       line.SKU,
			Pedido:    line.Cantidad,
			Recibido:  received,
			Pendiente: pending,
			Importe:   line.Cantidad.Mul(line.UnitCost),
		})
		out.PendingTotal = out.PendingTotal.Add(pending)
	}
	return out
}
