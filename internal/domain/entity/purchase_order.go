package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra (OC).
const (
	OrderDraft             = "DRAFT"
	OrderIssued            = "ISSUED"
	OrderPartiallyReceived = "PARTIALLY_RECEIVED"
	OrderReceived          = "RECEIVED"
	OrderCancelled         = "CANCELLED"
)

// orderTransitions define la máquina de estados de la OC.
// CANCELLED es absorbente; el paso a PARTIALLY_RECEIVED/RECEIVED lo decide la
// recepción según las cantidades pendientes recalculadas.
var orderTransitions = map[string][]string{
	OrderDraft:             {OrderIssued, OrderCancelled},
	OrderIssued:            {OrderPartiallyReceived, OrderReceived, OrderCancelled},
	OrderPartiallyReceived: {OrderPartiallyReceived, OrderReceived, OrderCancelled},
}

// CanTransitionOrder indica si el cambio de estado from → to es válido.
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PurchaseOrder es una orden de compra emitida a un proveedor. Puede nacer de
// una solicitud de compra (RequestID) o directa.
type PurchaseOrder struct {
	ID        string
	Code      string
	Status    string
	Supplier  string
	RequestID *string // solicitud origen, si existe
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time

	Lines []OrderLine
}

// OrderLine es una línea pedida. RequestLineID traza la línea de solicitud que
// cubre, si aplica; lo recibido se deriva en lectura desde el libro de
// movimientos (recepciones que referencian la orden y el SKU).
type OrderLine struct {
	ID            string
	OrderID       string
	SKU           string
	Cantidad      decimal.Decimal // cantidad pedida
	UnitCost      decimal.Decimal
	RequestLineID *string
}
