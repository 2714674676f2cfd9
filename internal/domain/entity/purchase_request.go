package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una solicitud de compra (SC).
const (
	RequestOpen      = "OPEN"
	RequestApproved  = "APPROVED"
	RequestRejected  = "REJECTED"
	RequestCancelled = "CANCELLED"
)

// requestTransitions define la máquina de estados de la SC.
// REJECTED y CANCELLED son absorbentes.
var requestTransitions = map[string][]string{
	RequestOpen:     {RequestApproved, RequestRejected, RequestCancelled},
	RequestApproved: {RequestCancelled},
}

// CanTransitionRequest indica si el cambio de estado from → to es válido.
func CanTransitionRequest(from, to string) bool {
	for _, next := range requestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PurchaseRequest es una solicitud de compra: el primer nivel de la jerarquía
// solicitud → orden → recepción física. Una solicitud puede originar varias
// órdenes de compra.
type PurchaseRequest struct {
	ID        string
	Code      string
	Status    string
	Requester string
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time

	Lines []RequestLine
}

// RequestLine es una línea solicitada. La cobertura (cuánto ya está pedido en
// órdenes) no se persiste: se deriva en lectura desde las líneas de orden que
// la referencian.
type RequestLine struct {
	ID          string
	RequestID   string
	SKU         string
	Cantidad    decimal.Decimal // cantidad solicitada
	EstUnitCost decimal.Decimal // costo unitario estimado
	Note        string
}
