package dto

import "github.com/shopspring/decimal"

// LineCoverageDTO cobertura derivada de una línea de solicitud.
type LineCoverageDTO struct {
	LineID     string          `json:"line_id"`
	SKU        string          `json:"sku"`
	Solicitado decimal.Decimal `json:"solicitado"`
	Cubierto   decimal.Decimal `json:"cubierto"`
	Pendiente  decimal.Decimal `json:"pendiente"`
}

// RequestCoverageResponse cobertura agregada de una solicitud de compra.
type RequestCoverageResponse struct {
	RequestID    string            `json:"request_id"`
	Status       string            `json:"status"`
	Lines        []LineCoverageDTO `json:"lines"`
	OrderedTotal decimal.Decimal   `json:"ordered_total"`
	PendingTotal decimal.Decimal   `json:"pending_total"`
}

// LineReceiptDTO recepción derivada de una línea de orden.
type LineReceiptDTO struct {
	LineID    string          `json:"line_id"`
	SKU       string          `json:"sku"`
	Pedido    decimal.Decimal `json:"pedido"`
	Recibido  decimal.Decimal `json:"recibido"`
	Pendiente decimal.Decimal `json:"pendiente"`
	Importe   decimal.Decimal `json:"importe"`
}

// OrderReceiptResponse recepción agregada de una orden de compra.
type OrderReceiptResponse struct {
	OrderID      string           `json:"order_id"`
	Status       string           `json:"status"`
	Lines        []LineReceiptDTO `json:"lines"`
	PendingTotal decimal.Decimal  `json:"pending_total"`
	Fulfilled    bool             `json:"fulfilled"`
}

// ReceiveLineRequest una línea recibida físicamente.
type ReceiveLineRequest struct {
	SKU      string           `json:"sku" validate:"required"`
	Cantidad decimal.Decimal  `json:"cantidad"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
	Note     string           `json:"note,omitempty"`
}

// ReceiveOrderRequest body para POST /api/purchase-orders/:id/receive.
type ReceiveOrderRequest struct {
	Lines []ReceiveLineRequest `json:"lines" validate:"required,min=1,dive"`
}
