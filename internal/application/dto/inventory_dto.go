package dto

import "github.com/shopspring/decimal"

// AppendMovementRequest body para POST /api/inventory/movements.
// ref_kind y ref_id van juntos o no van: un movimiento manual no referencia
// ningún documento.
type AppendMovementRequest struct {
	SKU      string          `json:"sku" validate:"required"`
	Kind     string          `json:"kind" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	RefKind  string          `json:"ref_kind,omitempty" validate:"omitempty,oneof=work_order purchase_order"`
	RefID    string          `json:"ref_id,omitempty" validate:"required_with=RefKind"`
	Note     string          `json:"note,omitempty"`
}

// MovementResponse asiento devuelto tras registrar un movimiento.
type MovementResponse struct {
	ID       string          `json:"id"`
	SKU      string          `json:"sku"`
	Kind     string          `json:"kind"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	RefKind  string          `json:"ref_kind,omitempty"`
	RefID    string          `json:"ref_id,omitempty"`
	Note     string          `json:"note,omitempty"`
	Date     string          `json:"date"`
}

// StockResponse stock derivado de un SKU.
type StockResponse struct {
	SKU   string          `json:"sku"`
	Stock decimal.Decimal `json:"stock"`
}

// ReferenceCostResponse costo de referencia vigente de un SKU.
type ReferenceCostResponse struct {
	SKU  string          `json:"sku"`
	Cost decimal.Decimal `json:"cost"`
}

// RebaselineResponse resultado del re-baseline de costos de referencia.
type RebaselineResponse struct {
	UpdatedSKUs int `json:"updated_skus"`
}
