package dto

import "github.com/shopspring/decimal"

// CostSnapshotResponse los cuatro campos del snapshot de costos de una OT.
type CostSnapshotResponse struct {
	Materials decimal.Decimal `json:"cost_materials"`
	Labor     decimal.Decimal `json:"cost_labor"`
	Overhead  decimal.Decimal `json:"cost_overhead"`
	Total     decimal.Decimal `json:"cost_total"`
}

// ChangeStatusRequest body para PUT /api/work-orders/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// IssueMaterialRequest body para POST /api/work-orders/:id/issues.
type IssueMaterialRequest struct {
	MaterialLineID string          `json:"material_line_id" validate:"required"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Note           string          `json:"note,omitempty"`
}

// LogProductionRequest body para POST /api/work-orders/:id/production-logs.
type LogProductionRequest struct {
	UserID    string          `json:"user_id" validate:"required"`
	MachineID string          `json:"machine_id,omitempty"`
	Horas     decimal.Decimal `json:"horas"`
	Date      string          `json:"date,omitempty"` // RFC 3339; vacío = ahora
}

// CompletePiecesRequest body para PUT /api/work-orders/:id/pieces.
type CompletePiecesRequest struct {
	PieceLineID string          `json:"piece_line_id" validate:"required"`
	QtyHecha    decimal.Decimal `json:"qty_hecha"`
}
