package dto

import "github.com/shopspring/decimal"

// CostingParamDTO una entrada del almacén de parámetros de costeo.
type CostingParamDTO struct {
	Key       string          `json:"key" validate:"required"`
	Type      string          `json:"type" validate:"required,oneof=number text"`
	NumValue  decimal.Decimal `json:"num_value"`
	TextValue string          `json:"text_value,omitempty"`
	Label     string          `json:"label,omitempty"`
	Unit      string          `json:"unit,omitempty"`
	Group     string          `json:"group,omitempty"`
}

// ConvertCurrencyRequest body para POST /api/settings/convert-currency.
type ConvertCurrencyRequest struct {
	From string          `json:"from" validate:"required,len=3"`
	To   string          `json:"to" validate:"required,len=3"`
	Rate decimal.Decimal `json:"rate"`
}
