package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de valor de un parámetro de costeo.
const (
	ParamTypeNumber = "number"
	ParamTypeText   = "text"
)

// Claves de parámetros globales legados (anteriores al costeo por categoría).
const (
	ParamHourlyRate      = "hourlyRate"      // tarifa hora global por defecto
	ParamRentPerHour     = "rentPerHour"     // arriendo por hora global
	ParamDeprPerHour     = "deprPerHour"     // depreciación por hora global
	ParamToolingPerPiece = "toolingPerPiece" // herramental por pieza global
	ParamCurrency        = "currency"        // moneda operativa activa
)

// CostingParam es una entrada del almacén genérico clave/valor de parámetros
// de costeo. Type discrimina si el valor vigente es NumValue o TextValue.
type CostingParam struct {
	Key       string
	Type      string
	NumValue  decimal.Decimal
	TextValue string
	Label     string
	Unit      string
	Group     string
	UpdatedAt time.Time
}

// IsNumeric indica si el parámetro guarda un valor numérico.
func (p CostingParam) IsNumeric() bool { return p.Type == ParamTypeNumber }
