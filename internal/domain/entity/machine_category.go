package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MachineCostingCategory agrupa las tarifas de costeo por categoría de máquina:
// mano de obra por hora, depreciación por hora, herramental por pieza y
// arriendo por hora. Las OT resuelven sus tarifas contra su categoría y caen
// al parámetro global legado si no tienen una asignada.
type MachineCostingCategory struct {
	ID              string
	Name            string
	LaborPerHour    decimal.Decimal
	DeprPerHour     decimal.Decimal
	ToolingPerPiece decimal.Decimal
	RentPerHour     decimal.Decimal
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
