package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionLogEntry es un parte de producción: horas trabajadas sobre una OT.
type ProductionLogEntry struct {
	ID          string
	WorkOrderID string
	UserID      string
	MachineID   string
	Horas       decimal.Decimal
	Date        time.Time
	CreatedAt   time.Time
}
