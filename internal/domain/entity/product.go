package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo de inventario identificado por SKU.
// CostoRef es el costo de referencia: se fija manualmente al crear el producto
// y después solo lo muta el motor de valoración (re-baseline) o un override manual.
// El stock NO se guarda aquí: siempre se deriva del libro de movimientos.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Category    string
	UnitMeasure string          // un, kg, m, lt...
	CostoRef    decimal.Decimal // costo de referencia
	MinStock    *decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
