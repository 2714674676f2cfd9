package costing

import (
	"github.com/shopspring/decimal"

	"github.com/tallersur/taller-api/internal/domain/entity"
)

// DefaultWACSampleSize es la ventana por defecto de recepciones recientes
// sobre la que se promedia. Es un parámetro afinable (config COSTING_WAC_SAMPLE),
// no una constante del algoritmo.
const DefaultWACSampleSize = 10

// WeightedAverageCost calcula el costo promedio ponderado por cantidad sobre
// las recepciones recibidas (se esperan ya ordenadas de más reciente a más
// antigua). Solo cuentan movimientos con cantidad positiva; se toman como
// máximo sampleSize. Devuelve ok=false si no hay recepciones utilizables, en
// cuyo caso el costo de referencia del producto no debe tocarse.
func WeightedAverageCost(receipts []entity.LedgerEntry, sampleSize int) (decimal.Decimal, bool) {
	if sampleSize <= 0 {
		sampleSize = DefaultWACSampleSize
	}
	qtySum := decimal.Zero
	costSum := decimal.Zero
	taken := 0
	for _, r := range receipts {
		if taken == sampleSize {
			break
		}
		if !r.Quantity.IsPositive() {
			continue
		}
		qtySum = qtySum.Add(r.Quantity)
		costSum = costSum.Add(r.Quantity.Mul(r.UnitCost))
		taken++
	}
	if taken == 0 || !qtySum.IsPositive() {
		return decimal.Zero, false
	}
	return costSum.Div(qtySum).Round(2), true
}
