package costing

import (
	"github.com/shopspring/decimal"

	"github.com/tallersur/taller-api/internal/domain/entity"
)

// RollupInput es la foto completa de fuentes de un rollup: movimientos del
// libro que referencian la OT, partes de producción, líneas de piezas y las
// tarifas ya resueltas.
type RollupInput struct {
	Movements []entity.LedgerEntry
	Logs      []entity.ProductionLogEntry
	Pieces    []entity.PieceLine
	Rates     RateSet
}

// Rollup recalcula el snapshot de costos de una OT desde el historial
// completo. No es incremental a propósito: siempre recomputa desde las
// fuentes, lo que lo hace idempotente frente a reejecuciones.
//
//	materiales = Σ |cantidad| × costoUnitario   (solo salidas, cantidad < 0)
//	manoObra   = Σ horas × tarifaHora
//	indirectos = horasTotal × (arriendoHora + deprHora) + piezasHechas × herramentalPieza
//	total      = materiales + manoObra + indirectos
//
// Cada componente se redondea a 2 decimales antes de sumar el total, de modo
// que total == materiales + manoObra + indirectos exactamente como quedan
// almacenados.
func Rollup(in RollupInput) entity.CostSnapshot {
	materials := decimal.Zero
	for _, m := range in.Movements {
		if m.Quantity.IsNegative() {
			materials = materials.Add(m.Quantity.Abs().Mul(m.UnitCost))
		}
	}
	materials = materials.Round(2)

	hoursTotal := decimal.Zero
	for _, l := range in.Logs {
		hoursTotal = hoursTotal.Add(l.Horas)
	}
	labor := hoursTotal.Mul(in.Rates.LaborPerHour).Round(2)

	piecesDone := decimal.Zero
	for _, p := range in.Pieces {
		piecesDone = piecesDone.Add(p.QtyHecha)
	}
	overhead := hoursTotal.Mul(in.Rates.RentPerHour.Add(in.Rates.DeprPerHour)).
		Add(piecesDone.Mul(in.Rates.ToolingPerPiece)).
		Round(2)

	total := materials.Add(labor).Add(overhead).Round(2)

	return entity.CostSnapshot{
		Materials: materials,
		Labor:     labor,
		Overhead:  overhead,
		Total:     total,
	}
}
