// Package costing implementa los servicios puros de costeo: resolución de
// tarifas con cadena de fallback, rollup de costos de OT y costo promedio
// ponderado por ventana de recepciones.
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/tallersur/taller-api/internal/domain/entity"
)

// RateSet son las tarifas ya resueltas que consume el rollup.
type RateSet struct {
	LaborPerHour    decimal.Decimal
	DeprPerHour     decimal.Decimal
	ToolingPerPiece decimal.Decimal
	RentPerHour     decimal.Decimal
}

// ResolveRates aplica la cadena de fallback de tarifas, en orden:
//
//  1. categoría de costeo de la máquina (si la OT tiene una activa asignada)
//  2. parámetro global legado (hourlyRate, rentPerHour, deprPerHour, toolingPerPiece)
//  3. cero
//
// Una tarifa faltante no es un error: degrada a aporte cero en el componente
// de costo correspondiente. Las categorías inactivas se tratan como ausentes.
func ResolveRates(cat *entity.MachineCostingCategory, globals map[string]decimal.Decimal) RateSet {
	if cat != nil && cat.Active {
		return RateSet{
			LaborPerHour:    cat.LaborPerHour,
			DeprPerHour:     cat.DeprPerHour,
			ToolingPerPiece: cat.ToolingPerPiece,
			RentPerHour:     cat.RentPerHour,
		}
	}
	return RateSet{
		LaborPerHour:    globalOrZero(globals, entity.ParamHourlyRate),
		DeprPerHour:     globalOrZero(globals, entity.ParamDeprPerHour),
		ToolingPerPiece: globalOrZero(globals, entity.ParamToolingPerPiece),
		RentPerHour:     globalOrZero(globals, entity.ParamRentPerHour),
	}
}

func globalOrZero(globals map[string]decimal.Decimal, key string) decimal.Decimal {
	if v, ok := globals[key]; ok {
		return v
	}
	return decimal.Zero
}
