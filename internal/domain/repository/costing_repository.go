package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tallersur/taller-api/internal/domain/entity"
)

// MachineCategoryRepository es el puerto de persistencia de categorías de
// costeo de máquina.
type MachineCategoryRepository interface {
	GetByID(ctx context.Context, id string) (*entity.MachineCostingCategory, error)
	ListActive(ctx context.Context) ([]entity.MachineCostingCategory, error)

	// UpdateRates reescribe las cuatro tarifas de la categoría (conversión de
	// moneda).
	UpdateRates(ctx context.Context, cat *entity.MachineCostingCategory) error
}

// CostingParamRepository es el puerto del almacén clave/valor de parámetros de
// costeo.
type CostingParamRepository interface {
	Get(ctx context.Context, key string) (*entity.CostingParam, error)
	List(ctx context.Context) ([]entity.CostingParam, error)

	// GlobalRates devuelve todos los parámetros numéricos como mapa clave →
	// valor, para la cadena de fallback de tarifas.
	GlobalRates(ctx context.Context) (map[string]decimal.Decimal, error)

	Upsert(ctx context.Context, param *entity.CostingParam) error
	SetNumValue(ctx context.Context, key string, value decimal.Decimal) error
	SetTextValue(ctx context.Context, key, value string) error
}
