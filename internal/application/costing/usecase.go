// Package costing implementa los casos de uso sobre el almacén de parámetros
// de costeo: consulta y edición de parámetros y la conversión masiva de
// moneda.
package costing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallersur/taller-api/internal/domain"
	"github.com/tallersur/taller-api/internal/domain/entity"
	"github.com/tallersur/taller-api/internal/domain/repository"
)

// TxRunner ejecuta la conversión de moneda en una sola transacción: o se
// reescriben todas las tarifas y parámetros y voltea la bandera de moneda, o
// no cambia nada. El almacén nunca queda en estado de moneda mixta.
type TxRunner interface {
	RunCosting(ctx context.Context, fn func(
		catRepo repository.MachineCategoryRepository,
		paramRepo repository.CostingParamRepository,
	) error) error
}

// UseCase opera el almacén de parámetros de costeo.
type UseCase struct {
	txRunner  TxRunner
	catRepo   repository.MachineCategoryRepository
	paramRepo repository.CostingParamRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, catRepo repository.MachineCategoryRepository, paramRepo repository.CostingParamRepository) *UseCase {
	return &UseCase{txRunner: txRunner, catRepo: catRepo, paramRepo: paramRepo}
}

// ListParams lista todos los parámetros.
func (uc *UseCase) ListParams(ctx context.Context) ([]entity.CostingParam, error) {
	return uc.paramRepo.List(ctx)
}

// SetParam crea o actualiza un parámetro.
func (uc *UseCase) SetParam(ctx context.Context, param *entity.CostingParam) error {
	if param.Key == "" {
		return domain.ErrInvalidInput
	}
	switch param.Type {
	case entity.ParamTypeNumber, entity.ParamTypeText:
	default:
		return domain.ErrInvalidInput
	}
	param.UpdatedAt = time.Now()
	return uc.paramRepo.Upsert(ctx, param)
}

// ConvertCurrency reescribe todos los valores del almacén de parámetros de una
// moneda a otra con una tasa fija: cada tarifa de cada categoría activa y cada
// parámetro numérico se multiplica por la tasa y se redondea a 2 decimales, y
// el parámetro currency pasa a la moneda destino. Todo en una transacción.
//
// La tasa se interpreta como unidades de `to` por unidad de `from`, de modo
// que convertir con tasa R y volver con 1/R reproduce los valores originales
// dentro de una unidad de redondeo. Reejecutar una conversión fallida con los
// mismos parámetros es seguro: la transacción fallida no dejó rastro.
func (uc *UseCase) ConvertCurrency(ctx context.Context, from, to string, rate decimal.Decimal) error {
	if from == "" || to == "" || from == to {
		return domain.ErrInvalidInput
	}
	if !rate.IsPositive() {
		return domain.ErrInvalidInput
	}
	current, err := uc.paramRepo.Get(ctx, entity.ParamCurrency)
	if err != nil {
		return err
	}
	if current != nil && current.TextValue != from {
		// La moneda activa no es la de origen declarada: abortar antes de
		// mezclar monedas.
		return domain.ErrInvalidInput
	}

	return uc.txRunner.RunCosting(ctx, func(
		catRepo repository.MachineCategoryRepository,
		paramRepo repository.CostingParamRepository,
	) error {
		cats, err := catRepo.ListActive(ctx)
		if err != nil {
			return err
		}
		for i := range cats {
			cat := cats[i]
			cat.LaborPerHour = cat.LaborPerHour.Mul(rate).Round(2)
			cat.DeprPerHour = cat.DeprPerHour.Mul(rate).Round(2)
			cat.ToolingPerPiece = cat.ToolingPerPiece.Mul(rate).Round(2)
			cat.RentPerHour = cat.RentPerHour.Mul(rate).Round(2)
			if err := catRepo.UpdateRates(ctx, &cat); err != nil {
				return err
			}
		}

		params, err := paramRepo.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range params {
			if !p.IsNumeric() {
				continue
			}
			converted := p.NumValue.Mul(rate).Round(2)
			if err := paramRepo.SetNumValue(ctx, p.Key, converted); err != nil {
				return err
			}
		}
		return paramRepo.SetTextValue(ctx, entity.ParamCurrency, to)
	})
}
