package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tallersur/taller-api/internal/domain/entity"
	"github.com/tallersur/taller-api/internal/domain/repository"
)

var _ repository.CostingParamRepository = (*CostingParamRepo)(nil)

// CostingParamRepo implementación del almacén clave/valor de parámetros de
// costeo sobre PostgreSQL (usable con pool o tx).
type CostingParamRepo struct {
	q Querier
}

// NewCostingParamRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCostingParamRepository(q Querier) *CostingParamRepo {
	return &CostingParamRepo{q: q}
}

// Get obtiene un parámetro por clave, o nil si no existe.
func (r *CostingParamRepo) Get(ctx context.Context, key string) (*entity.CostingParam, error) {
	query := `
		SELECT key, type, num_value, text_value, label, unit, param_group, updated_at
		FROM costing_params WHERE key = $1`
	var p entity.CostingParam
	err := r.q.QueryRow(ctx, query, key).Scan(
		&p.Key, &p.Type, &p.NumValue, &p.TextValue, &p.Label, &p.Unit, &p.Group, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get costing param: %w", err)
	}
	return &p, nil
}

// List lista todos los parámetros.
func (r *CostingParamRepo) List(ctx context.Context) ([]entity.CostingParam, error) {
	query := `
		SELECT key, type, num_value, text_value, label, unit, param_group, updated_at
		FROM costing_params ORDER BY param_group, key`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list costing params: %w", err)
	}
	defer rows.Close()

	var list []entity.CostingParam
	for rows.Next() {
		var p entity.CostingParam
		if err := rows.Scan(&p.Key, &p.Type, &p.NumValue, &p.TextValue, &p.Label, &p.Unit, &p.Group, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan costing param: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GlobalRates devuelve todos los parámetros numéricos como mapa clave → valor.
func (r *CostingParamRepo) GlobalRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	query := `SELECT key, num_value FROM costing_params WHERE type = $1`
	rows, err := r.q.Query(ctx, query, entity.ParamTypeNumber)
	if err != nil {
		return nil, fmt.Errorf("global rates: %w", err)
	}
	defer rows.Close()

	out := map[string]decimal.Decimal{}
	for rows.Next() {
		var key string
		var value decimal.Decimal
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan global rate: %w", err)
		}
		out[key] = value
	}
	return out, rows.Err()
}

// Upsert inserta o actualiza un parámetro completo por clave.
func (r *CostingParamRepo) Upsert(ctx context.Context, param *entity.CostingParam) error {
	query := `
		INSERT INTO costing_params (key, type, num_value, text_value, label, unit, param_group, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (key)
		DO UPDATE SET type = EXCLUDED.type, num_value = EXCLUDED.num_value, text_value = EXCLUDED.text_value,
		              label = EXCLUDED.label, unit = EXCLUDED.unit, param_group = EXCLUDED.param_group, updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		param.Key, param.Type, param.NumValue, param.TextValue, param.Label, param.Unit, param.Group,
	)
	if err != nil {
		return fmt.Errorf("upsert costing param: %w", err)
	}
	return nil
}

// SetNumValue actualiza solo el valor numérico de un parámetro existente.
func (r *CostingParamRepo) SetNumValue(ctx context.Context, key string, value decimal.Decimal) error {
	query := `UPDATE costing_params SET num_value = $2, updated_at = now() WHERE key = $1`
	tag, err := r.q.Exec(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("set num value: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set num value: parámetro %s no existe", key)
	}
	return nil
}

// SetTextValue actualiza el valor de texto de un parámetro, creándolo si no
// existe (la bandera de moneda puede no estar sembrada).
func (r *CostingParamRepo) SetTextValue(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO costing_params (key, type, text_value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (key)
		DO UPDATE SET text_value = EXCLUDED.text_value, updated_at = now()`
	_, err := r.q.Exec(ctx, query, key, entity.ParamTypeText, value)
	if err != nil {
		return fmt.Errorf("set text value: %w", err)
	}
	return nil
}
