package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tallersur/taller-api/internal/domain/entity"
	"github.com/tallersur/taller-api/internal/domain/repository"
)

var _ repository.MachineCategoryRepository = (*MachineCategoryRepo)(nil)

// MachineCategoryRepo implementación de categorías de costeo sobre PostgreSQL
// (usable con pool o tx).
type MachineCategoryRepo struct {
	q Querier
}

// NewMachineCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMachineCategoryRepository(q Querier) *MachineCategoryRepo {
	return &MachineCategoryRepo{q: q}
}

// GetByID obtiene una categoría por ID, o nil si no existe.
func (r *MachineCategoryRepo) GetByID(ctx context.Context, id string) (*entity.MachineCostingCategory, error) {
	query := `
		SELECT id, name, labor_per_hour, depr_per_hour, tooling_per_piece, rent_per_hour, active, created_at, updated_at
		FROM machine_costing_categories WHERE id = $1`
	var c entity.MachineCostingCategory
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.LaborPerHour, &c.DeprPerHour, &c.ToolingPerPiece,
		&c.RentPerHour, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get machine category: %w", err)
	}
	return &c, nil
}

// ListActive lista las categorías activas.
func (r *MachineCategoryRepo) ListActive(ctx context.Context) ([]entity.MachineCostingCategory, error) {
	query := `
		SELECT id, name, labor_per_hour, depr_per_hour, tooling_per_piece, rent_per_hour, active, created_at, updated_at
		FROM machine_costing_categories WHERE active ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active categories: %w", err)
	}
	defer rows.Close()

	var list []entity.MachineCostingCategory
	for rows.Next() {
		var c entity.MachineCostingCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.LaborPerHour, &c.DeprPerHour, &c.ToolingPerPiece,
			&c.RentPerHour, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan machine category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// UpdateRates reescribe las cuatro tarifas de la categoría.
func (r *MachineCategoryRepo) UpdateRates(ctx context.Context, cat *entity.MachineCostingCategory) error {
	query := `
		UPDATE machine_costing_categories
		SET labor_per_hour = $2, depr_per_hour = $3, tooling_per_piece = $4, rent_per_hour = $5, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, cat.ID, cat.LaborPerHour, cat.DeprPerHour, cat.ToolingPerPiece, cat.RentPerHour)
	if err != nil {
		return fmt.Errorf("update category rates: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update category rates: categoría %s no existe", cat.ID)
	}
	return nil
}
