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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del catálogo sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetBySKU obtiene un producto por su código, o nil si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	query := `
		SELECT id, sku, name, category, unit_measure, costo_ref, min_stock, created_at, updated_at
		FROM products WHERE sku = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, sku).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Category, &p.UnitMeasure,
		&p.CostoRef, &p.MinStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return &p, nil
}

// UpdateCostoRef fija el costo de referencia del producto.
func (r *ProductRepo) UpdateCostoRef(ctx context.Context, sku string, cost decimal.Decimal) error {
	query := `UPDATE products SET costo_ref = $2, updated_at = now() WHERE sku = $1`
	tag, err := r.q.Exec(ctx, query, sku, cost)
	if err != nil {
		return fmt.Errorf("update costo_ref: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update costo_ref: sku %s no existe", sku)
	}
	return nil
}
