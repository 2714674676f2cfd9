package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tallersur/taller-api/internal/domain/entity"
)

// ProductRepository es el puerto de persistencia del catálogo de productos.
// El alta/baja de productos pertenece al módulo de inventario excluido; este
// núcleo solo necesita lookup por SKU y el override del costo de referencia.
type ProductRepository interface {
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	UpdateCostoRef(ctx context.Context, sku string, cost decimal.Decimal) error
}
