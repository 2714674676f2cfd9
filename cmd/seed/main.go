// seed puebla el almacén de parámetros de costeo con los valores por defecto
// del taller: tarifas globales legadas y la moneda operativa.
//
// Uso: go run ./cmd/seed
// Es idempotente: reejecutarlo reescribe los mismos parámetros.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/tallersur/taller-api/internal/domain/entity"
	"github.com/tallersur/taller-api/internal/infrastructure/postgres"
	"github.com/tallersur/taller-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	paramRepo := postgres.NewCostingParamRepository(pool)

	defaults := []entity.CostingParam{
		{Key: entity.ParamHourlyRate, Type: entity.ParamTypeNumber, NumValue: decimal.RequireFromString("25.00"),
			Label: "Tarifa hora global", Unit: "por hora", Group: "tarifas"},
		{Key: entity.ParamRentPerHour, Type: entity.ParamTypeNumber, NumValue: decimal.RequireFromString("3.00"),
			Label: "Arriendo por hora", Unit: "por hora", Group: "tarifas"},
		{Key: entity.ParamDeprPerHour, Type: entity.ParamTypeNumber, NumValue: decimal.RequireFromString("2.00"),
			Label: "Depreciación por hora", Unit: "por hora", Group: "tarifas"},
		{Key: entity.ParamToolingPerPiece, Type: entity.ParamTypeNumber, NumValue: decimal.RequireFromString("0.50"),
			Label: "Herramental por pieza", Unit: "por pieza", Group: "tarifas"},
		{Key: entity.ParamCurrency, Type: entity.ParamTypeText, TextValue: "USD",
			Label: "Moneda operativa", Group: "general"},
	}

	for _, p := range defaults {
		param := p
		if err := paramRepo.Upsert(ctx, &param); err != nil {
			fmt.Fprintf(os.Stderr, "sembrar parámetro %s: %v\n", p.Key, err)
			os.Exit(1)
		}
		fmt.Printf("parámetro %s listo\n", p.Key)
	}
}
