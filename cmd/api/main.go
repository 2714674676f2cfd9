package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appcosting "github.com/tallersur/taller-api/internal/application/costing"
	"github.com/tallersur/taller-api/internal/application/ledger"
	"github.com/tallersur/taller-api/internal/application/purchasing"
	"github.com/tallersur/taller-api/internal/application/workorder"
	infrapdf "github.com/tallersur/taller-api/internal/infrastructure/pdf"
	"github.com/tallersur/taller-api/internal/infrastructure/postgres"
	httpRouter "github.com/tallersur/taller-api/internal/interfaces/http"
	"github.com/tallersur/taller-api/pkg/config"
	"github.com/tallersur/taller-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	woRepo := postgres.NewWorkOrderRepository(pool)
	catRepo := postgres.NewMachineCategoryRepository(pool)
	paramRepo := postgres.NewCostingParamRepository(pool)
	requestRepo := postgres.NewPurchaseRequestRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := ledger.NewUseCase(ledgerRepo, productRepo)
	workOrderUC := workorder.NewUseCase(txRunner, woRepo, catRepo, paramRepo, ledgerUC)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	purchasingUC := purchasing.NewUseCase(txRunner, requestRepo, orderRepo, ledgerRepo, pdfGenerator)
	costingUC := appcosting.NewUseCase(txRunner, catRepo, paramRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taller API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:      ledgerUC,
		WorkOrderUC:   workOrderUC,
		PurchasingUC:  purchasingUC,
		CostingUC:     costingUC,
		WACSampleSize: cfg.Costing.WACSampleSize,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
