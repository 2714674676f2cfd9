package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tallersur/taller-api/internal/application/costing"
	"github.com/tallersur/taller-api/internal/application/ledger"
	"github.com/tallersur/taller-api/internal/application/purchasing"
	"github.com/tallersur/taller-api/internal/application/workorder"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC      *ledger.UseCase
	WorkOrderUC   *workorder.UseCase
	PurchasingUC  *purchasing.UseCase
	CostingUC     *costing.UseCase
	WACSampleSize int
}

// Router registra las rutas de la API. La autenticación corre aguas arriba
// (gateway); aquí no hay middleware de auth.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Inventario: libro de movimientos y stock derivado
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.WACSampleSize)
	inv.Post("/movements", inventoryHandler.AppendMovement)
	inv.Get("/stock", inventoryHandler.GetStockAll)
	inv.Get("/stock/:sku", inventoryHandler.GetStock)
	inv.Get("/reference-cost/:sku", inventoryHandler.GetReferenceCost)
	inv.Post("/rebaseline", inventoryHandler.Rebaseline)

	// Órdenes de trabajo: costeo y ciclo de vida
	wo := api.Group("/work-orders")
	workOrderHandler := NewWorkOrderHandler(deps.WorkOrderUC)
	wo.Post("/:id/recompute-costs", workOrderHandler.RecomputeCosts)
	wo.Put("/:id/status", workOrderHandler.ChangeStatus)
	wo.Post("/:id/issues", workOrderHandler.IssueMaterial)
	wo.Post("/:id/production-logs", workOrderHandler.LogProduction)
	wo.Put("/:id/pieces", workOrderHandler.CompletePieces)

	// Compras: solicitudes, órdenes y recepciones
	purchasingHandler := NewPurchasingHandler(deps.PurchasingUC)
	requests := api.Group("/purchase-requests")
	requests.Get("/:id/coverage", purchasingHandler.GetCoverage)
	requests.Post("/:id/approve", purchasingHandler.ApproveRequest)
	requests.Post("/:id/reject", purchasingHandler.RejectRequest)

	orders := api.Group("/purchase-orders")
	orders.Get("/:id/receipt", purchasingHandler.GetReceipt)
	orders.Post("/:id/issue", purchasingHandler.IssueOrder)
	orders.Post("/:id/receive", purchasingHandler.ReceiveOrder)
	orders.Get("/:id/pdf", purchasingHandler.OrderPDF)

	// Parámetros de costeo
	settings := api.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.CostingUC)
	settings.Get("/params", settingsHandler.ListParams)
	settings.Put("/params", settingsHandler.SetParam)
	settings.Post("/convert-currency", settingsHandler.ConvertCurrency)
}
