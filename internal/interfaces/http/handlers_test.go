package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallersur/taller-api/internal/application/costing"
	"github.com/tallersur/taller-api/internal/application/ledger"
	"github.com/tallersur/taller-api/internal/application/workorder"
	"github.com/tallersur/taller-api/internal/domain/entity"
	"github.com/tallersur/taller-api/internal/domain/repository"
	apphttp "github.com/tallersur/taller-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeLedgerRepo struct {
	entries []entity.LedgerEntry
}

func (f *fakeLedgerRepo) Append(_ context.Context, entry *entity.LedgerEntry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeLedgerRepo) SumBySKU(_ context.Context, sku string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range f.entries {
		if e.SKU == sku {
			total = total.Add(e.Quantity)
		}
	}
	return total, nil
}

func (f *fakeLedgerRepo) SumAll(_ context.Context) (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	for _, e := range f.entries {
		out[e.SKU] = out[e.SKU].Add(e.Quantity)
	}
	return out, nil
}

func (f *fakeLedgerRepo) LastReceiptCost(_ context.Context, sku string) (*decimal.Decimal, error) {
	for i := len(f.entries) - 1; i >= 0; i-- {
		e := f.entries[i]
		if e.SKU != sku || !e.Quantity.IsPositive() {
			continue
		}
		if e.Kind == entity.MovementPurchaseReceipt || e.Kind == entity.MovementManualAdjustmentIn {
			cost := e.UnitCost
			return &cost, nil
		}
	}
	return nil, nil
}

func (f *fakeLedgerRepo) RecentReceipts(_ context.Context, _ string, _ int) ([]entity.LedgerEntry, error) {
	return nil, nil
}

func (f *fakeLedgerRepo) ListByRef(_ context.Context, ref entity.DocumentRef) ([]entity.LedgerEntry, error) {
	var out []entity.LedgerEntry
	for _, e := range f.entries {
		if e.Ref == ref {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) SKUsWithReceipts(_ context.Context) ([]string, error) { return nil, nil }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	return f.products[sku], nil
}

func (f *fakeProductRepo) UpdateCostoRef(_ context.Context, sku string, cost decimal.Decimal) error {
	f.products[sku].CostoRef = cost
	return nil
}

type fakeWORepo struct {
	orders map[string]*entity.WorkOrder
}

func (f *fakeWORepo) GetByID(_ context.Context, id string) (*entity.WorkOrder, error) {
	return f.orders[id], nil
}

func (f *fakeWORepo) UpdateCostSnapshot(_ context.Context, id string, snap entity.CostSnapshot) error {
	wo := f.orders[id]
	wo.CostMaterials = &snap.Materials
	wo.CostLabor = &snap.Labor
	wo.CostOverhead = &snap.Overhead
	wo.CostTotal = &snap.Total
	return nil
}

func (f *fakeWORepo) UpdateStatus(_ context.Context, id, status string) error {
	f.orders[id].Status = status
	return nil
}

func (f *fakeWORepo) AddIssuedQty(_ context.Context, _ string, _ decimal.Decimal) error { return nil }
func (f *fakeWORepo) SetPieceDone(_ context.Context, _ string, _ decimal.Decimal) error { return nil }

type fakeLogRepo struct{}

func (f *fakeLogRepo) Create(_ context.Context, _ *entity.ProductionLogEntry) error { return nil }
func (f *fakeLogRepo) ListByWorkOrder(_ context.Context, _ string) ([]entity.ProductionLogEntry, error) {
	return nil, nil
}

type fakeCatRepo struct{}

func (f *fakeCatRepo) GetByID(_ context.Context, _ string) (*entity.MachineCostingCategory, error) {
	return nil, nil
}
func (f *fakeCatRepo) ListActive(_ context.Context) ([]entity.MachineCostingCategory, error) {
	return nil, nil
}
func (f *fakeCatRepo) UpdateRates(_ context.Context, _ *entity.MachineCostingCategory) error {
	return nil
}

type fakeParamRepo struct{}

func (f *fakeParamRepo) Get(_ context.Context, _ string) (*entity.CostingParam, error) {
	return nil, nil
}
func (f *fakeParamRepo) List(_ context.Context) ([]entity.CostingParam, error) { return nil, nil }
func (f *fakeParamRepo) GlobalRates(_ context.Context) (map[string]decimal.Decimal, error) {
	return map[string]decimal.Decimal{}, nil
}
func (f *fakeParamRepo) Upsert(_ context.Context, _ *entity.CostingParam) error { return nil }
func (f *fakeParamRepo) SetNumValue(_ context.Context, _ string, _ decimal.Decimal) error {
	return nil
}
func (f *fakeParamRepo) SetTextValue(_ context.Context, _, _ string) error { return nil }

type fakeTxRunner struct {
	woRepo     *fakeWORepo
	ledgerRepo *fakeLedgerRepo
	catRepo    *fakeCatRepo
	paramRepo  *fakeParamRepo
}

func (f *fakeTxRunner) RunWorkOrder(ctx context.Context, fn func(
	repository.WorkOrderRepository, repository.LedgerRepository, repository.ProductionLogRepository,
) error) error {
	return fn(f.woRepo, f.ledgerRepo, &fakeLogRepo{})
}

func (f *fakeTxRunner) RunCosting(ctx context.Context, fn func(
	repository.MachineCategoryRepository, repository.CostingParamRepository,
) error) error {
	return fn(f.catRepo, f.paramRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// App de test
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func buildTestApp() (*fiber.App, *fakeLedgerRepo) {
	ledgerRepo := &fakeLedgerRepo{}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		"AC-1020": {ID: "p-1", SKU: "AC-1020", Name: "Barra acero 1020", CostoRef: dec("12.50")},
	}}
	woRepo := &fakeWORepo{orders: map[string]*entity.WorkOrder{
		"wo-1": {ID: "wo-1", Code: "OT-001", Status: entity.WorkOrderOpen, CreatedAt: time.Now()},
	}}
	catRepo := &fakeCatRepo{}
	paramRepo := &fakeParamRepo{}
	txRunner := &fakeTxRunner{woRepo: woRepo, ledgerRepo: ledgerRepo, catRepo: catRepo, paramRepo: paramRepo}

	ledgerUC := ledger.NewUseCase(ledgerRepo, productRepo)
	workOrderUC := workorder.NewUseCase(txRunner, woRepo, catRepo, paramRepo, ledgerUC)
	costingUC := costing.NewUseCase(txRunner, catRepo, paramRepo)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		LedgerUC:      ledgerUC,
		WorkOrderUC:   workOrderUC,
		CostingUC:     costingUC,
		WACSampleSize: 10,
	})
	return app, ledgerRepo
}

type testResponse struct {
	Code int
	Body []byte
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) testResponse {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	return testResponse{Code: resp.StatusCode, Body: raw}
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestAppendMovement_Asienta(t *testing.T) {
	app, ledgerRepo := buildTestApp()

	rec := postJSON(t, app, "/api/inventory/movements", fiber.Map{
		"sku":       "AC-1020",
		"kind":      entity.MovementPurchaseReceipt,
		"quantity":  "10",
		"unit_cost": "5.00",
	})

	require.Equal(t, fiber.StatusCreated, rec.Code, string(rec.Body))
	require.Len(t, ledgerRepo.entries, 1)
	assert.True(t, dec("10").Equal(ledgerRepo.entries[0].Quantity))
}

func TestAppendMovement_TipoDesconocidoDa400(t *testing.T) {
	app, _ := buildTestApp()

	rec := postJSON(t, app, "/api/inventory/movements", fiber.Map{
		"sku":      "AC-1020",
		"kind":     "TELEPORT",
		"quantity": "10",
	})

	assert.Equal(t, fiber.StatusBadRequest, rec.Code)
}

func TestAppendMovement_SKUDesconocidoDa400(t *testing.T) {
	app, _ := buildTestApp()

	rec := postJSON(t, app, "/api/inventory/movements", fiber.Map{
		"sku":      "NO-EXISTE",
		"kind":     entity.MovementManualAdjustmentIn,
		"quantity": "1",
	})

	assert.Equal(t, fiber.StatusBadRequest, rec.Code)
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body, &body))
	assert.Equal(t, "UNKNOWN_SKU", body.Code)
}

func TestGetStock_DevuelveLaSuma(t *testing.T) {
	app, _ := buildTestApp()

	postJSON(t, app, "/api/inventory/movements", fiber.Map{
		"sku": "AC-1020", "kind": entity.MovementPurchaseReceipt, "quantity": "10", "unit_cost": "5.00",
	})
	postJSON(t, app, "/api/inventory/movements", fiber.Map{
		"sku": "AC-1020", "kind": entity.MovementManualAdjustmentOut, "quantity": "-4",
	})

	req := httptest.NewRequest(fiber.MethodGet, "/api/inventory/stock/AC-1020", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		SKU   string          `json:"sku"`
		Stock decimal.Decimal `json:"stock"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "AC-1020", body.SKU)
	assert.True(t, dec("6").Equal(body.Stock))
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de trabajo
// ──────────────────────────────────────────────────────────────────────────────

func TestChangeStatus_TransicionValida(t *testing.T) {
	app, _ := buildTestApp()

	req := httptest.NewRequest(fiber.MethodPut, "/api/work-orders/wo-1/status",
		bytes.NewReader([]byte(`{"status":"IN_PROGRESS"}`)))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestChangeStatus_TransicionInvalidaDa409(t *testing.T) {
	app, _ := buildTestApp()

	// OPEN → DONE se salta IN_PROGRESS
	req := httptest.NewRequest(fiber.MethodPut, "/api/work-orders/wo-1/status",
		bytes.NewReader([]byte(`{"status":"DONE"}`)))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestChangeStatus_OTInexistenteDa404(t *testing.T) {
	app, _ := buildTestApp()

	req := httptest.NewRequest(fiber.MethodPut, "/api/work-orders/fantasma/status",
		bytes.NewReader([]byte(`{"status":"OPEN"}`)))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Parámetros de costeo
// ──────────────────────────────────────────────────────────────────────────────

func TestConvertCurrency_MismaMonedaDa400(t *testing.T) {
	app, _ := buildTestApp()

	rec := postJSON(t, app, "/api/settings/convert-currency", fiber.Map{
		"from": "USD", "to": "USD", "rate": "1",
	})

	assert.Equal(t, fiber.StatusBadRequest, rec.Code)
}

func TestConvertCurrency_TasaCeroDa400(t *testing.T) {
	app, _ := buildTestApp()

	rec := postJSON(t, app, "/api/settings/convert-currency", fiber.Map{
		"from": "USD", "to": "EUR", "rate": "0",
	})

	assert.Equal(t, fiber.StatusBadRequest, rec.Code)
}
