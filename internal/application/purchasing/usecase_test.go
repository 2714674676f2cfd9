package purchasing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallersur/taller-api/internal/application/purchasing"
	"github.com/tallersur/taller-api/internal/domain"
	"github.com/tallersur/taller-api/internal/domain/entity"
	domainpurch "github.com/tallersur/taller-api/internal/domain/purchasing"
	"github.com/tallersur/taller-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeRequestRepo struct {
	requests map[string]*entity.PurchaseRequest
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (*entity.PurchaseRequest, error) {
	return f.requests[id], nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id, status string) error {
	f.requests[id].Status = status
	return nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.PurchaseOrder
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	return f.orders[id], nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	f.orders[id].Status = status
	return nil
}

func (f *fakeOrderRepo) ListLinesByRequest(_ context.Context, requestID string) ([]entity.OrderLine, error) {
	var out []entity.OrderLine
	for _, o := range f.orders {
		if o.RequestID == nil || *o.RequestID != requestID {
			continue
		}
		out = append(out, o.Lines...)
	}
	return out, nil
}

type fakeLedgerRepo struct {
	entries []entity.LedgerEntry
}

func (f *fakeLedgerRepo) Append(_ context.Context, e *entity.LedgerEntry) error {
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeLedgerRepo) SumBySKU(_ context.Context, _ string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeLedgerRepo) SumAll(_ context.Context) (map[string]decimal.Decimal, error) {
	return nil, nil
}

func (f *fakeLedgerRepo) LastReceiptCost(_ context.Context, _ string) (*decimal.Decimal, error) {
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

type fakeTxRunner struct {
	orderRepo  *fakeOrderRepo
	ledgerRepo *fakeLedgerRepo
}

func (f *fakeTxRunner) RunPurchasing(ctx context.Context, fn func(
	repository.PurchaseOrderRepository, repository.LedgerRepository,
) error) error {
	return fn(f.orderRepo, f.ledgerRepo)
}

type fakePDFGen struct{}

func (fakePDFGen) GenerateOrderPDF(_ context.Context, _ *entity.PurchaseOrder, _ domainpurch.OrderReceipt) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strptr(s string) *string { return &s }

type fixture struct {
	uc         *purchasing.UseCase
	reqRepo    *fakeRequestRepo
	orderRepo  *fakeOrderRepo
	ledgerRepo *fakeLedgerRepo
}

// newFixture arma la jerarquía completa: solicitud sc-1 (línea de 10 ACE-1020)
// cubierta por dos órdenes, oc-1 (4) emitida y oc-2 (1) en borrador.
func newFixture() *fixture {
	reqRepo := &fakeRequestRepo{requests: map[string]*entity.PurchaseRequest{
		"sc-1": {
			ID:     "sc-1",
			Code:   "SC-2024-007",
			Status: entity.RequestApproved,
			Lines: []entity.RequestLine{
				{ID: "rl-1", RequestID: "sc-1", SKU: "ACE-1020", Cantidad: dec("10"), EstUnitCost: dec("3.50")},
			},
		},
	}}
	orderRepo := &fakeOrderRepo{orders: map[string]*entity.PurchaseOrder{
		"oc-1": {
			ID: "oc-1", Code: "OC-2024-015", Status: entity.OrderIssued,
			RequestID: strptr("sc-1"),
			Lines: []entity.OrderLine{
				{ID: "ol-1", OrderID: "oc-1", SKU: "ACE-1020", Cantidad: dec("4"), UnitCost: dec("3.20"), RequestLineID: strptr("rl-1")},
			},
		},
		"oc-2": {
			ID: "oc-2", Code: "OC-2024-016", Status: entity.OrderDraft,
			RequestID: strptr("sc-1"),
			Lines: []entity.OrderLine{
				{ID: "ol-2", OrderID: "oc-2", SKU: "ACE-1020", Cantidad: dec("1"), UnitCost: dec("3.40"), RequestLineID: strptr("rl-1")},
			},
		},
	}}
	ledgerRepo := &fakeLedgerRepo{}
	txRunner := &fakeTxRunner{orderRepo: orderRepo, ledgerRepo: ledgerRepo}
	uc := purchasing.NewUseCase(txRunner, reqRepo, orderRepo, ledgerRepo, fakePDFGen{})
	return &fixture{uc: uc, reqRepo: reqRepo, orderRepo: orderRepo, ledgerRepo: ledgerRepo}
}

// ──────────────────────────────────────────────────────────────────────────────
// Cobertura y recepción derivadas
// ──────────────────────────────────────────────────────────────────────────────

// Línea solicitando 10 cubierta por órdenes de 4 y 1: cubierto=5, pendiente=5.
func TestGetRequestLineCoverage_SumaTodasLasOrdenes(t *testing.T) {
	f := newFixture()

	cov, err := f.uc.GetRequestLineCoverage(context.Background(), "sc-1")

	require.NoError(t, err)
	require.Len(t, cov.Lines, 1)
	assert.True(t, dec("5").Equal(cov.Lines[0].Cubierto))
	assert.True(t, dec("5").Equal(cov.Lines[0].Pendiente))
}

func TestGetRequestLineCoverage_SolicitudInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.GetRequestLineCoverage(context.Background(), "sc-999")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetOrderLineReceipt_SinRecepcionesTodoPendiente(t *testing.T) {
	f := newFixture()

	rec, err := f.uc.GetOrderLineReceipt(context.Background(), "oc-1")

	require.NoError(t, err)
	require.Len(t, rec.Lines, 1)
	assert.True(t, rec.Lines[0].Recibido.IsZero())
	assert.True(t, dec("4").Equal(rec.Lines[0].Pendiente))
	assert.True(t, dec("12.80").Equal(rec.Lines[0].Importe), "4 × 3.20")
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepción física
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveOrder_ParcialDejaPendienteYEstado(t *testing.T) {
	f := newFixture()

	rec, err := f.uc.ReceiveOrder(context.Background(), "oc-1", []purchasing.ReceiptLineInput{
		{SKU: "ACE-1020", Cantidad: dec("3")},
	})

	require.NoError(t, err)
	assert.True(t, dec("1").Equal(rec.Lines[0].Pendiente))
	assert.Equal(t, entity.OrderPartiallyReceived, rec.Status)
	assert.Equal(t, entity.OrderPartiallyReceived, f.orderRepo.orders["oc-1"].Status)

	// El asiento quedó en el libro referenciando la orden.
	require.Len(t, f.ledgerRepo.entries, 1)
	entry := f.ledgerRepo.entries[0]
	assert.Equal(t, entity.MovementPurchaseReceipt, entry.Kind)
	assert.Equal(t, entity.PurchaseOrderRef("oc-1"), entry.Ref)
	assert.True(t, dec("3.20").Equal(entry.UnitCost), "costo pactado en la línea por defecto")
}

func TestReceiveOrder_CompletaLaOrden(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.ReceiveOrder(ctx, "oc-1", []purchasing.ReceiptLineInput{
		{SKU: "ACE-1020", Cantidad: dec("3")},
	})
	require.NoError(t, err)
	rec, err := f.uc.ReceiveOrder(ctx, "oc-1", []purchasing.ReceiptLineInput{
		{SKU: "ACE-1020", Cantidad: dec("1")},
	})

	require.NoError(t, err)
	assert.True(t, rec.Fulfilled())
	assert.Equal(t, entity.OrderReceived, f.orderRepo.orders["oc-1"].Status)
}

func TestReceiveOrder_SKUNoPedidoEsInvalido(t *testing.T) {
	f := newFixture()

	_, err := f.uc.ReceiveOrder(context.Background(), "oc-1", []purchasing.ReceiptLineInput{
		{SKU: "OTRO", Cantidad: dec("1")},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReceiveOrder_BorradorNoRecibe(t *testing.T) {
	f := newFixture()

	_, err := f.uc.ReceiveOrder(context.Background(), "oc-2", []purchasing.ReceiptLineInput{
		{SKU: "ACE-1020", Cantidad: dec("1")},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones y PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestIssueOrder_DesdeBorrador(t *testing.T) {
	f := newFixture()

	err := f.uc.IssueOrder(context.Background(), "oc-2")

	require.NoError(t, err)
	assert.Equal(t, entity.OrderIssued, f.orderRepo.orders["oc-2"].Status)
}

func TestApproveRequest_SoloDesdeAbierta(t *testing.T) {
	f := newFixture()

	err := f.uc.ApproveRequest(context.Background(), "sc-1")

	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "sc-1 ya está aprobada")
}

func TestOrderPDF_GeneraDocumento(t *testing.T) {
	f := newFixture()

	pdf, err := f.uc.OrderPDF(context.Background(), "oc-1")

	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
