package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallersur/taller-api/internal/application/ledger"
	"github.com/tallersur/taller-api/internal/domain"
	"github.com/tallersur/taller-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeLedgerRepo struct {
	entries []entity.LedgerEntry
}

func (f *fakeLedgerRepo) Append(_ context.Context, e *entity.LedgerEntry) error {
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeLedgerRepo) SumBySKU(_ context.Context, sku string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range f.entries {
		if e.SKU == sku {
			sum = sum.Add(e.Quantity)
		}
	}
	return sum, nil
}

func (f *fakeLedgerRepo) SumAll(_ context.Context) (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	for _, e := range f.entries {
		out[e.SKU] = out[e.SKU].Add(e.Quantity)
	}
	return out, nil
}

func isReceiptKind(kind string) bool {
	for _, k := range entity.ReceiptKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (f *fakeLedgerRepo) LastReceiptCost(_ context.Context, sku string) (*decimal.Decimal, error) {
	for i := len(f.entries) - 1; i >= 0; i-- {
		e := f.entries[i]
		if e.SKU == sku && isReceiptKind(e.Kind) {
			c := e.UnitCost
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeLedgerRepo) RecentReceipts(_ context.Context, sku string, limit int) ([]entity.LedgerEntry, error) {
	var out []entity.LedgerEntry
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := f.entries[i]
		if e.SKU == sku && isReceiptKind(e.Kind) && e.Quantity.IsPositive() {
			out = append(out, e)
		}
	}
	return out, nil
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

func (f *fakeLedgerRepo) SKUsWithReceipts(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, e := range f.entries {
		if isReceiptKind(e.Kind) && !seen[e.SKU] {
			seen[e.SKU] = true
			out = append(out, e.SKU)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	return f.products[sku], nil
}

func (f *fakeProductRepo) UpdateCostoRef(_ context.Context, sku string, cost decimal.Decimal) error {
	if p, ok := f.products[sku]; ok {
		p.CostoRef = cost
	}
	return nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newFixture() (*ledger.UseCase, *fakeLedgerRepo, *fakeProductRepo) {
	ledgerRepo := &fakeLedgerRepo{}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		"ACE-1020": {SKU: "ACE-1020", Name: "Acero 1020", CostoRef: dec("3.00")},
		"TUB-25":   {SKU: "TUB-25", Name: "Tubo 25mm", CostoRef: dec("8.50")},
	}}
	return ledger.NewUseCase(ledgerRepo, productRepo), ledgerRepo, productRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// AppendMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestAppendMovement_CantidadCeroEsInvalida(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.AppendMovement(context.Background(), ledger.AppendMovementInput{
		SKU: "ACE-1020", Kind: entity.MovementPurchaseReceipt, Quantity: decimal.Zero,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAppendMovement_SKUDesconocidoFalla(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.AppendMovement(context.Background(), ledger.AppendMovementInput{
		SKU: "NO-EXISTE", Kind: entity.MovementPurchaseReceipt, Quantity: dec("5"),
	})

	assert.ErrorIs(t, err, domain.ErrUnknownSKU)
}

func TestAppendMovement_TipoDesconocidoEsInvalido(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.AppendMovement(context.Background(), ledger.AppendMovementInput{
		SKU: "ACE-1020", Kind: "TELETRANSPORTE", Quantity: dec("5"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Invariante central: el stock es exactamente la suma de cantidades firmadas,
// para cualquier intercalado de entradas y salidas.
func TestGetStock_InvarianteDeSuma(t *testing.T) {
	uc, _, _ := newFixture()
	ctx := context.Background()

	movimientos := []struct {
		kind string
		qty  string
	}{
		{entity.MovementPurchaseReceipt, "10"},
		{entity.MovementIssueToWorkOrder, "-3"},
		{entity.MovementManualAdjustmentIn, "2.5"},
		{entity.MovementIssueToWorkOrder, "-4.25"},
		{entity.MovementReturnFromWorkOrder, "1"},
	}
	expected := decimal.Zero
	for _, m := range movimientos {
		_, err := uc.AppendMovement(ctx, ledger.AppendMovementInput{
			SKU: "ACE-1020", Kind: m.kind, Quantity: dec(m.qty), UnitCost: dec("1"),
		})
		require.NoError(t, err)
		expected = expected.Add(dec(m.qty))
	}

	stock, err := uc.GetStock(ctx, "ACE-1020")

	require.NoError(t, err)
	assert.True(t, expected.Equal(stock), "stock == Σ cantidades")
}

// SKU sin movimientos (o inexistente) devuelve 0, sin error.
func TestGetStock_SKUSinMovimientosEsCero(t *testing.T) {
	uc, _, _ := newFixture()

	stock, err := uc.GetStock(context.Background(), "FANTASMA")

	require.NoError(t, err)
	assert.True(t, stock.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Costo de referencia
// ──────────────────────────────────────────────────────────────────────────────

func TestGetReferenceCost_UltimaRecepcionGana(t *testing.T) {
	uc, _, _ := newFixture()
	ctx := context.Background()

	for _, cost := range []string{"3.10", "3.40", "3.25"} {
		_, err := uc.AppendMovement(ctx, ledger.AppendMovementInput{
			SKU: "ACE-1020", Kind: entity.MovementPurchaseReceipt, Quantity: dec("10"), UnitCost: dec(cost),
		})
		require.NoError(t, err)
	}
	// Una salida posterior no cambia el costo de referencia.
	_, err := uc.AppendMovement(ctx, ledger.AppendMovementInput{
		SKU: "ACE-1020", Kind: entity.MovementIssueToWorkOrder, Quantity: dec("-5"), UnitCost: dec("99"),
	})
	require.NoError(t, err)

	cost, err := uc.GetReferenceCost(ctx, "ACE-1020")

	require.NoError(t, err)
	assert.True(t, dec("3.25").Equal(cost))
}

func TestGetReferenceCost_SinRecepcionesCaeAlProducto(t *testing.T) {
	uc, _, _ := newFixture()

	cost, err := uc.GetReferenceCost(context.Background(), "TUB-25")

	require.NoError(t, err)
	assert.True(t, dec("8.50").Equal(cost), "fallback al costo de referencia guardado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Re-baseline
// ──────────────────────────────────────────────────────────────────────────────

func TestRebaseline_ActualizaSoloSKUsConRecepciones(t *testing.T) {
	uc, _, productRepo := newFixture()
	ctx := context.Background()

	_, err := uc.AppendMovement(ctx, ledger.AppendMovementInput{
		SKU: "ACE-1020", Kind: entity.MovementPurchaseReceipt, Quantity: dec("10"), UnitCost: dec("5.00"),
	})
	require.NoError(t, err)
	_, err = uc.AppendMovement(ctx, ledger.AppendMovementInput{
		SKU: "ACE-1020", Kind: entity.MovementPurchaseReceipt, Quantity: dec("30"), UnitCost: dec("7.00"),
	})
	require.NoError(t, err)

	updated, err := uc.RebaselineReferenceCosts(ctx, 10)

	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.True(t, dec("6.50").Equal(productRepo.products["ACE-1020"].CostoRef),
		"(10×5 + 30×7)/40 = 6.50")
	assert.True(t, dec("8.50").Equal(productRepo.products["TUB-25"].CostoRef),
		"SKU sin recepciones queda intacto")
}
