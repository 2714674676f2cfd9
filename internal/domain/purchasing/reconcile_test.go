package purchasing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallersur/taller-api/internal/domain"
	"github.com/tallersur/taller-api/internal/domain/entity"
	"github.com/tallersur/taller-api/internal/domain/purchasing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strptr(s string) *string { return &s }

// Escenario de extremo a extremo: una línea solicitando 10 cubierta por dos
// líneas de orden de 4 y 1 debe reportar cubierto=5 y pendiente=5.
func TestCoverRequest_CoberturaParcial(t *testing.T) {
	req := &entity.PurchaseRequest{
		ID:     "sc-1",
		Status: entity.RequestApproved,
		Lines: []entity.RequestLine{
			{ID: "rl-1", SKU: "ACE-1020", Cantidad: dec("10"), EstUnitCost: dec("3.50")},
		},
	}
	orderLines := []entity.OrderLine{
		{ID: "ol-1", OrderID: "oc-1", SKU: "ACE-1020", Cantidad: dec("4"), RequestLineID: strptr("rl-1")},
		{ID: "ol-2", OrderID: "oc-2", SKU: "ACE-1020", Cantidad: dec("1"), RequestLineID: strptr("rl-1")},
		{ID: "ol-3", OrderID: "oc-2", SKU: "OTRO", Cantidad: dec("99"), RequestLineID: nil}, // sin traza, no cuenta
	}

	cov, err := purchasing.CoverRequest(req, orderLines)

	require.NoError(t, err)
	require.Len(t, cov.Lines, 1)
	assert.True(t, dec("5").Equal(cov.Lines[0].Cubierto))
	assert.True(t, dec("5").Equal(cov.Lines[0].Pendiente))
	assert.True(t, dec("5").Equal(cov.OrderedTotal))
	assert.True(t, dec("5").Equal(cov.PendingTotal))
}

// Sobre-orden: el pendiente se recorta a cero, nunca negativo.
func TestCoverRequest_SobreOrdenRecortaACero(t *testing.T) {
	req := &entity.PurchaseRequest{
		ID: "sc-2",
		Lines: []entity.RequestLine{
			{ID: "rl-1", SKU: "TUB-25", Cantidad: dec("3")},
		},
	}
	orderLines := []entity.OrderLine{
		{ID: "ol-1", SKU: "TUB-25", Cantidad: dec("7"), RequestLineID: strptr("rl-1")},
	}

	cov, err := purchasing.CoverRequest(req, orderLines)

	require.NoError(t, err)
	assert.True(t, dec("7").Equal(cov.Lines[0].Cubierto))
	assert.True(t, cov.Lines[0].Pendiente.IsZero())
	assert.True(t, cov.PendingTotal.IsZero())
}

// Cobertura negativa: solo posible si el esquema dejó pasar cantidades
// negativas en líneas de orden. Se detecta defensivamente, no se corrige.
func TestCoverRequest_CoberturaNegativaEsInconsistente(t *testing.T) {
	req := &entity.PurchaseRequest{
		ID:    "sc-3",
		Lines: []entity.RequestLine{{ID: "rl-1", SKU: "X", Cantidad: dec("5")}},
	}
	orderLines := []entity.OrderLine{
		{ID: "ol-1", SKU: "X", Cantidad: dec("-2"), RequestLineID: strptr("rl-1")},
	}

	_, err := purchasing.CoverRequest(req, orderLines)

	assert.ErrorIs(t, err, domain.ErrInconsistentState)
}

// Pendientes con 3 decimales.
func TestCoverRequest_RedondeaPendienteATresDecimales(t *testing.T) {
	req := &entity.PurchaseRequest{
		ID:    "sc-4",
		Lines: []entity.RequestLine{{ID: "rl-1", SKU: "KG-01", Cantidad: dec("1")}},
	}
	orderLines := []entity.OrderLine{
		{ID: "ol-1", SKU: "KG-01", Cantidad: dec("0.3333"), RequestLineID: strptr("rl-1")},
	}

	cov, err := purchasing.CoverRequest(req, orderLines)

	require.NoError(t, err)
	assert.True(t, dec("0.667").Equal(cov.Lines[0].Pendiente))
}

// Escenario de extremo a extremo: línea pidiendo 10 con recepciones en el
// libro por 6 debe reportar pendiente=4 e importe = 10 × costo unitario.
func TestReceiptForOrder_RecepcionParcial(t *testing.T) {
	order := &entity.PurchaseOrder{
		ID:     "oc-1",
		Status: entity.OrderIssued,
		Lines: []entity.OrderLine{
			{ID: "ol-1", OrderID: "oc-1", SKU: "ACE-1020", Cantidad: dec("10"), UnitCost: dec("3.20")},
		},
	}
	receipts := []entity.LedgerEntry{
		{SKU: "ACE-1020", Kind: entity.MovementPurchaseReceipt, Quantity: dec("4"), Ref: entity.PurchaseOrderRef("oc-1")},
		{SKU: "ACE-1020", Kind: entity.MovementPurchaseReceipt, Quantity: dec("2"), Ref: entity.PurchaseOrderRef("oc-1")},
		{SKU: "ACE-1020", Kind: entity.MovementPurchaseReceipt, Quantity: dec("9"), Ref: entity.PurchaseOrderRef("oc-99")}, // otra orden
		{SKU: "ACE-1020", Kind: entity.MovementManualAdjustmentIn, Quantity: dec("5"), Ref: entity.PurchaseOrderRef("oc-1")}, // no es recepción
	}

	rec := purchasing.ReceiptForOrder(order, receipts)

	require.Len(t, rec.Lines, 1)
	assert.True(t, dec("6").Equal(rec.Lines[0].Recibido))
	assert.True(t, dec("4").Equal(rec.Lines[0].Pendiente))
	assert.True(t, dec("32.00").Equal(rec.Lines[0].Importe), "importe = pedido × costo unitario")
	assert.False(t, rec.Fulfilled())
}

// Sobre-entrega: pendiente cero y la orden cuenta como cumplida.
func TestReceiptForOrder_SobreEntregaRecortaACero(t *testing.T) {
	order := &entity.PurchaseOrder{
		ID: "oc-2",
		Lines: []entity.OrderLine{
			{ID: "ol-1", OrderID: "oc-2", SKU: "PLA-3MM", Cantidad: dec("5"), UnitCost: dec("12")},
		},
	}
	receipts := []entity.LedgerEntry{
		{SKU: "PLA-3MM", Kind: entity.MovementPurchaseReceipt, Quantity: dec("8"), Ref: entity.PurchaseOrderRef("oc-2")},
	}

	rec := purchasing.ReceiptForOrder(order, receipts)

	assert.True(t, rec.Lines[0].Pendiente.IsZero())
	assert.True(t, rec.Fulfilled())
}
