package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
// El signo de la cantidad lo impone quien escribe, no el libro:
// entradas positivas, salidas negativas.
const (
	MovementPurchaseReceipt     = "PURCHASE_RECEIPT"       // recepción de orden de compra
	MovementManualAdjustmentIn  = "MANUAL_ADJUSTMENT_IN"   // ajuste manual entrada
	MovementManualAdjustmentOut = "MANUAL_ADJUSTMENT_OUT"  // ajuste manual salida
	MovementIssueToWorkOrder    = "ISSUE_TO_WORK_ORDER"    // salida de material a OT
	MovementReturnFromWorkOrder = "RETURN_FROM_WORK_ORDER" // devolución desde OT
)

// ReceiptKinds son los tipos que fijan el "último costo conocido" de un SKU.
var ReceiptKinds = []string{MovementPurchaseReceipt, MovementManualAdjustmentIn}

// RefKind identifica el tipo de documento que originó un movimiento.
type RefKind string

const (
	RefNone          RefKind = ""
	RefWorkOrder     RefKind = "work_order"
	RefPurchaseOrder RefKind = "purchase_order"
)

// DocumentRef es la referencia polimórfica del movimiento a su documento origen
// (OT u orden de compra), modelada como sum type explícito en vez de un par de
// strings sueltos.
type DocumentRef struct {
	Kind RefKind
	ID   string
}

// WorkOrderRef construye la referencia a una OT.
func WorkOrderRef(id string) DocumentRef { return DocumentRef{Kind: RefWorkOrder, ID: id} }

// PurchaseOrderRef construye la referencia a una orden de compra.
func PurchaseOrderRef(id string) DocumentRef { return DocumentRef{Kind: RefPurchaseOrder, ID: id} }

// NoRef es la referencia vacía (movimiento sin documento origen).
func NoRef() DocumentRef { return DocumentRef{Kind: RefNone} }

// IsZero indica si la referencia está vacía.
func (r DocumentRef) IsZero() bool { return r.Kind == RefNone }

// LedgerEntry es una fila inmutable del libro de movimientos. Nunca se
// actualiza ni se borra: las correcciones se hacen con un contraasiento.
// Invariante central: el stock de un SKU es la suma de Quantity de todas
// sus filas.
type LedgerEntry struct {
	ID        string
	SKU       string
	Kind      string
	Quantity  decimal.Decimal // positivo entrada, negativo salida
	UnitCost  decimal.Decimal // costo unitario al momento del movimiento
	Ref       DocumentRef
	Note      string
	Date      time.Time
	CreatedAt time.Time
}
