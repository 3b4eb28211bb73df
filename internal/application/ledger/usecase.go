package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fruteria-api/internal/domain"
)

// Direcciones de un ajuste manual.
const (
	DirectionIncrease = "increase"
	DirectionDecrease = "decrease"
)

// ReasonPolicy controla cuándo es obligatorio el motivo en un ajuste manual.
// El negocio lo ha requerido a veces solo en salidas y a veces siempre, así
// que queda configurable en lugar de fijo.
type ReasonPolicy string

const (
	ReasonPolicyNone     ReasonPolicy = "none"     // nunca obligatorio
	ReasonPolicyDecrease ReasonPolicy = "decrease" // obligatorio al restar stock
	ReasonPolicyAlways   ReasonPolicy = "always"   // siempre obligatorio
)

// Actor identifica quién realiza la operación. Se pasa explícito en cada
// llamada en lugar de leerlo de un contexto de sesión ambiental.
type Actor struct {
	ID   string
	Name string
}

// ItemInput línea de una venta o compra: producto, cantidad y precio unitario.
type ItemInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// SaleInput entrada para RecordSale.
type SaleInput struct {
	Actor Actor
	Items []ItemInput
}

// PurchaseInput entrada para RecordPurchase.
type PurchaseInput struct {
	Actor Actor
	Items []ItemInput
}

// AdjustmentInput entrada para RecordAdjustment. Quantity siempre positiva;
// Direction decide el signo.
type AdjustmentInput struct {
	Actor     Actor
	ProductID string
	Direction string
	Quantity  decimal.Decimal
	Reason    string
}

// StockLedger registra ventas, compras, ajustes y cancelaciones de forma
// transaccional. Toda mutación de stock pasa por aquí: cada operación corre
// dentro del TxRunner con bloqueo de fila (SELECT FOR UPDATE) y el registro
// de la transacción se crea o borra en el mismo Commit que el stock.
type StockLedger struct {
	txRunner     TxRunner
	reasonPolicy ReasonPolicy
}

// NewStockLedger construye el ledger. reasonPolicy vacío equivale a
// ReasonPolicyDecrease.
func NewStockLedger(txRunner TxRunner, reasonPolicy ReasonPolicy) *StockLedger {
	if reasonPolicy == "" {
		reasonPolicy = ReasonPolicyDecrease
	}
	return &StockLedger{txRunner: txRunner, reasonPolicy: reasonPolicy}
}

// validateItems verifica las precondiciones comunes de ventas y compras.
// Corre antes de tocar la BD: un error aquí nunca llega al store.
func validateItems(items []ItemInput) error {
	if len(items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, it := range items {
		if it.ProductID == "" {
			return domain.ErrInvalidInput
		}
		if !it.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if it.UnitPrice.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func (l *StockLedger) validateAdjustment(in AdjustmentInput) error {
	if in.ProductID == "" {
		return domain.ErrInvalidInput
	}
	if in.Direction != DirectionIncrease && in.Direction != DirectionDecrease {
		return domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	switch l.reasonPolicy {
	case ReasonPolicyAlways:
		if in.Reason == "" {
			return domain.ErrInvalidInput
		}
	case ReasonPolicyDecrease:
		if in.Direction == DirectionDecrease && in.Reason == "" {
			return domain.ErrInvalidInput
		}
	}
	return nil
}
