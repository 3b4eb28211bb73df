package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del ledger.
const (
	TransactionTypeSale       = "SALE"       // venta
	TransactionTypePurchase   = "PURCHASE"   // compra a proveedor
	TransactionTypeAdjustment = "ADJUSTMENT" // ajuste manual (merma, recuento)
)

// Transaction es el registro de un evento que afectó stock.
// Se crea en la misma transacción de BD que la mutación de stock y se borra
// (no se anula) al cancelar, revirtiendo el stock en esa misma transacción:
// nunca existe en un estado parcial.
type Transaction struct {
	ID       string
	Type     string
	Date     time.Time // asignada por el servidor al confirmar
	UserID   string
	UserName string
	Items    []TransactionItem
	// Total = Σ(quantity × unitPrice). Positivo en ventas y compras; con signo
	// en ajustes (negativo cuando el stock baja).
	Total  decimal.Decimal
	Reason string // libre; los ajustes de salida suelen exigirlo
}

// TransactionItem es una línea de la transacción. Quantity es siempre
// positiva; la dirección la da el tipo de transacción (y el signo de Total
// en ajustes).
type TransactionItem struct {
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// IsCancellable indica si el tipo admite cancelación con reversa de stock.
// Los ajustes no se cancelan: se corrigen con otro ajuste.
func (t *Transaction) IsCancellable() bool {
	return t.Type == TransactionTypeSale || t.Type == TransactionTypePurchase
}
