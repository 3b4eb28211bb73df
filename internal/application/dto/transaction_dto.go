package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionItemRequest línea de una venta o compra.
type TransactionItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// RecordSaleRequest body para POST /api/transactions/sales.
type RecordSaleRequest struct {
	Items []TransactionItemRequest `json:"items"`
}

// RecordPurchaseRequest body para POST /api/transactions/purchases.
type RecordPurchaseRequest struct {
	Items []TransactionItemRequest `json:"items"`
}

// RecordAdjustmentRequest body para POST /api/transactions/adjustments.
// Direction: "increase" | "decrease". Quantity siempre positiva.
type RecordAdjustmentRequest struct {
	ProductID string          `json:"product_id"`
	Direction string          `json:"direction"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason,omitempty"`
}

// TransactionItemResponse línea de transacción en respuestas.
type TransactionItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// TransactionResponse representación HTTP de una transacción del ledger.
type TransactionResponse struct {
	ID       string                    `json:"id"`
	Type     string                    `json:"type"`
	Date     time.Time                 `json:"date"`
	UserID   string                    `json:"user_id,omitempty"`
	UserName string                    `json:"user_name,omitempty"`
	Items    []TransactionItemResponse `json:"items"`
	Total    decimal.Decimal           `json:"total"`
	Reason   string                    `json:"reason,omitempty"`
}
