package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto.
const (
	CategoryFruta     = "FRUTA"
	CategoryProcesado = "PROCESADO"
	CategoryOtro      = "OTRO"
)

// Unidades de venta.
const (
	UnitUnidad = "unidad"
	UnitKg     = "kg"
)

// Product representa un producto del inventario con su stock actual.
// Stock nunca baja de cero (CHECK en DB) y solo se modifica a través del
// StockLedger; las ediciones de catálogo no tocan ese campo.
type Product struct {
	ID                string
	Name              string
	Category          string // FRUTA, PROCESADO, OTRO
	Unit              string // unidad, kg
	PurchasePrice     decimal.Decimal
	SellingPrice      decimal.Decimal
	Stock             decimal.Decimal
	LowStockThreshold decimal.Decimal // umbral de reposición; informativo, no se aplica
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si el producto está en o por debajo de su umbral.
func (p *Product) IsLowStock() bool {
	return p.Stock.LessThanOrEqual(p.LowStockThreshold)
}
