package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummary agregados de ventas de un período.
type SalesSummary struct {
	Revenue decimal.Decimal
	Count   int
}

// DailySales ventas agrupadas por día (alimenta el gráfico del dashboard).
type DailySales struct {
	Day     time.Time
	Revenue decimal.Decimal
	Count   int
}

// ProductSales unidades vendidas por producto en un período.
type ProductSales struct {
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	Revenue     decimal.Decimal
}

// EmployeeActivity transacciones registradas por empleado.
type EmployeeActivity struct {
	UserID    string
	UserName  string
	Sales     int
	Purchases int
	Others    int
	Total     int
}

// ReportRepository consultas de solo lectura para reportes y dashboard.
// Siempre va directo al pool (fuera de transacción): son agregados SQL.
type ReportRepository interface {
	GetSalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error)
	GetSalesByDay(ctx context.Context, from, to time.Time) ([]DailySales, error)
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductSales, error)
	GetEmployeeActivity(ctx context.Context, from, to time.Time) ([]EmployeeActivity, error)
	GetStockTotal(ctx context.Context) (decimal.Decimal, error)
}
