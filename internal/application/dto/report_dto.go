package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardDTO métricas de la portada: ventas de hoy, stock y alertas.
type DashboardDTO struct {
	TodayRevenue      decimal.Decimal   `json:"today_revenue"`
	TodaySalesCount   int               `json:"today_sales_count"`
	StockTotal        decimal.Decimal   `json:"stock_total"`
	LowStockCount     int               `json:"low_stock_count"`
	LowStockProducts  []ProductResponse `json:"low_stock_products"`
	SalesLast7Days    []DailySalesDTO   `json:"sales_last_7_days"`
}

// DailySalesDTO un punto del gráfico de ventas por día.
type DailySalesDTO struct {
	Day     time.Time       `json:"day"`
	Revenue decimal.Decimal `json:"revenue"`
	Count   int             `json:"count"`
}

// SalesReportDTO reporte de ventas de un período.
type SalesReportDTO struct {
	From        time.Time         `json:"from"`
	To          time.Time         `json:"to"`
	Revenue     decimal.Decimal   `json:"revenue"`
	SalesCount  int               `json:"sales_count"`
	TopProducts []ProductSalesDTO `json:"top_products"`
	ByDay       []DailySalesDTO   `json:"by_day"`
}

// ProductSalesDTO unidades e ingresos por producto.
type ProductSalesDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// EmployeeActivityDTO transacciones registradas por empleado en el período.
type EmployeeActivityDTO struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	Sales     int    `json:"sales"`
	Purchases int    `json:"purchases"`
	Others    int    `json:"others"`
	Total     int    `json:"total"`
}
