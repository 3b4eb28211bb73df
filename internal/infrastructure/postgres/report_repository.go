package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fruteria-api/internal/domain/entity"
	"github.com/jhoicas/fruteria-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes y dashboard.
// Va directo al pool: los agregados no necesitan transacción.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// GetSalesSummary ingresos y cantidad de ventas del período.
// COALESCE devuelve cero si el período no tiene ventas.
func (r *ReportRepo) GetSalesSummary(ctx context.Context, from, to time.Time) (*repository.SalesSummary, error) {
	const query = `
	SELECT COALESCE(SUM(total), 0), COUNT(*)
	FROM transactions
	WHERE type = $1 AND date BETWEEN $2 AND $3`
	var s repository.SalesSummary
	err := r.pool.QueryRow(ctx, query, entity.TransactionTypeSale, from, to).Scan(&s.Revenue, &s.Count)
	if err != nil {
		return nil, fmt.Errorf("reports.GetSalesSummary: %w", err)
	}
	return &s, nil
}

// GetSalesByDay ventas agrupadas por día del período (alimenta el gráfico).
func (r *ReportRepo) GetSalesByDay(ctx context.Context, from, to time.Time) ([]repository.DailySales, error) {
	const query = `
	SELECT date_trunc('day', date) AS day, SUM(total), COUNT(*)
	FROM transactions
	WHERE type = $1 AND date BETWEEN $2 AND $3
	GROUP BY day
	ORDER BY day`
	rows, err := r.pool.Query(ctx, query, entity.TransactionTypeSale, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports.GetSalesByDay: %w", err)
	}
	defer rows.Close()
	var results []repository.DailySales
	for rows.Next() {
		var d repository.DailySales
		if err := rows.Scan(&d.Day, &d.Revenue, &d.Count); err != nil {
			return nil, fmt.Errorf("reports.GetSalesByDay scan: %w", err)
		}
		results = append(results, d)
	}
	return results, rows.Err()
}

// GetTopProducts unidades e ingresos por producto, más vendidos primero.
func (r *ReportRepo) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.ProductSales, error) {
	const query = `
	SELECT i.product_id, i.product_name,
	       SUM(i.quantity)                AS units,
	       SUM(i.quantity * i.unit_price) AS revenue
	FROM transactions t
	JOIN transaction_items i ON i.transaction_id = t.id
	WHERE t.type = $1 AND t.date BETWEEN $2 AND $3
	GROUP BY i.product_id, i.product_name
	ORDER BY units DESC
	LIMIT $4`
	rows, err := r.pool.Query(ctx, query, entity.TransactionTypeSale, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.GetTopProducts: %w", err)
	}
	defer rows.Close()
	var results []repository.ProductSales
	for rows.Next() {
		var p repository.ProductSales
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.Quantity, &p.Revenue); err != nil {
			return nil, fmt.Errorf("reports.GetTopProducts scan: %w", err)
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// GetEmployeeActivity transacciones por empleado y tipo en el período.
// Las transacciones sin usuario atribuido se excluyen.
func (r *ReportRepo) GetEmployeeActivity(ctx context.Context, from, to time.Time) ([]repository.EmployeeActivity, error) {
	const query = `
	SELECT user_id, MAX(user_name),
	       COUNT(*) FILTER (WHERE type = 'SALE'),
	       COUNT(*) FILTER (WHERE type = 'PURCHASE'),
	       COUNT(*) FILTER (WHERE type NOT IN ('SALE', 'PURCHASE')),
	       COUNT(*)
	FROM transactions
	WHERE user_id IS NOT NULL AND date BETWEEN $1 AND $2
	GROUP BY user_id
	ORDER BY COUNT(*) DESC`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports.GetEmployeeActivity: %w", err)
	}
	defer rows.Close()
	var results []repository.EmployeeActivity
	for rows.Next() {
		var e repository.EmployeeActivity
		if err := rows.Scan(&e.UserID, &e.UserName, &e.Sales, &e.Purchases, &e.Others, &e.Total); err != nil {
			return nil, fmt.Errorf("reports.GetEmployeeActivity scan: %w", err)
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

// GetStockTotal suma de unidades en stock de todo el catálogo.
func (r *ReportRepo) GetStockTotal(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(stock), 0) FROM products`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reports.GetStockTotal: %w", err)
	}
	return total, nil
}
