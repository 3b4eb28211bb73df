package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/fruteria-api/internal/application/dto"
	"github.com/jhoicas/fruteria-api/internal/application/ports"
	"github.com/jhoicas/fruteria-api/internal/domain"
	"github.com/jhoicas/fruteria-api/internal/domain/repository"
)

// ReportUseCase reportes y dashboard: agregados de solo lectura sobre el
// historial de transacciones. Nunca escribe.
type ReportUseCase struct {
	reportRepo  repository.ReportRepository
	productRepo repository.ProductRepository
	pdfGen      ports.ReportPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	productRepo repository.ProductRepository,
	pdfGen ports.ReportPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, productRepo: productRepo, pdfGen: pdfGen}
}

// Dashboard arma las métricas de la portada: ventas de hoy, stock total,
// productos bajos de stock y la serie de los últimos 7 días.
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := todayStart.AddDate(0, 0, -7)

	today, err := uc.reportRepo.GetSalesSummary(ctx, todayStart, now)
	if err != nil {
		return nil, err
	}
	byDay, err := uc.reportRepo.GetSalesByDay(ctx, weekStart, now)
	if err != nil {
		return nil, err
	}
	stockTotal, err := uc.reportRepo.GetStockTotal(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardDTO{
		TodayRevenue:    today.Revenue,
		TodaySalesCount: today.Count,
		StockTotal:      stockTotal,
		LowStockCount:   len(lowStock),
	}
	for _, p := range lowStock {
		out.LowStockProducts = append(out.LowStockProducts, *toProductResponse(p))
	}
	for _, d := range byDay {
		out.SalesLast7Days = append(out.SalesLast7Days, dto.DailySalesDTO{Day: d.Day, Revenue: d.Revenue, Count: d.Count})
	}
	return out, nil
}

// SalesReport arma el reporte de ventas de un período: totales, serie diaria
// y productos más vendidos.
func (uc *ReportUseCase) SalesReport(ctx context.Context, from, to time.Time) (*dto.SalesReportDTO, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	summary, err := uc.reportRepo.GetSalesSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	top, err := uc.reportRepo.GetTopProducts(ctx, from, to, 10)
	if err != nil {
		return nil, err
	}
	byDay, err := uc.reportRepo.GetSalesByDay(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := &dto.SalesReportDTO{
		From:       from,
		To:         to,
		Revenue:    summary.Revenue,
		SalesCount: summary.Count,
	}
	for _, p := range top {
		out.TopProducts = append(out.TopProducts, dto.ProductSalesDTO{
			ProductID: p.ProductID, ProductName: p.ProductName,
			Quantity: p.Quantity, Revenue: p.Revenue,
		})
	}
	for _, d := range byDay {
		out.ByDay = append(out.ByDay, dto.DailySalesDTO{Day: d.Day, Revenue: d.Revenue, Count: d.Count})
	}
	return out, nil
}

// SalesReportPDF genera el reporte de ventas del período en PDF.
func (uc *ReportUseCase) SalesReportPDF(ctx context.Context, from, to time.Time) ([]byte, error) {
	report, err := uc.SalesReport(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateSalesReportPDF(ctx, report)
}

// EmployeeActivity transacciones registradas por empleado en el período.
func (uc *ReportUseCase) EmployeeActivity(ctx context.Context, from, to time.Time) ([]dto.EmployeeActivityDTO, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.reportRepo.GetEmployeeActivity(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeActivityDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.EmployeeActivityDTO{
			UserID: r.UserID, UserName: r.UserName,
			Sales: r.Sales, Purchases: r.Purchases, Others: r.Others, Total: r.Total,
		})
	}
	return out, nil
}
