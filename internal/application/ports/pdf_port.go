package ports

import (
	"context"

	"github.com/jhoicas/fruteria-api/internal/application/dto"
)

// ReportPDFGenerator puerto de salida para renderizar reportes en PDF.
type ReportPDFGenerator interface {
	GenerateSalesReportPDF(ctx context.Context, report *dto.SalesReportDTO) ([]byte, error)
}
