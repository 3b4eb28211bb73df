// Package pdf implementa la generación del reporte de ventas en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Período                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Ingresos totales | N° de ventas                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Productos más vendidos (Cant | Producto | Ingresos)  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ventas por día (Fecha | Ventas | Ingresos)           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/fruteria-api/internal/application/dto"
	"github.com/jhoicas/fruteria-api/internal/application/ports"
)

var _ ports.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	businessName string
}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator(businessName string) *MarotoReportGenerator {
	if businessName == "" {
		businessName = "Frutería"
	}
	return &MarotoReportGenerator{businessName: businessName}
}

// GenerateSalesReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateSalesReportPDF(
	_ context.Context,
	report *dto.SalesReportDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Ventas", true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Productos más vendidos
	m.AddRows(sectionTitleRow("PRODUCTOS MÁS VENDIDOS"))
	m.AddRows(topProductsHeaderRow())
	for _, r := range topProductsRows(report.TopProducts) {
		m.AddRows(r)
	}

	// Ventas por día
	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitleRow("VENTAS POR DÍA"))
	m.AddRows(byDayHeaderRow())
	for _, r := range byDayRows(report.ByDay) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y período del reporte (der).
func (g *MarotoReportGenerator) headerRow(report *dto.SalesReportDTO) core.Row {
	periodo := fmt.Sprintf("%s — %s",
		report.From.Format("02/01/2006"),
		report.To.Format("02/01/2006"),
	)
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de Ventas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(periodo, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
		),
	)
}

// summaryRow: totales del período.
func summaryRow(report *dto.SalesReportDTO) core.Row {
	return row.New(12).Add(
		col.New(6).Add(
			text.New("Ingresos totales", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1,
			}),
			text.New("$"+report.Revenue.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 6,
			}),
		),
		col.New(6).Add(
			text.New("Ventas registradas", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1, Align: align.Right,
			}),
			text.New(fmt.Sprintf("%d", report.SalesCount), props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 6, Align: align.Right,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

func topProductsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Cant.", 2, align.Right),
		h("Producto", 6, align.Left),
		h("Ingresos", 4, align.Right),
	)
}

func topProductsRows(products []dto.ProductSalesDTO) []core.Row {
	if len(products) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin ventas en el período.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		))}
	}
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(
				p.Quantity.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(6).Add(text.New(
				p.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				"$"+p.Revenue.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func byDayHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Fecha", 4, align.Left),
		h("Ventas", 4, align.Right),
		h("Ingresos", 4, align.Right),
	)
}

func byDayRows(days []dto.DailySalesDTO) []core.Row {
	if len(days) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin ventas en el período.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		))}
	}
	result := make([]core.Row, 0, len(days))
	for _, d := range days {
		result = append(result, row.New(6).Add(
			col.New(4).Add(text.New(
				d.Day.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				fmt.Sprintf("%d", d.Count),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(4).Add(text.New(
				"$"+d.Revenue.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}
