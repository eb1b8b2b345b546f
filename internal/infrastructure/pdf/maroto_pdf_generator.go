// Package pdf implementa la versión imprimible del reporte de consumo NPWT.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + rango de fechas                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Cant | Valor | Procs | Pacientes │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Procedimientos / Valor total / Promedio / Top      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateConsumptionPDF genera el PDF del reporte de consumo y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateConsumptionPDF(_ context.Context, report *dto.ConsumptionReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Consumo NPWT", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(report.Rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRows(report.Summary)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y rango + fecha de generación (der).
func headerRow(report *dto.ConsumptionReport) core.Row {
	rango := fmt.Sprintf("%s — %s",
		report.Start.Format("02/01/2006"),
		report.End.Format("02/01/2006"),
	)
	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE CONSUMO DE INSUMOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Terapia de presión negativa", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Período: "+rango, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de consumo.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Cant.", 1, align.Center),
		h("Valor", 3, align.Right),
		h("Procs.", 1, align.Center),
		h("Pacientes", 1, align.Center),
	)
}

// tableRows: una fila por producto del catálogo, consumo cero incluido.
func tableRows(rows []*dto.ConsumptionRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				r.Code,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				r.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", r.TotalConsumed),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(r.TotalValue.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", r.ProceduresCount),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", r.PatientsCount),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
		))
	}
	return result
}

// summaryRows: bloque de agregados del período.
func summaryRows(s dto.ConsumptionSummary) []core.Row {
	label := func(txt string) core.Component {
		return text.New(txt, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(txt string) core.Component {
		return text.New(txt, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	rows := []core.Row{
		row.New(20).Add(
			col.New(4),
			col.New(4).Add(
				label("Procedimientos del período:"),
				label("Valor total consumido:"),
				label("Promedio por procedimiento:"),
			),
			col.New(4).Add(
				value(fmt.Sprintf("%d", s.TotalProcedures)),
				value("$"+formatMoney(s.TotalValue.StringFixed(0))),
				value("$"+formatMoney(s.AvgValuePerProc.StringFixed(0))),
			),
		),
	}
	if s.MostUsedProduct != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Insumo más consumido: "+s.MostUsedProduct, props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
