// Package pdf implementa la representación imprimible del reporte de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + establecimiento │ Fecha de generación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: ítems / con stock bajo / inconsistentes           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ítem | Categoría | Unidad | Entradas | Salidas |    │
//	│         Stock | Mínimo | Estado                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
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

	"github.com/jhoicas/Inventario-hotel-api/internal/application/analytics"
	"github.com/jhoicas/Inventario-hotel-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ analytics.InventoryPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa analytics.InventoryPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	establishment string
}

// NewMarotoPDFGenerator construye el generador. establishment aparece en la cabecera.
func NewMarotoPDFGenerator(establishment string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{establishment: establishment}
}

// GenerateInventoryPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInventoryPDF(
	_ context.Context,
	title string,
	generatedAt time.Time,
	rows []dto.InventoryReportRowDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(nonEmpty(g.establishment, "Inventario"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, g.establishment, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(rows))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(rows)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title, establishment string, at time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(establishment, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(at.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

// summaryRow: contadores del reporte.
func summaryRow(rows []dto.InventoryReportRowDTO) core.Row {
	low, inconsistent := 0, 0
	for _, r := range rows {
		if r.Status == dto.StockStatusLow {
			low++
		}
		if !r.Consistent {
			inconsistent++
		}
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Ítems: %d   |   Con stock bajo: %d   |   Saldo inconsistente: %d",
				len(rows), low, inconsistent,
			), props.Text{Size: 8, Top: 3, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Ítem", 3, align.Left),
		h("Categoría", 2, align.Left),
		h("Unidad", 1, align.Center),
		h("Entradas", 1, align.Right),
		h("Salidas", 1, align.Right),
		h("Stock", 1, align.Right),
		h("Mínimo", 1, align.Right),
		h("Estado", 2, align.Center),
	)
}

// tableDetailRows: una fila por ítem; el estado va en rojo cuando el stock está bajo.
func tableDetailRows(rows []dto.InventoryReportRowDTO) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		statusColor := colorGray
		if r.Status == dto.StockStatusLow {
			statusColor = colorAlert
		}
		status := r.Status
		if !r.Consistent {
			status += " *"
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		result = append(result, row.New(7).Add(
			cell(r.ItemName, 3, align.Left),
			cell(nonEmpty(r.Category, "—"), 2, align.Left),
			cell(r.Unit, 1, align.Center),
			cell(r.TotalIn.String(), 1, align.Right),
			cell(r.TotalOut.String(), 1, align.Right),
			cell(r.CurrentStock.String(), 1, align.Right),
			cell(r.MinStock.String(), 1, align.Right),
			col.New(2).Add(text.New(status, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: statusColor,
			})),
		))
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Entradas y salidas se calculan sobre el historial completo de movimientos. "+
				"* indica que el stock guardado no coincide con Entradas − Salidas.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
