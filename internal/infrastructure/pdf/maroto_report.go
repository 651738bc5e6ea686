// Package pdf genera el reporte imprimible de stock de implantes por partida.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de emisión                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Partida | Artículo | Descripción | Depósito | Sist. | Fís. │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: saldo sistema por depósito                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"io"
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

	"github.com/jhoicas/stock-implantes/internal/domain/entity"
	"github.com/jhoicas/stock-implantes/internal/domain/stock"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportExporter implementa inventory.ReportExporter usando Maroto v2.
type MarotoReportExporter struct {
	title string
	now   func() time.Time
}

// NewMarotoReportExporter construye el exportador; title encabeza el reporte.
func NewMarotoReportExporter(title string) *MarotoReportExporter {
	if title == "" {
		title = "Logística de implantes"
	}
	return &MarotoReportExporter{title: title, now: time.Now}
}

// Export genera el PDF y lo escribe en w.
func (g *MarotoReportExporter) Export(_ context.Context, table entity.Table, w io.Writer) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Stock de implantes por partida", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(table)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(table)...)

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("pdf: generar documento: %w", err)
	}
	if _, err := w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("pdf: escribir: %w", err)
	}
	return nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, now time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Stock de implantes por partida", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Emitido: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
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
		h("Partida", 2, align.Left),
		h("Cód. Artículo", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Depósito", 2, align.Center),
		h("Sistema", 1, align.Right),
		h("Físico", 1, align.Right),
	)
}

func tableDetailRows(table entity.Table) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(table.Rows))
	for _, r := range table.Rows {
		result = append(result, row.New(7).Add(
			cell(r.LotID, 2, align.Left),
			cell(r.ArticleCode, 2, align.Left),
			cell(r.Description, 4, align.Left),
			cell(r.Warehouse, 2, align.Center),
			cell(nonEmpty(r.SystemQuantity.String(), "—"), 1, align.Right),
			cell(nonEmpty(r.PhysicalQuantity.String(), "—"), 1, align.Right),
		))
	}
	return result
}

func totalsRows(table entity.Table) []core.Row {
	rows := make([]core.Row, 0, len(entity.Warehouses))
	for _, wh := range entity.Warehouses {
		rows = append(rows, row.New(7).Add(
			col.New(8),
			col.New(2).Add(text.New("Total "+wh+":", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1,
			})),
			col.New(2).Add(text.New(stock.TotalQuantity(table, wh).String(), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 1,
			})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
