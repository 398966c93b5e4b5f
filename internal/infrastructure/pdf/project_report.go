// Package pdf genera el reporte de seguimiento de un proyecto.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del proyecto  │  Estado + Fechas            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INICIATIVA: nombre + categoría / progreso                  │
//	│  TABLA: Estudiante | Email | Rol                            │
//	│  TABLA: Hito | Fecha entrega | Estado                       │
//	│  TABLA: Criterio | Peso | Puntuación | Observaciones        │
//	│  PROMEDIO PONDERADO                                         │
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

	"github.com/softlink/softlink-api/internal/application/report"
	"github.com/softlink/softlink-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.Generator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.Generator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateProjectReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateProjectReport(_ context.Context, r *report.ProjectReport) ([]byte, error) {
	if r == nil || r.Project == nil {
		return nil, fmt.Errorf("pdf: reporte sin proyecto")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de proyecto", true).
		WithAuthor("SoftLink", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r.Project))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(initiativeRow(r.Project, r.Initiative))

	m.AddRows(sectionRow("ESTUDIANTES"))
	m.AddRows(tableHeaderRow([]string{"Estudiante", "Email", "Rol"}, []int{5, 4, 3}))
	for _, s := range r.Students {
		m.AddRows(tableRow([]string{s.Name, nonEmpty(s.Email, "—"), s.Role}, []int{5, 4, 3}))
	}
	if len(r.Students) == 0 {
		m.AddRows(emptyRow("Sin estudiantes asignados"))
	}

	m.AddRows(sectionRow("HITOS"))
	m.AddRows(tableHeaderRow([]string{"Hito", "Fecha entrega", "Estado"}, []int{6, 3, 3}))
	for _, h := range r.Milestones {
		m.AddRows(tableRow([]string{h.Title, formatDate(h.DueDate), h.Status}, []int{6, 3, 3}))
	}
	if len(r.Milestones) == 0 {
		m.AddRows(emptyRow("Sin hitos registrados"))
	}

	m.AddRows(sectionRow("EVALUACIONES"))
	m.AddRows(tableHeaderRow([]string{"Criterio", "Peso", "Puntuación", "Observaciones"}, []int{4, 1, 2, 5}))
	for _, e := range r.Evaluations {
		m.AddRows(tableRow([]string{
			e.Criterion,
			e.Weight.StringFixed(2),
			fmt.Sprintf("%d", e.Score),
			nonEmpty(e.Observations, "—"),
		}, []int{4, 1, 2, 5}))
	}
	if len(r.Evaluations) == 0 {
		m.AddRows(emptyRow("Sin evaluaciones"))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(averageRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y estado + fechas (der).
func headerRow(p *entity.Project) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(p.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Proyecto N° %d", p.ID), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("ESTADO: "+p.Status, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Inicio: "+formatDate(p.StartDate), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Fin: "+formatDate(p.EndDate), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func initiativeRow(p *entity.Project, in *entity.Initiative) core.Row {
	origin := "Proyecto sin iniciativa de origen"
	if in != nil {
		origin = fmt.Sprintf("%s   |   Categoría: %s", in.Name, nonEmpty(in.Category, "—"))
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("INICIATIVA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(origin, props.Text{Size: 9, Top: 6}),
			text.New(fmt.Sprintf("Progreso: %d%%", p.Progress), props.Text{
				Size: 8, Top: 11, Color: colorGray,
			}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3}),
	))
}

func tableHeaderRow(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func tableRow(values []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		cols = append(cols, col.New(sizes[i]).Add(text.New(v, props.Text{
			Size: 8, Top: 1, Left: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray}),
	))
}

func averageRow(r *report.ProjectReport) core.Row {
	return row.New(10).Add(
		col.New(8).Add(text.New("PROMEDIO PONDERADO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(4).Add(text.New(r.WeightedAverage.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format(dateLayout)
}
