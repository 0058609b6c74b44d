// Package pdf genera la ficha imprimible de un brew con Maroto v2.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Bean + origen    │  Fecha + Ratio    │
//	│  ───────────────────────────────────────────  │
//	│  RECETA: Dosis | Yield | Tiempo | Molienda    │
//	│  EQUIPO: Molino / Método / Tueste             │
//	│  ───────────────────────────────────────────  │
//	│  NOTAS                                        │
//	│  SUGERENCIAS (si hay análisis)                │
//	│  FOOTER: QR con el id del brew                │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/Brewlog-api/internal/application/ports"
	"github.com/jhoicas/Brewlog-api/internal/domain/brewing"
	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
)

var _ ports.BrewCardRenderer = (*BrewCardGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 92, Green: 58, Blue: 33}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// BrewCardGenerator implementa ports.BrewCardRenderer usando Maroto v2.
type BrewCardGenerator struct{}

// NewBrewCardGenerator construye el generador.
func NewBrewCardGenerator() *BrewCardGenerator { return &BrewCardGenerator{} }

// RenderBrewCard genera el PDF y devuelve sus bytes. brew debe traer sus relaciones cargadas.
func (g *BrewCardGenerator) RenderBrewCard(brew *entity.Brew) ([]byte, error) {
	if brew == nil {
		return nil, fmt.Errorf("pdf: brew nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Brew "+beanName(brew), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(brew))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(recipeRow(brew))
	m.AddRows(equipmentRow(brew))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(textBlock("NOTAS", nonEmpty(brew.Notes, "Sin notas."))...)
	if brew.AISuggestions != "" {
		m.AddRows(textBlock("SUGERENCIAS", brew.AISuggestions)...)
	}
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(brew))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: bean + origen (izq) y fecha + ratio (der).
func headerRow(b *entity.Brew) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(beanName(b), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(origin(b), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(b.BrewedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New(brewing.FormatRatio(b.Ratio()), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Right, Top: 7,
			}),
		),
	)
}

// recipeRow: dosis, yield, tiempo y molienda.
func recipeRow(b *entity.Brew) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Size: 10, Top: 6, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		cell("DOSIS", b.Dose.StringFixed(1)+" g"),
		cell("YIELD", b.Yield.StringFixed(1)+" g"),
		cell("TIEMPO", formatSeconds(b.BrewTimeSeconds)),
		cell("MOLIENDA", nonEmpty(b.GrindSize, "—")),
	)
}

// equipmentRow: molino, método y fecha de tueste usada.
func equipmentRow(b *entity.Brew) core.Row {
	grinder, brewer, roast := "—", "—", "—"
	if b.Grinder != nil {
		grinder = b.Grinder.Name
	}
	if b.Brewer != nil {
		brewer = b.Brewer.Name
	}
	if b.RoastDate != nil {
		roast = b.RoastDate.Format(entity.DateLayout)
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Molino: %s   |   Método: %s   |   Tueste: %s", grinder, brewer, roast),
			props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

// textBlock título + párrafos; una fila por línea para que Maroto pagine.
func textBlock(title, body string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, l := range strings.Split(strings.TrimSpace(body), "\n") {
		if strings.TrimSpace(l) == "" {
			rows = append(rows, row.New(2))
			continue
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(l, props.Text{Size: 8, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

func footerRow(b *entity.Brew) core.Row {
	return row.New(28).Add(
		col.New(3).Add(code.NewQr("brewlog:brew:"+b.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Brewlog", props.Text{Style: fontstyle.Bold, Size: 10, Top: 8, Left: 3, Color: colorPrimary}),
			text.New(b.ID, props.Text{Size: 6.5, Top: 15, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func beanName(b *entity.Brew) string {
	if b.Bean == nil {
		return "Café sin registrar"
	}
	return b.Bean.Name
}

func origin(b *entity.Brew) string {
	if b.Bean == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{b.Bean.Country, b.Bean.Region, b.Bean.RoastType} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " · ")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatSeconds 185 → "3:05".
func formatSeconds(s int) string {
	if s <= 0 {
		return "—"
	}
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
