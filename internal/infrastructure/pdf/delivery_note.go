// Package pdf genera la remisión de mercancía (delivery note) de un movimiento.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre app           │  N° Remisión + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORIGEN: ubicación            │  DESTINO: ubicación         │
//	│  Estado / creado por / notas                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: unidades / valor                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  HISTORIAL + QR con el ID del movimiento + firmas           │
//	└─────────────────────────────────────────────────────────────┘
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-distribucion/internal/application/movement"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var statusLabels = map[string]string{
	entity.MovementStatusPending:   "PENDIENTE",
	entity.MovementStatusApproved:  "APROBADO",
	entity.MovementStatusReceived:  "RECIBIDO",
	entity.MovementStatusCancelled: "CANCELADO",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ movement.DeliveryNoteRenderer = (*DeliveryNoteGenerator)(nil)

// DeliveryNoteGenerator implementa movement.DeliveryNoteRenderer usando Maroto v2.
type DeliveryNoteGenerator struct {
	appName string
}

// NewDeliveryNoteGenerator construye el generador.
func NewDeliveryNoteGenerator(appName string) *DeliveryNoteGenerator {
	return &DeliveryNoteGenerator{appName: appName}
}

// Render genera el PDF y devuelve sus bytes. m debe traer ítems y bitácora cargados.
func (g *DeliveryNoteGenerator) Render(m *entity.Movement) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("pdf: movimiento nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Remisión "+shortID(m.ID), true).
		WithAuthor(g.appName, true).
		Build()

	doc := maroto.New(cfg)

	doc.AddRows(g.headerRow(m))
	doc.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	doc.AddRows(partiesRow(m))
	doc.AddRows(summaryRow(m))
	doc.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	doc.AddRows(tableHeaderRow())
	doc.AddRows(tableDetailRows(m.Items)...)

	doc.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	doc.AddRows(totalsRow(m.Items))

	doc.AddRows(line.NewRow(3))
	doc.AddRows(historyRows(m.Activities)...)
	doc.AddRows(line.NewRow(3))
	doc.AddRows(footerRow(m))

	out, err := doc.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *DeliveryNoteGenerator) headerRow(m *entity.Movement) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.appName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Distribución de inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REMISIÓN DE MERCANCÍA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+shortID(m.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+m.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func partiesRow(m *entity.Movement) core.Row {
	party := func(title, name, id string, a align.Type) core.Col {
		return col.New(6).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: a,
			}),
			text.New(nonEmpty(name, id), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6, Align: a,
			}),
		)
	}
	return row.New(14).Add(
		party("ORIGEN", m.FromLocationName, m.FromLocationID, align.Left),
		party("DESTINO", m.ToLocationName, m.ToLocationID, align.Right),
	)
}

func summaryRow(m *entity.Movement) core.Row {
	status := statusLabels[m.Status]
	if status == "" {
		status = strings.ToUpper(m.Status)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Estado: %s   |   Creado por: %s",
				status, nonEmpty(m.CreatedByName, m.CreatedBy),
			), props.Text{Size: 8, Top: 1, Color: colorGray}),
			text.New("Notas: "+nonEmpty(m.Notes, "-"), props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func tableDetailRows(items []entity.MovementItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				nonEmpty(it.ProductName, it.ProductID),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatAmount(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatAmount(it.Subtotal()),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRow(items []entity.MovementItem) core.Row {
	units := 0
	total := decimal.Zero
	for _, it := range items {
		units += it.Quantity
		total = total.Add(it.Subtotal())
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 6})
	}
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			label("Unidades:"),
			text.New("VALOR TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 6}),
		),
		col.New(3).Add(
			text.New(fmt.Sprintf("%d", units), props.Text{Size: 9, Align: align.Right, Right: 1}),
			value("$"+formatAmount(total)),
		),
	)
}

func historyRows(acts []entity.MovementActivity) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("HISTORIAL", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, a := range acts {
		who := nonEmpty(a.UserName, "sistema")
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s  %s (%s): %s",
				a.CreatedAt.Format("02/01/2006 15:04"), a.Action, who, nonEmpty(a.Description, "-"),
			), props.Text{Size: 7, Color: colorGray, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

func footerRow(m *entity.Movement) core.Row {
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(m.ID, props.Rect{Percent: 90, Center: true})),
		col.New(4).Add(
			text.New("Entrega: "+nonEmpty(m.FromLocationName, "origen"), props.Text{Size: 8, Top: 28, Align: align.Center}),
			text.New("_________________________", props.Text{Size: 8, Top: 23, Align: align.Center, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Recibe: "+nonEmpty(m.ToLocationName, "destino"), props.Text{Size: 8, Top: 28, Align: align.Center}),
			text.New("_________________________", props.Text{Size: 8, Top: 23, Align: align.Center, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

// formatAmount separa miles con punto y decimales con coma. Ej: 1234567.5 → "1.234.567,50"
func formatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + formatMoney(intPart) + "," + frac
}

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
