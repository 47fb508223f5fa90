// Package pdf genera el comprobante de recepción de una orden de servicio técnico.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Relojería + título   │  N° Orden + Fecha recepción │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre / Email / Tel                              │
//	│  RELOJ: Marca / Modelo / Serie                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SERVICIO: Tipo | Estado | Técnico | Costo estimado         │
//	│  Descripción de la falla                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el id de la orden + leyenda                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 24, Green: 38, Blue: 64}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// TicketGenerator genera comprobantes de servicio con Maroto v2.
type TicketGenerator struct {
	shopName string
}

// NewTicketGenerator construye el generador; shopName encabeza el documento.
func NewTicketGenerator(shopName string) *TicketGenerator {
	return &TicketGenerator{shopName: nonEmpty(shopName, "Relojería")}
}

// GenerateServiceTicket genera el PDF y devuelve sus bytes.
func (g *TicketGenerator) GenerateServiceTicket(_ context.Context, sr entity.ServiceRequest) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de servicio "+sr.ID, true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sr))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(sr))
	m.AddRows(watchRow(sr))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(serviceRow(sr))
	m.AddRows(issueRows(sr.IssueDescription)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(sr))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la relojería (izq) y N° de orden + fecha de recepción (der).
func (g *TicketGenerator) headerRow(sr entity.ServiceRequest) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.shopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Servicio técnico", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("ORDEN DE SERVICIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(sr.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Recibido: "+sr.ReceivedDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(sr entity.ServiceRequest) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(sr.CustomerName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s",
				nonEmpty(sr.CustomerEmail, "—"),
				nonEmpty(sr.CustomerPhone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func watchRow(sr entity.ServiceRequest) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("RELOJ", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Marca: %s   |   Modelo: %s   |   Serie: %s",
				sr.WatchBrand,
				nonEmpty(sr.WatchModel, "—"),
				nonEmpty(sr.SerialNumber, "—"),
			), props.Text{Size: 8, Top: 7}),
		),
	)
}

// serviceRow: tipo, estado, técnico y costo estimado en cuatro columnas.
func serviceRow(sr entity.ServiceRequest) core.Row {
	cell := func(label, value string, size int, a align.Type) core.Col {
		return col.New(size).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Align: a, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Size: 9, Align: a, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("Tipo de servicio", sr.ServiceType, 3, align.Left),
		cell("Estado", sr.Status, 3, align.Left),
		cell("Técnico", nonEmpty(sr.Technician, "Sin asignar"), 3, align.Left),
		cell("Costo estimado", "$"+formatMoney(sr.EstimatedCost.StringFixed(0)), 3, align.Right),
	)
}

// issueRows: descripción de la falla partida en líneas de 100 caracteres.
func issueRows(issue string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("DESCRIPCIÓN DE LA FALLA", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, chunk := range splitEvery(nonEmpty(strings.TrimSpace(issue), "—"), 100) {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 8, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

// footerRow: QR con el id completo de la orden + leyenda.
func footerRow(sr entity.ServiceRequest) core.Row {
	return row.New(45).Add(
		col.New(4).Add(code.NewQr(sr.ID, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("Presente este comprobante para retirar su reloj.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("El costo estimado puede variar tras el diagnóstico\ny requiere su aprobación previa.", props.Text{
				Size: 8, Top: 14, Left: 3, Color: colorGray,
			}),
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

// shortID primeros 8 caracteres del id en mayúsculas (el id completo va en el QR).
func shortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
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

// splitEvery divide s en trozos de máximo n runas.
func splitEvery(s string, n int) []string {
	var parts []string
	r := []rune(s)
	for len(r) > n {
		parts = append(parts, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 {
		parts = append(parts, string(r))
	}
	return parts
}
