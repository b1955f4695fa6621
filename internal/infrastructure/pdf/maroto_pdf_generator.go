// Package pdf genera los documentos imprimibles del sistema con Maroto v2:
// albaranes de entrega del libro de pedidos y pedidos a proveedor.
//
// Layout común de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + contacto  │  Tipo de documento + Ref     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DESTINATARIO: cliente o proveedor (+ local de entrega)      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Importe                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal (+ mínimo del proveedor)                  │
//	│  FOOTER: notas + firma de recepción                          │
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hospitality-ops-api/internal/application/orderbook"
	appstock "github.com/jhoicas/hospitality-ops-api/internal/application/stock"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
	"github.com/jhoicas/hospitality-ops-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 31, Green: 64, Blue: 55}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 170, Green: 60, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var (
	_ orderbook.DeliveryNoteGenerator    = (*MarotoPDFGenerator)(nil)
	_ appstock.PurchaseOrderPDFGenerator = (*MarotoPDFGenerator)(nil)
)

// MarotoPDFGenerator implementa los generadores de albarán y de pedido a proveedor.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// tableLine fila neutra de la tabla de detalle.
type tableLine struct {
	Quantity    decimal.Decimal
	Unit        string
	Description string
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// GenerateDeliveryNotePDF genera el albarán de un pedido del libro de pedidos.
func (g *MarotoPDFGenerator) GenerateDeliveryNotePDF(ctx context.Context, company *entity.Company, doc orderbook.OrderDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if company == nil || doc.Order == nil || doc.Customer == nil {
		return nil, fmt.Errorf("pdf: albarán incompleto")
	}

	lines := make([]tableLine, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		desc := l.ProductName
		if l.SKU != "" {
			desc = fmt.Sprintf("%s (%s)", l.ProductName, l.SKU)
		}
		lines = append(lines, tableLine{
			Quantity: l.Quantity, Description: desc, UnitPrice: l.UnitPrice, LineTotal: l.LineTotal,
		})
	}

	m := newDocument(company, "Albarán de entrega")
	m.AddRows(headerRow(company, "ALBARÁN DE ENTREGA", shortRef(doc.Order.ID),
		"Entrega: "+doc.Order.DeliveryDate.Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow("CLIENTE", doc.Customer.Name, contactLine(doc.Customer.Address, doc.Customer.Phone, doc.Customer.Email)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow("Subtotal:", doc.Order.Subtotal, colorPrimary))
	m.AddRows(footerRows(doc.Order.Notes, "Recibido por (nombre y firma):")...)

	return generate(m)
}

// GeneratePurchaseOrderPDF genera el pedido a proveedor.
func (g *MarotoPDFGenerator) GeneratePurchaseOrderPDF(ctx context.Context, doc appstock.PurchaseOrderDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc.Order == nil || doc.Company == nil || doc.Supplier == nil {
		return nil, fmt.Errorf("pdf: pedido a proveedor incompleto")
	}

	lines := make([]tableLine, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		lines = append(lines, tableLine{
			Quantity: l.Quantity, Unit: l.Unit, Description: l.Name, UnitPrice: l.UnitPrice, LineTotal: l.LineTotal,
		})
	}

	date := doc.Order.CreatedAt
	if doc.Order.SubmittedAt != nil {
		date = *doc.Order.SubmittedAt
	}

	m := newDocument(doc.Company, "Pedido a proveedor")
	m.AddRows(headerRow(doc.Company, "PEDIDO A PROVEEDOR", shortRef(doc.Order.ID), "Fecha: "+date.Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow("PROVEEDOR", doc.Supplier.Name, contactLine("", doc.Supplier.Phone, doc.Supplier.Email)))
	if doc.Site != nil {
		m.AddRows(partyRow("ENTREGAR EN", doc.Site.Name, nonEmpty(doc.Site.Address, "—")))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow("Subtotal:", doc.Order.Subtotal, colorPrimary))
	if doc.Order.MinOrderValue.IsPositive() {
		c := colorGray
		if !doc.Order.MeetsMinimum() {
			c = colorWarn
		}
		m.AddRows(totalRow("Mínimo del proveedor:", doc.Order.MinOrderValue, c))
	}
	m.AddRows(footerRows(doc.Order.Notes, "Confirmado por el proveedor:")...)

	return generate(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func newDocument(company *entity.Company, title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(company.Name, true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: empresa (izq) y tipo de documento + referencia + fecha (der).
func headerRow(company *entity.Company, kind, ref, date string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(contactLine(company.Address, company.Phone, company.Email), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(kind, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Ref. "+ref, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func partyRow(label, name, detail string) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(detail, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Descripción", 6, align.Left),
		h("Precio unit.", 2, align.Right),
		h("Importe", 2, align.Right),
	)
}

func tableRows(lines []tableLine) []core.Row {
	if len(lines) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin líneas", props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray}),
		))}
	}
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		qty := money.Quantity(l.Quantity)
		if l.Unit != "" {
			qty += " " + l.Unit
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(qty, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(l.Description, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money.GBP(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money.GBP(l.LineTotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalRow(label string, amount decimal.Decimal, color *props.Color) core.Row {
	return row.New(7).Add(
		col.New(6),
		col.New(4).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Color: color,
		})),
		col.New(2).Add(text.New(money.GBP(amount), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1, Color: color,
		})),
	)
}

func footerRows(notes, signature string) []core.Row {
	rows := []core.Row{row.New(4)}
	if notes != "" {
		rows = append(rows,
			row.New(5).Add(col.New(12).Add(text.New("NOTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}))),
			row.New(10).Add(col.New(12).Add(text.New(notes, props.Text{Size: 8, Top: 1, Color: colorGray}))),
		)
	}
	rows = append(rows,
		row.New(14),
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3, SizePercent: 40}),
		row.New(6).Add(col.New(12).Add(text.New(signature, props.Text{Size: 7, Color: colorGray, Top: 1}))),
	)
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func contactLine(address, phone, email string) string {
	return fmt.Sprintf("%s   |   Tel: %s   |   Email: %s",
		nonEmpty(address, "—"), nonEmpty(phone, "—"), nonEmpty(email, "—"))
}

// shortRef primeros 8 caracteres del ID, en mayúsculas.
func shortRef(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	b := []byte(id)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 32
		}
	}
	return string(b)
}
