// Package xlsx exporta los pedidos de un día de entrega a una hoja de cálculo.
//
// Hoja "Pedidos": una fila por línea de pedido.
// Hoja "Totales": cantidad e importe agregados por producto (hoja de producción).
package xlsx

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/hospitality-ops-api/internal/application/orderbook"
)

const (
	sheetOrders = "Pedidos"
	sheetTotals = "Totales"
)

var _ orderbook.DayExporter = (*Exporter)(nil)

// Exporter implementa orderbook.DayExporter con excelize.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// ExportDay genera el XLSX y devuelve sus bytes.
func (e *Exporter) ExportDay(ctx context.Context, doc orderbook.DayExportDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetOrders); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(sheetTotals); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1F4037"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	moneyFmt := "£#,##0.00"
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	if err := writeOrders(f, doc, header, money); err != nil {
		return nil, err
	}
	if err := writeTotals(f, doc, header, money); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

func writeOrders(f *excelize.File, doc orderbook.DayExportDocument, header, money int) error {
	cols := []any{"Referencia", "Cliente", "Estado", "SKU", "Producto", "Cantidad", "Precio unit.", "Importe", "Notas"}
	if err := f.SetSheetRow(sheetOrders, "A1", &cols); err != nil {
		return fmt.Errorf("xlsx: cabecera: %w", err)
	}
	if err := f.SetCellStyle(sheetOrders, "A1", "I1", header); err != nil {
		return fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	r := 2
	for _, o := range doc.Orders {
		customer := ""
		if o.Customer != nil {
			customer = o.Customer.Name
		}
		for _, l := range o.Lines {
			values := []any{
				shortRef(o.Order.ID), customer, o.Order.Status, l.SKU, l.ProductName,
				toFloat(l.Quantity), toFloat(l.UnitPrice), toFloat(l.LineTotal), o.Order.Notes,
			}
			if err := f.SetSheetRow(sheetOrders, cell("A", r), &values); err != nil {
				return fmt.Errorf("xlsx: fila %d: %w", r, err)
			}
			r++
		}
	}
	if r > 2 {
		if err := f.SetCellStyle(sheetOrders, "G2", cell("H", r-1), money); err != nil {
			return fmt.Errorf("xlsx: estilo importes: %w", err)
		}
	}
	_ = f.SetColWidth(sheetOrders, "B", "B", 28)
	_ = f.SetColWidth(sheetOrders, "E", "E", 32)
	return f.SetPanes(sheetOrders, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

// productTotal acumulado por producto.
type productTotal struct {
	SKU      string
	Name     string
	Quantity decimal.Decimal
	Amount   decimal.Decimal
}

// aggregateByProduct suma cantidades e importes por ProductID, ordenado por nombre.
func aggregateByProduct(doc orderbook.DayExportDocument) []productTotal {
	acc := map[string]*productTotal{}
	for _, o := range doc.Orders {
		for _, l := range o.Lines {
			t, ok := acc[l.ProductID]
			if !ok {
				t = &productTotal{SKU: l.SKU, Name: l.ProductName}
				acc[l.ProductID] = t
			}
			t.Quantity = t.Quantity.Add(l.Quantity)
			t.Amount = t.Amount.Add(l.LineTotal)
		}
	}
	out := make([]productTotal, 0, len(acc))
	for _, t := range acc {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].SKU < out[j].SKU
	})
	return out
}

func writeTotals(f *excelize.File, doc orderbook.DayExportDocument, header, money int) error {
	title := fmt.Sprintf("Entrega %s", doc.DeliveryDate.Format("02/01/2006"))
	if doc.Company != nil {
		title = doc.Company.Name + " · " + title
	}
	if err := f.SetCellValue(sheetTotals, "A1", title); err != nil {
		return fmt.Errorf("xlsx: título: %w", err)
	}
	cols := []any{"SKU", "Producto", "Cantidad", "Importe"}
	if err := f.SetSheetRow(sheetTotals, "A3", &cols); err != nil {
		return fmt.Errorf("xlsx: cabecera totales: %w", err)
	}
	if err := f.SetCellStyle(sheetTotals, "A3", "D3", header); err != nil {
		return fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	r := 4
	grand := decimal.Zero
	for _, t := range aggregateByProduct(doc) {
		values := []any{t.SKU, t.Name, toFloat(t.Quantity), toFloat(t.Amount)}
		if err := f.SetSheetRow(sheetTotals, cell("A", r), &values); err != nil {
			return fmt.Errorf("xlsx: fila %d: %w", r, err)
		}
		grand = grand.Add(t.Amount)
		r++
	}
	if err := f.SetCellValue(sheetTotals, cell("C", r), "Total"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetTotals, cell("D", r), toFloat(grand)); err != nil {
		return err
	}
	_ = f.SetColWidth(sheetTotals, "B", "B", 32)
	return f.SetCellStyle(sheetTotals, "D4", cell("D", r), money)
}

func cell(col string, row int) string { return fmt.Sprintf("%s%d", col, row) }

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func shortRef(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
