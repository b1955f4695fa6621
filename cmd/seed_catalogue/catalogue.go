package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type catalogueRow struct {
	Name          string
	SKU           string
	Unit          string
	UnitPrice     *decimal.Decimal
	ParLevel      decimal.Decimal
	ShelfLifeDays *int
	IsPerishable  bool
}

var requiredColumns = []string{"name", "unit"}

// decodeInput devuelve el contenido en UTF-8. Lo que no es UTF-8 válido se trata como Windows-1252.
func decodeInput(raw []byte) io.Reader {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return bytes.NewReader(raw)
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.Windows1252.NewDecoder())
}

func parseCatalogue(raw []byte) ([]catalogueRow, error) {
	r := csv.NewReader(decodeInput(raw))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	if bytes.Count(firstLine(raw), []byte(";")) > bytes.Count(firstLine(raw), []byte(",")) {
		r.Comma = ';'
	}

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("cabecera: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("falta la columna %q", c)
		}
	}
	get := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []catalogueRow
	line := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		row := catalogueRow{
			Name:     get(rec, "name"),
			SKU:      get(rec, "sku"),
			Unit:     get(rec, "unit"),
			ParLevel: decimal.Zero,
		}
		if row.Name == "" {
			continue
		}
		if row.Unit == "" {
			row.Unit = "unit"
		}
		if s := get(rec, "unit_price"); s != "" {
			p, err := parseAmount(s)
			if err != nil || p.IsNegative() {
				return nil, fmt.Errorf("línea %d: unit_price %q inválido", line, s)
			}
			row.UnitPrice = &p
		}
		if s := get(rec, "par_level"); s != "" {
			p, err := parseAmount(s)
			if err != nil || p.IsNegative() {
				return nil, fmt.Errorf("línea %d: par_level %q inválido", line, s)
			}
			row.ParLevel = p
		}
		if s := get(rec, "shelf_life_days"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("línea %d: shelf_life_days %q inválido", line, s)
			}
			row.ShelfLifeDays = &n
		}
		switch strings.ToLower(get(rec, "is_perishable")) {
		case "1", "true", "yes", "si", "sí", "y":
			row.IsPerishable = true
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseAmount acepta "£1,234.50", "3.20" y "3,20".
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "£"))
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", "")
	} else {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

func firstLine(raw []byte) []byte {
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		return raw[:i]
	}
	return raw
}

func writeSQL(w io.Writer, companyID, supplierID string, rows []catalogueRow, newID func() string) error {
	var b strings.Builder
	b.WriteString("-- Artículos de stock generados desde la lista de precios del proveedor\n")
	b.WriteString("INSERT INTO stock_items (id, company_id, supplier_id, name, sku, unit, unit_price, par_level, shelf_life_days, is_perishable) VALUES\n")
	for i, r := range rows {
		price := "NULL"
		if r.UnitPrice != nil {
			price = r.UnitPrice.String()
		}
		shelf := "NULL"
		if r.ShelfLifeDays != nil {
			shelf = strconv.Itoa(*r.ShelfLifeDays)
		}
		sep := ","
		if i == len(rows)-1 {
			sep = ";"
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', '%s', '%s', %s, %s, %s, %t)%s\n",
			newID(), companyID, supplierID, escapeSQL(r.Name), escapeSQL(r.SKU), escapeSQL(r.Unit),
			price, r.ParLevel.String(), shelf, r.IsPerishable, sep)
	}
	if len(rows) == 0 {
		b.Reset()
		b.WriteString("-- Lista de precios sin artículos\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
