// Package stock contiene la heurística de relleno de pedidos a proveedor (servicio de dominio puro).
//
// Cuando un pedido no llega al mínimo del proveedor se proponen artículos del mismo proveedor
// que están bajo su nivel par. Se prefieren los de vida útil larga porque el exceso de stock
// de esos artículos no se convierte en merma.
package stock

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Valores por defecto de vida útil cuando el artículo no la tiene informada.
const (
	DefaultShelfLifeDays       = 30
	NonPerishableShelfLifeDays = 365
)

// Candidate artículo candidato tal como sale del repositorio.
type Candidate struct {
	StockItemID     string
	Name            string
	Unit            string
	UnitPrice       *decimal.Decimal // nil = sin precio
	ParLevel        decimal.Decimal
	ReorderPoint    decimal.Decimal // 0 = sin punto de pedido
	CurrentQuantity decimal.Decimal
	ShelfLifeDays   *int
	IsPerishable    bool
	AvgDailyUsage   decimal.Decimal
}

// Suggestion artículo propuesto para rellenar el pedido.
type Suggestion struct {
	StockItemID       string
	Name              string
	Unit              string
	SuggestedQuantity decimal.Decimal
	UnitPrice         decimal.Decimal // 0 si el precio es desconocido
	PriceKnown        bool
	LineTotal         decimal.Decimal
	PriorityScore     int
	BelowReorderPoint bool
	DaysToStockout    *decimal.Decimal // nil si no hay consumo medio
	Reason            string
}

// Options parámetros de puntuación.
type Options struct {
	DefaultShelfLifeDays       int
	NonPerishableShelfLifeDays int
}

func (o Options) withDefaults() Options {
	if o.DefaultShelfLifeDays <= 0 {
		o.DefaultShelfLifeDays = DefaultShelfLifeDays
	}
	if o.NonPerishableShelfLifeDays <= 0 {
		o.NonPerishableShelfLifeDays = NonPerishableShelfLifeDays
	}
	return o
}

// Selection resultado de la autoselección.
type Selection struct {
	Items         []Suggestion
	Total         decimal.Decimal
	ReachesTarget bool
}

// Shortfall importe que falta para llegar al mínimo. Nunca negativo.
func Shortfall(minimum, subtotal decimal.Decimal) decimal.Decimal {
	gap := minimum.Sub(subtotal)
	if gap.IsNegative() {
		return decimal.Zero
	}
	return gap
}

// Suggest puntúa y ordena los candidatos.
// Se descartan los excluidos (ya presentes en el pedido) y los que están en o sobre su nivel par.
// Orden: mayor vida útil, luego los que están en o bajo su punto de pedido,
// luego menos días hasta agotarse (desconocido al final), luego nombre.
func Suggest(candidates []Candidate, exclude map[string]struct{}, opts Options) []Suggestion {
	opts = opts.withDefaults()
	out := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		if _, skip := exclude[c.StockItemID]; skip {
			continue
		}
		deficit := c.ParLevel.Sub(c.CurrentQuantity)
		if !deficit.IsPositive() {
			continue
		}
		out = append(out, score(c, deficit, opts))
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.PriorityScore != b.PriorityScore {
			return a.PriorityScore > b.PriorityScore
		}
		if a.BelowReorderPoint != b.BelowReorderPoint {
			return a.BelowReorderPoint
		}
		switch {
		case a.DaysToStockout != nil && b.DaysToStockout != nil:
			if !a.DaysToStockout.Equal(*b.DaysToStockout) {
				return a.DaysToStockout.LessThan(*b.DaysToStockout)
			}
		case a.DaysToStockout != nil:
			return true
		case b.DaysToStockout != nil:
			return false
		}
		return a.Name < b.Name
	})
	return out
}

func score(c Candidate, deficit decimal.Decimal, opts Options) Suggestion {
	qty := deficit.Ceil()
	if qty.LessThan(decimal.NewFromInt(1)) {
		qty = decimal.NewFromInt(1)
	}

	shelfLife := opts.DefaultShelfLifeDays
	shelfLifeKnown := c.ShelfLifeDays != nil && *c.ShelfLifeDays > 0
	switch {
	case shelfLifeKnown:
		shelfLife = *c.ShelfLifeDays
	case !c.IsPerishable:
		shelfLife = opts.NonPerishableShelfLifeDays
	}

	s := Suggestion{
		StockItemID:       c.StockItemID,
		Name:              c.Name,
		Unit:              c.Unit,
		SuggestedQuantity: qty,
		UnitPrice:         decimal.Zero,
		LineTotal:         decimal.Zero,
		PriorityScore:     shelfLife,
		BelowReorderPoint: c.ReorderPoint.IsPositive() && c.CurrentQuantity.LessThanOrEqual(c.ReorderPoint),
	}
	if c.UnitPrice != nil && !c.UnitPrice.IsNegative() {
		s.UnitPrice = *c.UnitPrice
		s.PriceKnown = true
		s.LineTotal = qty.Mul(*c.UnitPrice).Round(2)
	}
	if c.AvgDailyUsage.IsPositive() {
		days := c.CurrentQuantity.Div(c.AvgDailyUsage).Round(1)
		if days.IsNegative() {
			days = decimal.Zero
		}
		s.DaysToStockout = &days
	}

	reasons := []string{fmt.Sprintf("bajo nivel par (%s de %s %s)", c.CurrentQuantity.String(), c.ParLevel.String(), c.Unit)}
	switch {
	case shelfLifeKnown:
		reasons = append(reasons, fmt.Sprintf("vida útil %d días", shelfLife))
	case !c.IsPerishable:
		reasons = append(reasons, "no perecedero")
	default:
		reasons = append(reasons, "vida útil no informada")
	}
	if s.BelowReorderPoint {
		reasons = append(reasons, fmt.Sprintf("en punto de pedido (%s)", c.ReorderPoint.String()))
	}
	if s.DaysToStockout != nil {
		reasons = append(reasons, fmt.Sprintf("se agota en %s días", s.DaysToStockout.String()))
	}
	if !s.PriceKnown {
		reasons = append(reasons, "sin precio")
	}
	s.Reason = strings.TrimSpace(strings.Join(reasons, "; "))
	return s
}

// AutoSelect toma el prefijo mínimo (en orden de prioridad) cuya suma de importes
// alcanza shortfall. Si no se alcanza, devuelve la lista completa con ReachesTarget=false.
// Un shortfall <= 0 no necesita relleno y devuelve una selección vacía.
func AutoSelect(suggestions []Suggestion, shortfall decimal.Decimal) Selection {
	sel := Selection{Items: []Suggestion{}, Total: decimal.Zero}
	if !shortfall.IsPositive() {
		sel.ReachesTarget = true
		return sel
	}
	for _, s := range suggestions {
		sel.Items = append(sel.Items, s)
		sel.Total = sel.Total.Add(s.LineTotal)
		if sel.Total.GreaterThanOrEqual(shortfall) {
			sel.ReachesTarget = true
			return sel
		}
	}
	return sel
}

// ExcludeSet construye el conjunto de exclusión a partir de IDs (ignora vacíos).
func ExcludeSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}
