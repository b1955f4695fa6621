package stock_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hospitality-ops-api/internal/domain/stock"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func price(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func days(n int) *int { return &n }

// ──────────────────────────────────────────────────────────────────────────────
// Ejemplo de referencia: mínimo £150, subtotal £112.50, faltan £37.50.
// A (£20, larga vida), B (£25, corta vida), C (£15, larga vida).
// Orden por vida útil: A, C, B. Autoselección: A+C = £35 (no llega), +B = £60.
// ──────────────────────────────────────────────────────────────────────────────

func TestAutoSelect_EjemploReferencia(t *testing.T) {
	candidates := []stock.Candidate{
		{StockItemID: "A", Name: "Arroz", UnitPrice: price("20"), ParLevel: dec("2"), CurrentQuantity: dec("1"), ShelfLifeDays: days(365)},
		{StockItemID: "B", Name: "Berros", UnitPrice: price("25"), ParLevel: dec("1"), CurrentQuantity: dec("0"), ShelfLifeDays: days(4), IsPerishable: true},
		{StockItemID: "C", Name: "Conservas", UnitPrice: price("15"), ParLevel: dec("3"), CurrentQuantity: dec("2"), ShelfLifeDays: days(180)},
	}

	shortfall := stock.Shortfall(dec("150"), dec("112.50"))
	require.True(t, shortfall.Equal(dec("37.50")))

	suggestions := stock.Suggest(candidates, nil, stock.Options{})
	require.Len(t, suggestions, 3)
	assert.Equal(t, []string{"A", "C", "B"}, ids(suggestions))

	sel := stock.AutoSelect(suggestions, shortfall)
	assert.Equal(t, []string{"A", "C", "B"}, ids(sel.Items))
	assert.True(t, sel.Total.Equal(dec("60")), "total %s", sel.Total)
	assert.True(t, sel.ReachesTarget)
}

func TestAutoSelect_SeDetieneAlAlcanzar(t *testing.T) {
	suggestions := []stock.Suggestion{
		{StockItemID: "1", LineTotal: dec("10")},
		{StockItemID: "2", LineTotal: dec("30")},
		{StockItemID: "3", LineTotal: dec("50")},
	}
	sel := stock.AutoSelect(suggestions, dec("40"))
	assert.Equal(t, []string{"1", "2"}, ids(sel.Items))
	assert.True(t, sel.ReachesTarget)
}

func TestAutoSelect_InalcanzableDevuelveTodo(t *testing.T) {
	suggestions := []stock.Suggestion{
		{StockItemID: "1", LineTotal: dec("10")},
		{StockItemID: "2", LineTotal: dec("5")},
	}
	sel := stock.AutoSelect(suggestions, dec("100"))
	assert.Equal(t, []string{"1", "2"}, ids(sel.Items))
	assert.False(t, sel.ReachesTarget)
	assert.True(t, sel.Total.Equal(dec("15")))
}

func TestAutoSelect_SinFaltanteNoSelecciona(t *testing.T) {
	sel := stock.AutoSelect([]stock.Suggestion{{StockItemID: "1", LineTotal: dec("10")}}, decimal.Zero)
	assert.Empty(t, sel.Items)
	assert.True(t, sel.ReachesTarget)
}

func TestShortfall_NuncaNegativo(t *testing.T) {
	assert.True(t, stock.Shortfall(dec("100"), dec("120")).IsZero())
}

func TestSuggest_ExcluyeArticulosDelPedido(t *testing.T) {
	candidates := []stock.Candidate{
		{StockItemID: "A", Name: "A", ParLevel: dec("5"), CurrentQuantity: dec("1")},
		{StockItemID: "B", Name: "B", ParLevel: dec("5"), CurrentQuantity: dec("1")},
	}
	exclude := stock.ExcludeSet([]string{"A", " ", ""})

	first := stock.Suggest(candidates, exclude, stock.Options{})
	second := stock.Suggest(candidates, exclude, stock.Options{})
	assert.Equal(t, []string{"B"}, ids(first))
	assert.Equal(t, ids(first), ids(second), "la exclusión es idempotente")
}

func TestSuggest_DescartaArticulosEnNivelPar(t *testing.T) {
	candidates := []stock.Candidate{
		{StockItemID: "lleno", ParLevel: dec("5"), CurrentQuantity: dec("5")},
		{StockItemID: "sobre", ParLevel: dec("5"), CurrentQuantity: dec("7")},
	}
	assert.Empty(t, stock.Suggest(candidates, nil, stock.Options{}))
}

func TestSuggest_CantidadMinimaUno(t *testing.T) {
	candidates := []stock.Candidate{
		{StockItemID: "frac", ParLevel: dec("2"), CurrentQuantity: dec("1.8"), UnitPrice: price("4")},
	}
	s := stock.Suggest(candidates, nil, stock.Options{})
	require.Len(t, s, 1)
	assert.True(t, s[0].SuggestedQuantity.Equal(dec("1")))
	assert.True(t, s[0].LineTotal.Equal(dec("4")))
}

func TestSuggest_SinPrecioSeMantieneConImporteCero(t *testing.T) {
	candidates := []stock.Candidate{
		{StockItemID: "sin-precio", Name: "Sal", ParLevel: dec("4"), CurrentQuantity: dec("1")},
	}
	s := stock.Suggest(candidates, nil, stock.Options{})
	require.Len(t, s, 1)
	assert.False(t, s[0].PriceKnown)
	assert.True(t, s[0].LineTotal.IsZero())
	assert.Contains(t, s[0].Reason, "sin precio")

	sel := stock.AutoSelect(s, dec("10"))
	assert.True(t, sel.Total.IsZero())
	assert.False(t, sel.ReachesTarget)
}

func TestSuggest_VidaUtilPorDefecto(t *testing.T) {
	candidates := []stock.Candidate{
		{StockItemID: "perecedero", Name: "Leche", ParLevel: dec("2"), IsPerishable: true},
		{StockItemID: "seco", Name: "Harina", ParLevel: dec("2")},
	}
	s := stock.Suggest(candidates, nil, stock.Options{DefaultShelfLifeDays: 10, NonPerishableShelfLifeDays: 400})
	require.Len(t, s, 2)
	assert.Equal(t, "seco", s[0].StockItemID)
	assert.Equal(t, 400, s[0].PriorityScore)
	assert.Equal(t, 10, s[1].PriorityScore)
}

func TestSuggest_DesempatePorDiasHastaAgotarse(t *testing.T) {
	candidates := []stock.Candidate{
		{StockItemID: "lento", Name: "a", ParLevel: dec("10"), CurrentQuantity: dec("8"), AvgDailyUsage: dec("1"), ShelfLifeDays: days(60)},
		{StockItemID: "sin-consumo", Name: "b", ParLevel: dec("10"), CurrentQuantity: dec("1"), ShelfLifeDays: days(60)},
		{StockItemID: "rapido", Name: "c", ParLevel: dec("10"), CurrentQuantity: dec("2"), AvgDailyUsage: dec("2"), ShelfLifeDays: days(60)},
	}
	s := stock.Suggest(candidates, nil, stock.Options{})
	assert.Equal(t, []string{"rapido", "lento", "sin-consumo"}, ids(s))
	require.NotNil(t, s[0].DaysToStockout)
	assert.True(t, s[0].DaysToStockout.Equal(dec("1")))
}

func TestSuggest_PuntoDePedidoDesempataAntesQueDias(t *testing.T) {
	candidates := []stock.Candidate{
		{StockItemID: "rapido", Name: "a", ParLevel: dec("10"), CurrentQuantity: dec("2"), AvgDailyUsage: dec("2"), ShelfLifeDays: days(60)},
		{StockItemID: "en-punto", Name: "b", ParLevel: dec("10"), ReorderPoint: dec("4"), CurrentQuantity: dec("4"), AvgDailyUsage: dec("1"), ShelfLifeDays: days(60)},
		{StockItemID: "sobre-punto", Name: "c", ParLevel: dec("10"), ReorderPoint: dec("3"), CurrentQuantity: dec("5"), ShelfLifeDays: days(60)},
		{StockItemID: "larga-vida", Name: "d", ParLevel: dec("10"), CurrentQuantity: dec("9"), ShelfLifeDays: days(365)},
	}
	s := stock.Suggest(candidates, nil, stock.Options{})

	assert.Equal(t, []string{"larga-vida", "en-punto", "rapido", "sobre-punto"}, ids(s),
		"la vida útil manda; el punto de pedido desempata antes que los días hasta agotarse")
	assert.True(t, s[1].BelowReorderPoint)
	assert.Contains(t, s[1].Reason, "punto de pedido")
	assert.False(t, s[2].BelowReorderPoint, "sin punto de pedido no se marca")
	assert.False(t, s[3].BelowReorderPoint)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades sobre entradas aleatorias
// ──────────────────────────────────────────────────────────────────────────────

func TestPropiedades_AutoSelectPrefijoMinimo(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		candidates := randomCandidates(rng, rng.Intn(12))
		exclude := map[string]struct{}{}
		for _, c := range candidates {
			if rng.Intn(4) == 0 {
				exclude[c.StockItemID] = struct{}{}
			}
		}
		shortfall := decimal.NewFromInt(int64(rng.Intn(300)))

		suggestions := stock.Suggest(candidates, exclude, stock.Options{})
		for _, s := range suggestions {
			_, excluded := exclude[s.StockItemID]
			assert.False(t, excluded, "un artículo del pedido nunca se sugiere")
			assert.True(t, s.SuggestedQuantity.GreaterThanOrEqual(decimal.NewFromInt(1)), "cantidad sugerida >= 1")
		}

		sel := stock.AutoSelect(suggestions, shortfall)
		require.LessOrEqual(t, len(sel.Items), len(suggestions))
		assert.Equal(t, ids(suggestions[:len(sel.Items)]), ids(sel.Items), "la selección es un prefijo")

		if !shortfall.IsPositive() {
			assert.Empty(t, sel.Items)
			continue
		}
		if sel.ReachesTarget {
			assert.True(t, sel.Total.GreaterThanOrEqual(shortfall))
			prev := sel.Total.Sub(sel.Items[len(sel.Items)-1].LineTotal)
			assert.True(t, prev.LessThan(shortfall), "el prefijo es mínimo")
		} else {
			assert.Len(t, sel.Items, len(suggestions), "inalcanzable devuelve la lista completa")
		}
	}
}

func randomCandidates(rng *rand.Rand, n int) []stock.Candidate {
	out := make([]stock.Candidate, 0, n)
	for i := 0; i < n; i++ {
		c := stock.Candidate{
			StockItemID:     string(rune('a' + i)),
			Name:            string(rune('a' + i)),
			ParLevel:        decimal.NewFromInt(int64(rng.Intn(10))),
			CurrentQuantity: decimal.NewFromFloat(float64(rng.Intn(100)) / 10),
			IsPerishable:    rng.Intn(2) == 0,
		}
		if rng.Intn(5) > 0 {
			c.UnitPrice = price(decimal.NewFromInt(int64(rng.Intn(50))).String())
		}
		if rng.Intn(2) == 0 {
			c.ShelfLifeDays = days(rng.Intn(400))
		}
		out = append(out, c)
	}
	return out
}

func ids(s []stock.Suggestion) []string {
	out := make([]string, 0, len(s))
	for _, x := range s {
		out = append(out, x.StockItemID)
	}
	return out
}
