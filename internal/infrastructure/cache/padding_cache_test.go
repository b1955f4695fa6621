package cache

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainstock "github.com/jhoicas/hospitality-ops-api/internal/domain/stock"
)

func TestCandidateKey(t *testing.T) {
	assert.Equal(t, "padding:c1:s1:site9", candidateKey("c1", "s1", "site9"))
	assert.Equal(t, "padding:c1:s1:all", candidateKey("c1", "s1", ""))
}

func TestEncodeDecodeCandidates_ConservaNulos(t *testing.T) {
	price := decimal.RequireFromString("12.50")
	shelf := 90
	in := []domainstock.Candidate{
		{StockItemID: "a", Name: "Arroz", Unit: "kg", UnitPrice: &price, ParLevel: decimal.NewFromInt(4),
			ReorderPoint: decimal.NewFromInt(2), CurrentQuantity: decimal.RequireFromString("1.5"), ShelfLifeDays: &shelf, AvgDailyUsage: decimal.NewFromInt(1)},
		{StockItemID: "b", Name: "Leche", IsPerishable: true, ParLevel: decimal.NewFromInt(2)},
	}

	raw, err := encodeCandidates(in)
	require.NoError(t, err)
	out, err := decodeCandidates(raw)
	require.NoError(t, err)

	require.Len(t, out, 2)
	require.NotNil(t, out[0].UnitPrice)
	assert.True(t, out[0].UnitPrice.Equal(price))
	assert.Equal(t, 90, *out[0].ShelfLifeDays)
	assert.True(t, out[0].CurrentQuantity.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, out[0].ReorderPoint.Equal(decimal.NewFromInt(2)))
	assert.Nil(t, out[1].UnitPrice)
	assert.Nil(t, out[1].ShelfLifeDays)
	assert.True(t, out[1].IsPerishable)
}

func TestDecodeCandidates_Corrupto(t *testing.T) {
	_, err := decodeCandidates([]byte("{no-json"))
	assert.Error(t, err)
}
