package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hospitality-ops-api/internal/application/orderbook"
	appstock "github.com/jhoicas/hospitality-ops-api/internal/application/stock"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
)

func company() *entity.Company {
	return &entity.Company{ID: "c1", Name: "The Crown Group", Address: "1 High St", Email: "ops@crown.test"}
}

func TestGenerateDeliveryNotePDF(t *testing.T) {
	g := NewMarotoPDFGenerator()
	doc := orderbook.OrderDocument{
		Order: &entity.Order{
			ID: "8f1c2a3b-0000-0000-0000-000000000000", DeliveryDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			Subtotal: decimal.RequireFromString("42.50"), Notes: "Puerta trasera",
		},
		Customer: &entity.Customer{Name: "Café Sol"},
		Lines: []orderbook.OrderLineForDocument{{
			OrderItem:   entity.OrderItem{Quantity: decimal.NewFromInt(5), UnitPrice: decimal.RequireFromString("8.50"), LineTotal: decimal.RequireFromString("42.50")},
			ProductName: "Pan de masa madre", SKU: "PAN-01",
		}},
	}

	out, err := g.GenerateDeliveryNotePDF(context.Background(), company(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateDeliveryNotePDF_Incompleto(t *testing.T) {
	_, err := NewMarotoPDFGenerator().GenerateDeliveryNotePDF(context.Background(), company(), orderbook.OrderDocument{})
	assert.Error(t, err)
}

func TestGeneratePurchaseOrderPDF(t *testing.T) {
	submitted := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	doc := appstock.PurchaseOrderDocument{
		Order: &entity.PurchaseOrder{
			ID: "abc12345-aaaa", Subtotal: decimal.RequireFromString("112.50"),
			MinOrderValue: decimal.NewFromInt(150), SubmittedAt: &submitted,
		},
		Company:  company(),
		Supplier: &entity.Supplier{Name: "Fresh Foods Ltd", Email: "orders@fresh.test"},
		Site:     &entity.Site{Name: "Cocina central"},
		Lines: []appstock.PurchaseOrderLineForPDF{{
			PurchaseOrderLine: entity.PurchaseOrderLine{Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("37.50"), LineTotal: decimal.RequireFromString("112.50")},
			Name:              "Aceite de oliva 5L", Unit: "case",
		}},
	}

	out, err := NewMarotoPDFGenerator().GeneratePurchaseOrderPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGeneratePurchaseOrderPDF_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMarotoPDFGenerator().GeneratePurchaseOrderPDF(ctx, appstock.PurchaseOrderDocument{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShortRef(t *testing.T) {
	assert.Equal(t, "8F1C2A3B", shortRef("8f1c2a3b-0000"))
	assert.Equal(t, "AB", shortRef("ab"))
}
