package orderbook_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hospitality-ops-api/internal/application/dto"
	"github.com/jhoicas/hospitality-ops-api/internal/application/orderbook"
	"github.com/jhoicas/hospitality-ops-api/internal/domain"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
)

const (
	companyID  = "0b7f2c1e-1111-4e8a-9d3c-000000000001"
	customerID = "0b7f2c1e-2222-4e8a-9d3c-000000000002"
	bread      = "0b7f2c1e-3333-4e8a-9d3c-000000000003"
	butter     = "0b7f2c1e-4444-4e8a-9d3c-000000000004"
	retired    = "0b7f2c1e-5555-4e8a-9d3c-000000000005"
	unknown    = "0b7f2c1e-6666-4e8a-9d3c-000000000006"
	deliveryOn = "2026-03-14"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	orders   *memOrders
	exporter *captureExporter
	notes    *captureNotes
	uc       *orderbook.OrderUseCase
}

func newFixture() *fixture {
	f := &fixture{orders: newMemOrders(), exporter: &captureExporter{}, notes: &captureNotes{}}
	customers := memCustomers{customerID: {ID: customerID, CompanyID: companyID, Name: "Café Nero"}}
	products := memProducts{
		bread:   {ID: bread, CompanyID: companyID, Name: "Sourdough", SKU: "SD-1", UnitPrice: dec("3.20"), IsActive: true},
		butter:  {ID: butter, CompanyID: companyID, Name: "Butter", SKU: "BT-1", UnitPrice: dec("1.75"), IsActive: true},
		retired: {ID: retired, CompanyID: companyID, Name: "Rye", SKU: "RY-1", UnitPrice: dec("2"), IsActive: false},
	}
	companies := memCompanies{companyID: {ID: companyID, Name: "North Bakery"}}
	f.uc = orderbook.NewOrderUseCase(orderbook.OrderDeps{
		Orders:    f.orders,
		Customers: customers,
		Products:  products,
		Companies: companies,
		Tx:        memTx{orders: f.orders},
		Notes:     f.notes,
		Exporter:  f.exporter,
		Log:       zerolog.Nop(),
	})
	return f
}

func upsert(items ...dto.OrderItemRequest) dto.UpsertOrderRequest {
	return dto.UpsertOrderRequest{CustomerID: customerID, DeliveryDate: deliveryOn, Items: items}
}

func item(productID, qty string) dto.OrderItemRequest {
	return dto.OrderItemRequest{ProductID: productID, Quantity: dec(qty)}
}

func seedOrder(t *testing.T, f *fixture, id, status string, createdAt time.Time) {
	t.Helper()
	d, _ := time.Parse(entity.DeliveryDateLayout, deliveryOn)
	require.NoError(t, f.orders.Create(context.Background(), &entity.Order{
		ID: id, CompanyID: companyID, CustomerID: customerID, DeliveryDate: d, Status: status, CreatedAt: createdAt,
	}))
	require.NoError(t, f.orders.InsertItems(context.Background(), []*entity.OrderItem{
		{ID: id + "-item", OrderID: id, ProductID: bread, Quantity: dec("1"), UnitPrice: dec("3.20"), LineTotal: dec("3.20")},
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Upsert
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsert_CreaPedidoPendiente(t *testing.T) {
	f := newFixture()
	resp, err := f.uc.UpsertOrder(context.Background(), companyID, "user-1", upsert(item(bread, "10")))
	require.NoError(t, err)

	assert.True(t, resp.Created)
	assert.Equal(t, entity.OrderStatusPending, resp.Order.Status)
	assert.Equal(t, deliveryOn, resp.Order.DeliveryDate)
	require.Len(t, resp.Order.Items, 1)
	assert.True(t, resp.Order.Items[0].LineTotal.Equal(dec("32")))
	assert.True(t, resp.Order.Subtotal.Equal(dec("32")))
	assert.Empty(t, resp.SkippedItems)
}

func TestUpsert_DosVecesMismaClaveReemplazaLineas(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.uc.UpsertOrder(ctx, companyID, "user-1", upsert(item(bread, "10")))
	require.NoError(t, err)
	second, err := f.uc.UpsertOrder(ctx, companyID, "user-1", upsert(item(butter, "4")))
	require.NoError(t, err)

	assert.False(t, second.Created)
	assert.Equal(t, first.Order.ID, second.Order.ID)
	assert.Equal(t, 1, f.orders.count())

	got, err := f.uc.GetOrder(ctx, companyID, first.Order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1, "las líneas se reemplazan, no se mezclan")
	assert.Equal(t, butter, got.Items[0].ProductID)
	assert.True(t, got.Subtotal.Equal(dec("7")))
}

func TestUpsert_PrecioExplicitoPrevalece(t *testing.T) {
	f := newFixture()
	price := dec("2.90")
	resp, err := f.uc.UpsertOrder(context.Background(), companyID, "u", upsert(dto.OrderItemRequest{ProductID: bread, Quantity: dec("3"), UnitPrice: &price}))
	require.NoError(t, err)
	assert.True(t, resp.Order.Items[0].UnitPrice.Equal(price))
	assert.True(t, resp.Order.Subtotal.Equal(dec("8.70")))
}

func TestUpsert_DescartaLineasInvalidas(t *testing.T) {
	f := newFixture()
	resp, err := f.uc.UpsertOrder(context.Background(), companyID, "u", upsert(
		item(bread, "2"),
		item("", "1"),
		item("no-es-uuid", "1"),
		item(unknown, "1"),
		item(retired, "1"),
		item(butter, "0"),
	))
	require.NoError(t, err)
	require.Len(t, resp.Order.Items, 1)

	indexes := make([]int, 0, len(resp.SkippedItems))
	for _, s := range resp.SkippedItems {
		indexes = append(indexes, s.Index)
		assert.NotEmpty(t, s.Reason)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, indexes)
}

func TestUpsert_SinLineasValidasNoEscribe(t *testing.T) {
	f := newFixture()
	_, err := f.uc.UpsertOrder(context.Background(), companyID, "u", upsert(item(unknown, "1")))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.orders.count())
}

func TestUpsert_EstadosNoEditables(t *testing.T) {
	for _, status := range []string{
		entity.OrderStatusDispatched, entity.OrderStatusDelivered, entity.OrderStatusClosed, entity.OrderStatusCancelled,
	} {
		t.Run(status, func(t *testing.T) {
			f := newFixture()
			seedOrder(t, f, "existing", status, time.Now())

			_, err := f.uc.UpsertOrder(context.Background(), companyID, "u", upsert(item(butter, "1")))
			require.ErrorIs(t, err, domain.ErrOrderNotEditable)
			assert.Contains(t, err.Error(), status)

			items, _ := f.orders.GetItems(context.Background(), "existing")
			assert.Len(t, items, 1, "las líneas del pedido no se tocan")
		})
	}
}

func TestUpsert_NoEditableConservaDuplicadosAnteriores(t *testing.T) {
	f := newFixture()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seedOrder(t, f, "older-pending", entity.OrderStatusPending, base)
	seedOrder(t, f, "newest-closed", entity.OrderStatusClosed, base.Add(time.Hour))

	_, err := f.uc.UpsertOrder(context.Background(), companyID, "u", upsert(item(butter, "3")))
	require.ErrorIs(t, err, domain.ErrOrderNotEditable)

	assert.Equal(t, 2, f.orders.count(), "una petición rechazada no borra duplicados")
	assert.Empty(t, f.orders.deletedOrders)
	for _, id := range []string{"older-pending", "newest-closed"} {
		items, _ := f.orders.GetItems(context.Background(), id)
		assert.Len(t, items, 1, id)
	}
}

func TestUpsert_EstadosEditables(t *testing.T) {
	for _, status := range []string{entity.OrderStatusDraft, entity.OrderStatusPending, entity.OrderStatusConfirmed} {
		t.Run(status, func(t *testing.T) {
			f := newFixture()
			seedOrder(t, f, "existing", status, time.Now())

			resp, err := f.uc.UpsertOrder(context.Background(), companyID, "u", upsert(item(butter, "1")))
			require.NoError(t, err)
			assert.Equal(t, "existing", resp.Order.ID)
			assert.Equal(t, status, resp.Order.Status, "sin status en la petición se conserva el actual")
		})
	}
}

func TestUpsert_EliminaDuplicadosConservaElMasReciente(t *testing.T) {
	f := newFixture()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seedOrder(t, f, "old", entity.OrderStatusPending, base)
	seedOrder(t, f, "older", entity.OrderStatusPending, base.Add(-time.Hour))
	seedOrder(t, f, "newest", entity.OrderStatusPending, base.Add(time.Hour))

	resp, err := f.uc.UpsertOrder(context.Background(), companyID, "u", upsert(item(butter, "2")))
	require.NoError(t, err)

	assert.Equal(t, "newest", resp.Order.ID)
	assert.Equal(t, 2, resp.DuplicatesRemoved)
	assert.Equal(t, 1, f.orders.count())
	left, _ := f.orders.GetItems(context.Background(), "old")
	assert.Empty(t, left, "las líneas del duplicado se borran")
}

func TestUpsert_FalloDeLineasBorraSoloPedidoNuevo(t *testing.T) {
	f := newFixture()
	f.orders.failInsert = errors.New("insert order_items: connection reset")

	_, err := f.uc.UpsertOrder(context.Background(), companyID, "u", upsert(item(bread, "1")))
	require.Error(t, err)
	assert.Zero(t, f.orders.count(), "el pedido creado en esta llamada se deshace")
	assert.Len(t, f.orders.deletedOrders, 1)
}

func TestUpsert_FalloDeLineasConservaPedidoExistente(t *testing.T) {
	f := newFixture()
	seedOrder(t, f, "existing", entity.OrderStatusPending, time.Now())
	f.orders.failInsert = errors.New("insert order_items: connection reset")

	_, err := f.uc.UpsertOrder(context.Background(), companyID, "u", upsert(item(bread, "1")))
	require.Error(t, err)
	assert.Equal(t, 1, f.orders.count())
	assert.Empty(t, f.orders.deletedOrders)
}

func TestUpsert_ValidacionesDeCabecera(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	in := upsert(item(bread, "1"))
	in.DeliveryDate = "14/03/2026"
	_, err := f.uc.UpsertOrder(ctx, companyID, "u", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = upsert(item(bread, "1"))
	in.Status = entity.OrderStatusClosed
	_, err = f.uc.UpsertOrder(ctx, companyID, "u", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = upsert(item(bread, "1"))
	in.CustomerID = unknown
	_, err = f.uc.UpsertOrder(ctx, companyID, "u", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado, listado y documentos
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_Transiciones(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedOrder(t, f, "o1", entity.OrderStatusConfirmed, time.Now())

	resp, err := f.uc.UpdateStatus(ctx, companyID, "o1", dto.UpdateOrderStatusRequest{Status: entity.OrderStatusDispatched})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDispatched, resp.Status)

	_, err = f.uc.UpdateStatus(ctx, companyID, "o1", dto.UpdateOrderStatusRequest{Status: entity.OrderStatusPending})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.UpdateStatus(ctx, "otra-empresa", "o1", dto.UpdateOrderStatusRequest{Status: entity.OrderStatusDelivered})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListOrders_FiltraPorFecha(t *testing.T) {
	f := newFixture()
	seedOrder(t, f, "o1", entity.OrderStatusPending, time.Now())

	resp, err := f.uc.ListOrders(context.Background(), companyID, dto.ListOrdersRequest{DeliveryDate: deliveryOn})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Café Nero", resp.Items[0].CustomerName)
	assert.Equal(t, "Sourdough", resp.Items[0].Items[0].ProductName)

	resp, err = f.uc.ListOrders(context.Background(), companyID, dto.ListOrdersRequest{DeliveryDate: "2026-03-15"})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestExportDay_ExcluyeCancelados(t *testing.T) {
	f := newFixture()
	seedOrder(t, f, "o1", entity.OrderStatusPending, time.Now())
	d, _ := time.Parse(entity.DeliveryDateLayout, deliveryOn)
	require.NoError(t, f.orders.Create(context.Background(), &entity.Order{
		ID: "o2", CompanyID: companyID, CustomerID: customerID, DeliveryDate: d, Status: entity.OrderStatusCancelled,
	}))

	b, name, err := f.uc.ExportDay(context.Background(), companyID, deliveryOn)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), b)
	assert.Equal(t, "pedidos_2026-03-14.xlsx", name)
	require.Len(t, f.exporter.doc.Orders, 1)
	assert.Equal(t, "o1", f.exporter.doc.Orders[0].Order.ID)
}

func TestDeliveryNote_PedidoCancelado(t *testing.T) {
	f := newFixture()
	seedOrder(t, f, "o1", entity.OrderStatusCancelled, time.Now())

	_, _, err := f.uc.DeliveryNote(context.Background(), companyID, "o1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}
