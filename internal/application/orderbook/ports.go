package orderbook

import (
	"context"
	"time"

	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con un repositorio de pedidos atado a ella.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(orders repository.OrderRepository) error) error
}

// OrderLineForDocument línea enriquecida con los datos del producto.
type OrderLineForDocument struct {
	entity.OrderItem
	ProductName string
	SKU         string
}

// OrderDocument pedido completo listo para renderizar.
type OrderDocument struct {
	Order    *entity.Order
	Customer *entity.Customer
	Lines    []OrderLineForDocument
}

// DayExportDocument pedidos de un día de entrega.
type DayExportDocument struct {
	Company      *entity.Company
	DeliveryDate time.Time
	Orders       []OrderDocument
}

// DeliveryNoteGenerator genera el albarán (PDF) de un pedido.
type DeliveryNoteGenerator interface {
	GenerateDeliveryNotePDF(ctx context.Context, company *entity.Company, doc OrderDocument) ([]byte, error)
}

// DayExporter genera la hoja de cálculo (XLSX) con los pedidos de un día.
type DayExporter interface {
	ExportDay(ctx context.Context, doc DayExportDocument) ([]byte, error)
}
