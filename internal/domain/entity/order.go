package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido del libro de pedidos.
const (
	OrderStatusDraft      = "draft"
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusDispatched = "dispatched"
	OrderStatusDelivered  = "delivered"
	OrderStatusClosed     = "closed"
	OrderStatusCancelled  = "cancelled"
)

// DeliveryDateLayout formato de fecha de entrega en API y base de datos.
const DeliveryDateLayout = "2006-01-02"

// orderTransitions transiciones de estado permitidas. closed y cancelled son terminales.
var orderTransitions = map[string][]string{
	OrderStatusDraft:      {OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusPending:    {OrderStatusDraft, OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusPending, OrderStatusDispatched, OrderStatusCancelled},
	OrderStatusDispatched: {OrderStatusDelivered},
	OrderStatusDelivered:  {OrderStatusClosed},
}

// Order cabecera de pedido. La clave natural es (CompanyID, CustomerID, DeliveryDate).
type Order struct {
	ID           string
	CompanyID    string
	CustomerID   string
	DeliveryDate time.Time
	Status       string
	Notes        string
	Subtotal     decimal.Decimal
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrderItem línea de pedido.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// IsEditableOrderStatus informa si un pedido en ese estado admite cambios de líneas.
func IsEditableOrderStatus(status string) bool {
	switch status {
	case OrderStatusDraft, OrderStatusPending, OrderStatusConfirmed:
		return true
	}
	return false
}

// IsValidOrderStatus informa si el estado es conocido.
func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusDraft, OrderStatusPending, OrderStatusConfirmed, OrderStatusDispatched,
		OrderStatusDelivered, OrderStatusClosed, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionOrder informa si se permite pasar de from a to.
func CanTransitionOrder(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
