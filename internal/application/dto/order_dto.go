package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea enviada por el cliente. UnitPrice nil = precio del producto.
type OrderItemRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// UpsertOrderRequest body para POST /api/order-book/orders.
// (customer_id, delivery_date) identifica el pedido: si existe se actualiza, si no se crea.
type UpsertOrderRequest struct {
	CustomerID   string             `json:"customer_id" validate:"required,uuid"`
	DeliveryDate string             `json:"delivery_date" validate:"required,datetime=2006-01-02"`
	Status       string             `json:"status" validate:"omitempty,oneof=draft pending confirmed"`
	Notes        string             `json:"notes" validate:"max=2000"`
	Items        []OrderItemRequest `json:"items" validate:"required,min=1"`
}

// SkippedItemDTO línea descartada por referencia de producto inválida.
type SkippedItemDTO struct {
	Index     int    `json:"index"`
	ProductID string `json:"product_id"`
	Reason    string `json:"reason"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderResponse pedido con sus líneas.
type OrderResponse struct {
	ID           string              `json:"id"`
	CustomerID   string              `json:"customer_id"`
	CustomerName string              `json:"customer_name,omitempty"`
	DeliveryDate string              `json:"delivery_date"`
	Status       string              `json:"status"`
	Notes        string              `json:"notes"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Items        []OrderItemResponse `json:"items"`
}

// UpsertOrderResponse resultado del upsert.
type UpsertOrderResponse struct {
	Order             OrderResponse    `json:"order"`
	Created           bool             `json:"created"`
	SkippedItems      []SkippedItemDTO `json:"skipped_items"`
	DuplicatesRemoved int              `json:"duplicates_removed"`
}

// ListOrdersRequest filtros de GET /api/order-book/orders.
type ListOrdersRequest struct {
	DeliveryDate string `query:"delivery_date" validate:"omitempty,datetime=2006-01-02"`
	CustomerID   string `query:"customer_id" validate:"omitempty,uuid"`
	Status       string `query:"status" validate:"omitempty,oneof=draft pending confirmed dispatched delivered closed cancelled"`
	PageRequest
}

// OrderListResponse lista de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// UpdateOrderStatusRequest body para PATCH /api/order-book/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft pending confirmed dispatched delivered closed cancelled"`
}
