package repository

import (
	"context"
	"time"

	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
)

// OrderFilter filtros de listado de pedidos. Campos vacíos no filtran.
type OrderFilter struct {
	DeliveryDate *time.Time
	CustomerID   string
	Status       string
	Limit        int
	Offset       int
}

// OrderRepository puerto de persistencia para pedidos y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id string) error

	// FindByNaturalKey devuelve los pedidos de (empresa, cliente, fecha), más reciente primero.
	// Más de uno indica pedidos duplicados.
	FindByNaturalKey(ctx context.Context, companyID, customerID string, deliveryDate time.Time) ([]*entity.Order, error)
	List(ctx context.Context, companyID string, filter OrderFilter) ([]*entity.Order, error)

	GetItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
	// GetItemsByOrderIDs líneas de varios pedidos agrupadas por OrderID (exportaciones).
	GetItemsByOrderIDs(ctx context.Context, orderIDs []string) (map[string][]*entity.OrderItem, error)
	DeleteItems(ctx context.Context, orderID string) error
	InsertItems(ctx context.Context, items []*entity.OrderItem) error
}
