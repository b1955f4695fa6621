package repository

import (
	"context"

	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia para pedidos a proveedor.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder, lines []*entity.PurchaseOrderLine) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetLines(ctx context.Context, purchaseOrderID string) ([]*entity.PurchaseOrderLine, error)
	Update(ctx context.Context, po *entity.PurchaseOrder) error
}
