package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido a proveedor.
const (
	PurchaseOrderStatusDraft     = "draft"
	PurchaseOrderStatusSubmitted = "submitted"
	PurchaseOrderStatusCancelled = "cancelled"
)

// PurchaseOrder pedido de stock a un proveedor para un local.
// MinOrderValue se copia del proveedor al crear el borrador.
type PurchaseOrder struct {
	ID            string
	CompanyID     string
	SupplierID    string
	SiteID        string
	Status        string
	Subtotal      decimal.Decimal
	MinOrderValue decimal.Decimal
	Notes         string
	DocumentKey   string // clave del PDF en el almacenamiento de documentos
	CreatedBy     string
	SubmittedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PurchaseOrderLine línea de pedido a proveedor.
type PurchaseOrderLine struct {
	ID              string
	PurchaseOrderID string
	StockItemID     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	LineTotal       decimal.Decimal
}

// MeetsMinimum informa si el subtotal alcanza el mínimo del proveedor.
func (po *PurchaseOrder) MeetsMinimum() bool {
	return po.Subtotal.GreaterThanOrEqual(po.MinOrderValue)
}
