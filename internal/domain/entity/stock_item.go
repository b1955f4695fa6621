package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem artículo de stock comprado a un proveedor.
// ParLevel es el stock objetivo por local; LastCountQuantity es la última cantidad contada
// en cualquier local (copia desnormalizada, menos precisa que StockLevel).
type StockItem struct {
	ID                string
	CompanyID         string
	SupplierID        string
	Name              string
	SKU               string
	Unit              string           // case, kg, bottle...
	UnitPrice         *decimal.Decimal // nil = precio desconocido
	ParLevel          decimal.Decimal
	ReorderPoint      decimal.Decimal
	ShelfLifeDays     *int // nil = sin dato
	IsPerishable      bool
	AvgDailyUsage     decimal.Decimal
	LastCountQuantity decimal.Decimal
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// StockLevel cantidad actual de un artículo en un local.
type StockLevel struct {
	StockItemID string
	SiteID      string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
