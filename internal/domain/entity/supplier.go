package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier proveedor de stock. MinOrderValue es el importe mínimo que acepta por pedido.
type Supplier struct {
	ID            string
	CompanyID     string
	Name          string
	Email         string
	Phone         string
	MinOrderValue decimal.Decimal
	LeadTimeDays  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
