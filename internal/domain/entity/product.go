package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product variante de producto que la empresa vende a sus clientes mayoristas (libro de pedidos).
type Product struct {
	ID        string
	CompanyID string
	Name      string
	SKU       string
	UnitPrice decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
