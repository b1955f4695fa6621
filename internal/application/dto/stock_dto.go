package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Email         string          `json:"email" validate:"omitempty,email"`
	Phone         string          `json:"phone" validate:"max=50"`
	MinOrderValue decimal.Decimal `json:"min_order_value"`
	LeadTimeDays  int             `json:"lead_time_days" validate:"min=0,max=60"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor (campos opcionales).
type UpdateSupplierRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Email         *string          `json:"email" validate:"omitempty,email"`
	Phone         *string          `json:"phone" validate:"omitempty,max=50"`
	MinOrderValue *decimal.Decimal `json:"min_order_value"`
	LeadTimeDays  *int             `json:"lead_time_days" validate:"omitempty,min=0,max=60"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	MinOrderValue decimal.Decimal `json:"min_order_value"`
	LeadTimeDays  int             `json:"lead_time_days"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateStockItemRequest entrada para crear un artículo de stock.
type CreateStockItemRequest struct {
	SupplierID    string           `json:"supplier_id" validate:"required,uuid"`
	Name          string           `json:"name" validate:"required,min=1,max=200"`
	SKU           string           `json:"sku" validate:"max=100"`
	Unit          string           `json:"unit" validate:"required,max=30"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	ParLevel      decimal.Decimal  `json:"par_level"`
	ReorderPoint  decimal.Decimal  `json:"reorder_point"`
	ShelfLifeDays *int             `json:"shelf_life_days" validate:"omitempty,min=1,max=3650"`
	IsPerishable  bool             `json:"is_perishable"`
	AvgDailyUsage decimal.Decimal  `json:"avg_daily_usage"`
}

// StockItemResponse salida de un artículo de stock.
type StockItemResponse struct {
	ID                string           `json:"id"`
	SupplierID        string           `json:"supplier_id"`
	Name              string           `json:"name"`
	SKU               string           `json:"sku"`
	Unit              string           `json:"unit"`
	UnitPrice         *decimal.Decimal `json:"unit_price"`
	ParLevel          decimal.Decimal  `json:"par_level"`
	ReorderPoint      decimal.Decimal  `json:"reorder_point"`
	ShelfLifeDays     *int             `json:"shelf_life_days"`
	IsPerishable      bool             `json:"is_perishable"`
	AvgDailyUsage     decimal.Decimal  `json:"avg_daily_usage"`
	LastCountQuantity decimal.Decimal  `json:"last_count_quantity"`
	IsActive          bool             `json:"is_active"`
}

// RecordStockCountRequest body para POST /api/stock/levels.
type RecordStockCountRequest struct {
	StockItemID string          `json:"stock_item_id" validate:"required,uuid"`
	SiteID      string          `json:"site_id" validate:"required,uuid"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// PaddingRequest parámetros de GET /api/stock/suppliers/:id/padding-suggestions.
// Si Shortfall viene informado se usa tal cual; si no, se calcula como mínimo del proveedor − Subtotal.
type PaddingRequest struct {
	SupplierID string
	SiteID     string
	Subtotal   decimal.Decimal
	Shortfall  *decimal.Decimal
	ExcludeIDs []string
}

// PaddingSuggestionDTO artículo propuesto para alcanzar el mínimo del proveedor.
type PaddingSuggestionDTO struct {
	StockItemID       string           `json:"stock_item_id"`
	Name              string           `json:"name"`
	Unit              string           `json:"unit"`
	SuggestedQuantity decimal.Decimal  `json:"suggested_quantity"` // siempre >= 1
	UnitPrice         *decimal.Decimal `json:"unit_price"`         // null si desconocido
	LineTotal         decimal.Decimal  `json:"line_total"`
	PriorityScore     int              `json:"priority_score"` // días de vida útil
	BelowReorderPoint bool             `json:"below_reorder_point"`
	DaysToStockout    *decimal.Decimal `json:"days_to_stockout,omitempty"`
	Reason            string           `json:"reason"`
	AutoSelected      bool             `json:"auto_selected"`
}

// PaddingResponse respuesta del sugeridor de relleno.
type PaddingResponse struct {
	SupplierID        string                 `json:"supplier_id"`
	MinOrderValue     decimal.Decimal        `json:"min_order_value"`
	CurrentSubtotal   decimal.Decimal        `json:"current_subtotal"`
	Shortfall         decimal.Decimal        `json:"shortfall"`
	Suggestions       []PaddingSuggestionDTO `json:"suggestions"`
	AutoSelectedIDs   []string               `json:"auto_selected_ids"`
	AutoSelectedTotal decimal.Decimal        `json:"auto_selected_total"`
	ReachesMinimum    bool                   `json:"reaches_minimum"`
	Degraded          bool                   `json:"degraded"` // true si se usó la consulta de respaldo o falló
}

// PurchaseOrderLineRequest línea de pedido a proveedor.
type PurchaseOrderLineRequest struct {
	StockItemID string          `json:"stock_item_id" validate:"required,uuid"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// CreatePurchaseOrderRequest body para POST /api/stock/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id" validate:"required,uuid"`
	SiteID     string                     `json:"site_id" validate:"required,uuid"`
	Notes      string                     `json:"notes" validate:"max=2000"`
	Lines      []PurchaseOrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// PurchaseOrderLineResponse línea de pedido a proveedor.
type PurchaseOrderLineResponse struct {
	ID          string          `json:"id"`
	StockItemID string          `json:"stock_item_id"`
	Name        string          `json:"name,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// PurchaseOrderResponse pedido a proveedor con su estado respecto al mínimo.
type PurchaseOrderResponse struct {
	ID            string                      `json:"id"`
	SupplierID    string                      `json:"supplier_id"`
	SiteID        string                      `json:"site_id"`
	Status        string                      `json:"status"`
	Subtotal      decimal.Decimal             `json:"subtotal"`
	MinOrderValue decimal.Decimal             `json:"min_order_value"`
	Shortfall     decimal.Decimal             `json:"shortfall"`
	MeetsMinimum  bool                        `json:"meets_minimum"`
	Notes         string                      `json:"notes"`
	SubmittedAt   *time.Time                  `json:"submitted_at,omitempty"`
	DocumentURL   string                      `json:"document_url,omitempty"`
	Emailed       *bool                       `json:"emailed,omitempty"`
	Lines         []PurchaseOrderLineResponse `json:"lines"`
}
