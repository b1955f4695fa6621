package entity

import "time"

// Company representa una organización/tenant del sistema (grupo de restaurantes, hotel, pub...).
type Company struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Módulos SaaS disponibles (deben coincidir con el CHECK de la tabla company_modules).
const (
	ModuleStock       = "stock"
	ModuleOrderBook   = "order_book"
	ModuleCompliance  = "compliance"
	ModuleHR          = "hr"
	ModuleAssets      = "assets"
	ModuleRecruitment = "recruitment"
)

// CompanyModule representa la activación de un módulo SaaS en una empresa.
type CompanyModule struct {
	ID          string
	CompanyID   string
	ModuleName  string // ver constantes Module*
	IsActive    bool
	ActivatedAt time.Time
	ExpiresAt   *time.Time // nil = sin vencimiento
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Site es un local físico de la empresa (cocina, bar, hotel) con su propio stock.
type Site struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
