package repository

import (
	"context"

	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)

	// HasActiveModule informa si la empresa tiene el módulo activo y sin vencer.
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
	// ActivateModules activa (o reactiva) módulos para la empresa.
	ActivateModules(ctx context.Context, companyID string, modules []string) error
}

// SiteRepository puerto de persistencia para los locales de una empresa.
type SiteRepository interface {
	Create(ctx context.Context, site *entity.Site) error
	GetByID(ctx context.Context, id string) (*entity.Site, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Site, error)
}
