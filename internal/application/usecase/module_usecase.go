package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/hospitality-ops-api/internal/domain"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/repository"
)

var knownModules = map[string]struct{}{
	entity.ModuleStock:       {},
	entity.ModuleOrderBook:   {},
	entity.ModuleCompliance:  {},
	entity.ModuleHR:          {},
	entity.ModuleAssets:      {},
	entity.ModuleRecruitment: {},
}

// ModuleService decide qué módulos SaaS (stock, order_book...) tiene contratados una empresa.
type ModuleService struct {
	companyRepo repository.CompanyRepository
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(companyRepo repository.CompanyRepository) *ModuleService {
	return &ModuleService{companyRepo: companyRepo}
}

// HasActiveModule informa si la empresa tiene el módulo activo y sin vencer.
// Un módulo desconocido o no contratado devuelve false sin error; el error queda para fallos de infraestructura.
func (s *ModuleService) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	if companyID == "" {
		return false, fmt.Errorf("module: companyID es obligatorio")
	}
	if _, ok := knownModules[moduleName]; !ok {
		return false, nil
	}
	return s.companyRepo.HasActiveModule(ctx, companyID, moduleName)
}

// Activate activa módulos para una empresa existente.
func (s *ModuleService) Activate(ctx context.Context, companyID string, modules []string) error {
	if len(modules) == 0 {
		return fmt.Errorf("%w: modules no puede estar vacío", domain.ErrInvalidInput)
	}
	for _, m := range modules {
		if _, ok := knownModules[m]; !ok {
			return fmt.Errorf("%w: módulo desconocido %q", domain.ErrInvalidInput, m)
		}
	}
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	return s.companyRepo.ActivateModules(ctx, companyID, dedupe(modules))
}
