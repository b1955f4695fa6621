package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/hospitality-ops-api/internal/application/dto"
	"github.com/jhoicas/hospitality-ops-api/internal/domain"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas y sus locales.
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	siteRepo repository.SiteRepository
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, siteRepo repository.SiteRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, siteRepo: siteRepo}
}

// Create crea una nueva empresa y activa los módulos solicitados.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     strings.TrimSpace(in.Email),
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if company.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	if len(in.Modules) > 0 {
		if err := uc.repo.ActivateModules(ctx, company.ID, dedupe(in.Modules)); err != nil {
			return nil, fmt.Errorf("activar módulos: %w", err)
		}
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

// List lista las empresas visibles para el usuario: solo la suya.
func (uc *CompanyUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.DefaultPage()
	items := make([]dto.CompanyResponse, 0, 1)
	if page.Offset == 0 {
		company, err := uc.repo.GetByID(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if company != nil {
			items = append(items, *entityToCompanyResponse(company))
		}
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// CreateSite crea un local de la empresa.
func (uc *CompanyUseCase) CreateSite(ctx context.Context, companyID string, in dto.CreateSiteRequest) (*dto.SiteResponse, error) {
	now := time.Now()
	site := &entity.Site{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(in.Name),
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.siteRepo.Create(ctx, site); err != nil {
		return nil, err
	}
	return toSiteResponse(site), nil
}

// ListSites lista los locales de la empresa.
func (uc *CompanyUseCase) ListSites(ctx context.Context, companyID string) ([]dto.SiteResponse, error) {
	sites, err := uc.siteRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SiteResponse, 0, len(sites))
	for _, s := range sites {
		out = append(out, *toSiteResponse(s))
	}
	return out, nil
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toSiteResponse(s *entity.Site) *dto.SiteResponse {
	return &dto.SiteResponse{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		Name:      s.Name,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
	}
}
