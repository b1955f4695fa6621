package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/hospitality-ops-api/internal/domain"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	db Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(db Querier) *CompanyRepo {
	return &CompanyRepo{db: db}
}

const companyColumns = `id, name, address, phone, email, status, created_at, updated_at`

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		company.ID, company.Name, company.Address, company.Phone, company.Email, company.Status,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID. Devuelve nil, nil si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	var c entity.Company
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// HasActiveModule informa si la empresa tiene el módulo activo y sin vencer.
// Consulta directamente company_modules para una respuesta O(1) vía índice único.
func (r *CompanyRepo) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM company_modules
			 WHERE company_id  = $1
			   AND module_name = $2
			   AND is_active   = true
			   AND (expires_at IS NULL OR expires_at > now())
		)`
	var active bool
	if err := r.db.QueryRow(ctx, query, companyID, moduleName).Scan(&active); err != nil {
		return false, fmt.Errorf("check module %s: %w", moduleName, err)
	}
	return active, nil
}

// ActivateModules activa o reactiva módulos. Un módulo vencido se reactiva sin vencimiento.
func (r *CompanyRepo) ActivateModules(ctx context.Context, companyID string, modules []string) error {
	const query = `
		INSERT INTO company_modules (company_id, module_name, is_active, activated_at, expires_at)
		VALUES ($1, $2, true, now(), NULL)
		ON CONFLICT (company_id, module_name)
		DO UPDATE SET is_active = true, activated_at = now(), expires_at = NULL, updated_at = now()`
	for _, m := range modules {
		if _, err := r.db.Exec(ctx, query, companyID, m); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: empresa %s", domain.ErrNotFound, companyID)
			}
			return fmt.Errorf("activate module %s: %w", m, err)
		}
	}
	return nil
}

var _ repository.SiteRepository = (*SiteRepo)(nil)

// SiteRepo locales de una empresa.
type SiteRepo struct {
	db Querier
}

// NewSiteRepository construye el adaptador de persistencia para locales.
func NewSiteRepository(db Querier) *SiteRepo {
	return &SiteRepo{db: db}
}

// Create persiste un local.
func (r *SiteRepo) Create(ctx context.Context, site *entity.Site) error {
	const query = `
		INSERT INTO sites (id, company_id, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, site.ID, site.CompanyID, site.Name, site.Address, site.CreatedAt, site.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: empresa %s", domain.ErrNotFound, site.CompanyID)
		}
		return fmt.Errorf("insert site: %w", err)
	}
	return nil
}

// GetByID obtiene un local. Devuelve nil, nil si no existe.
func (r *SiteRepo) GetByID(ctx context.Context, id string) (*entity.Site, error) {
	const query = `SELECT id, company_id, name, address, created_at, updated_at FROM sites WHERE id = $1`
	var s entity.Site
	err := r.db.QueryRow(ctx, query, id).Scan(&s.ID, &s.CompanyID, &s.Name, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get site: %w", err)
	}
	return &s, nil
}

// ListByCompany lista los locales de la empresa por nombre.
func (r *SiteRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Site, error) {
	const query = `
		SELECT id, company_id, name, address, created_at, updated_at
		FROM sites WHERE company_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()

	var list []*entity.Site
	for rows.Next() {
		var s entity.Site
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
