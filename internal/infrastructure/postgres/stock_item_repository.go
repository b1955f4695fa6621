package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/hospitality-ops-api/internal/domain"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/repository"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/stock"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo artículos de stock y sus niveles por local.
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, company_id, supplier_id, name, sku, unit, unit_price, par_level, reorder_point,
	shelf_life_days, is_perishable, avg_daily_usage, last_count_quantity, is_active, created_at, updated_at`

func (r *StockItemRepo) Create(ctx context.Context, it *entity.StockItem) error {
	query := `INSERT INTO stock_items (` + stockItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.CompanyID, it.SupplierID, it.Name, it.SKU, it.Unit, it.UnitPrice, it.ParLevel, it.ReorderPoint,
		it.ShelfLifeDays, it.IsPerishable, it.AvgDailyUsage, it.LastCountQuantity, it.IsActive, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, it.SupplierID)
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *StockItemRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	it, err := scanStockItem(r.q.QueryRow(ctx, `SELECT `+stockItemColumns+` FROM stock_items WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return it, nil
}

// ListByCompany lista artículos; supplierID vacío no filtra.
func (r *StockItemRepo) ListByCompany(ctx context.Context, companyID, supplierID string, limit, offset int) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items
		WHERE company_id = $1 AND ($2::uuid IS NULL OR supplier_id = $2::uuid)
		ORDER BY name LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, nullIfEmpty(supplierID), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockItem
	for rows.Next() {
		it, err := scanStockItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var it entity.StockItem
	err := row.Scan(&it.ID, &it.CompanyID, &it.SupplierID, &it.Name, &it.SKU, &it.Unit, &it.UnitPrice, &it.ParLevel,
		&it.ReorderPoint, &it.ShelfLifeDays, &it.IsPerishable, &it.AvgDailyUsage, &it.LastCountQuantity, &it.IsActive,
		&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, err
		}
		return nil, fmt.Errorf("scan stock item: %w", err)
	}
	return &it, nil
}

// UpsertLevel registra el conteo en el local y copia la cantidad a last_count_quantity, en una transacción.
func (r *StockItemRepo) UpsertLevel(ctx context.Context, level *entity.StockLevel) error {
	return pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		const upsert = `
			INSERT INTO stock_levels (stock_item_id, site_id, quantity, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (stock_item_id, site_id) DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
		if _, err := tx.Exec(ctx, upsert, level.StockItemID, level.SiteID, level.Quantity, level.UpdatedAt); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: artículo o local inexistente", domain.ErrNotFound)
			}
			return fmt.Errorf("upsert stock level: %w", err)
		}
		const touch = `UPDATE stock_items SET last_count_quantity = $2, updated_at = $3 WHERE id = $1`
		if _, err := tx.Exec(ctx, touch, level.StockItemID, level.Quantity, level.UpdatedAt); err != nil {
			return fmt.Errorf("update last count: %w", err)
		}
		return nil
	})
}

// ListPaddingCandidates artículos activos del proveedor bajo nivel par según stock_levels.
// Con siteID vacío la cantidad actual es la suma de todos los locales.
func (r *StockItemRepo) ListPaddingCandidates(ctx context.Context, companyID, supplierID, siteID string) ([]stock.Candidate, error) {
	const query = `
		WITH levels AS (
			SELECT stock_item_id, SUM(quantity) AS quantity
			  FROM stock_levels
			 WHERE $3::uuid IS NULL OR site_id = $3::uuid
			 GROUP BY stock_item_id
		)
		SELECT si.id, si.name, si.unit, si.unit_price, si.par_level, si.reorder_point, COALESCE(l.quantity, 0),
		       si.shelf_life_days, si.is_perishable, si.avg_daily_usage
		  FROM stock_items si
		  LEFT JOIN levels l ON l.stock_item_id = si.id
		 WHERE si.company_id = $1 AND si.supplier_id = $2 AND si.is_active
		   AND COALESCE(l.quantity, 0) < si.par_level`
	return r.queryCandidates(ctx, query, companyID, supplierID, nullIfEmpty(siteID))
}

// ListPaddingCandidatesFallback usa solo stock_items.last_count_quantity.
func (r *StockItemRepo) ListPaddingCandidatesFallback(ctx context.Context, companyID, supplierID string) ([]stock.Candidate, error) {
	const query = `
		SELECT id, name, unit, unit_price, par_level, reorder_point, last_count_quantity,
		       shelf_life_days, is_perishable, avg_daily_usage
		  FROM stock_items
		 WHERE company_id = $1 AND supplier_id = $2 AND is_active
		   AND last_count_quantity < par_level`
	return r.queryCandidates(ctx, query, companyID, supplierID)
}

func (r *StockItemRepo) queryCandidates(ctx context.Context, query string, args ...any) ([]stock.Candidate, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list padding candidates: %w", err)
	}
	defer rows.Close()

	var out []stock.Candidate
	for rows.Next() {
		var c stock.Candidate
		if err := rows.Scan(&c.StockItemID, &c.Name, &c.Unit, &c.UnitPrice, &c.ParLevel, &c.ReorderPoint, &c.CurrentQuantity,
			&c.ShelfLifeDays, &c.IsPerishable, &c.AvgDailyUsage); err != nil {
			return nil, fmt.Errorf("scan padding candidate: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
