package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/hospitality-ops-api/internal/domain"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo pedidos a proveedor y sus líneas.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseOrderColumns = `id, company_id, supplier_id, site_id, status, subtotal, min_order_value, notes,
	document_key, created_by, submitted_at, created_at, updated_at`

// Create persiste cabecera y líneas en una sola transacción.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder, lines []*entity.PurchaseOrderLine) error {
	return pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		query := `INSERT INTO purchase_orders (` + purchaseOrderColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
		_, err := tx.Exec(ctx, query,
			po.ID, po.CompanyID, po.SupplierID, po.SiteID, po.Status, po.Subtotal, po.MinOrderValue, po.Notes,
			po.DocumentKey, nullIfEmpty(po.CreatedBy), po.SubmittedAt, po.CreatedAt, po.UpdatedAt)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: proveedor o local inexistente", domain.ErrNotFound)
			}
			return fmt.Errorf("insert purchase order: %w", err)
		}
		const line = `
			INSERT INTO purchase_order_lines (id, purchase_order_id, stock_item_id, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6)`
		for _, l := range lines {
			if _, err := tx.Exec(ctx, line, l.ID, po.ID, l.StockItemID, l.Quantity, l.UnitPrice, l.LineTotal); err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("%w: artículo repetido en el pedido", domain.ErrInvalidInput)
				}
				return fmt.Errorf("insert purchase order line: %w", err)
			}
		}
		return nil
	})
}

// GetByID devuelve nil, nil si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	var createdBy *string
	err := r.q.QueryRow(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1`, id).Scan(
		&po.ID, &po.CompanyID, &po.SupplierID, &po.SiteID, &po.Status, &po.Subtotal, &po.MinOrderValue, &po.Notes,
		&po.DocumentKey, &createdBy, &po.SubmittedAt, &po.CreatedAt, &po.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if createdBy != nil {
		po.CreatedBy = *createdBy
	}
	return &po, nil
}

// GetLines líneas en orden de inserción.
func (r *PurchaseOrderRepo) GetLines(ctx context.Context, purchaseOrderID string) ([]*entity.PurchaseOrderLine, error) {
	const query = `
		SELECT id, purchase_order_id, stock_item_id, quantity, unit_price, line_total
		  FROM purchase_order_lines WHERE purchase_order_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, purchaseOrderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()

	var list []*entity.PurchaseOrderLine
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.PurchaseOrderID, &l.StockItemID, &l.Quantity, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Update actualiza estado, importes, documento y fecha de envío.
func (r *PurchaseOrderRepo) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	const query = `
		UPDATE purchase_orders
		   SET status = $2, subtotal = $3, notes = $4, document_key = $5, submitted_at = $6, updated_at = $7
		 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, po.ID, po.Status, po.Subtotal, po.Notes, po.DocumentKey, po.SubmittedAt, po.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
