package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/hospitality-ops-api/internal/domain"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos del libro de pedidos. Funciona con pool o dentro de una tx (ver TxRunner).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, company_id, customer_id, delivery_date, status, notes, subtotal, created_by, created_at, updated_at`

// Create persiste la cabecera del pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.CustomerID, o.DeliveryDate, o.Status, o.Notes, o.Subtotal,
		nullIfEmpty(o.CreatedBy), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, o.CustomerID)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido. Devuelve nil, nil si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return o, nil
}

// Update actualiza estado, notas y subtotal.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	const query = `UPDATE orders SET status = $2, notes = $3, subtotal = $4, updated_at = $5 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, o.ID, o.Status, o.Notes, o.Subtotal, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la cabecera. Las líneas caen por ON DELETE CASCADE.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// FindByNaturalKey pedidos de (empresa, cliente, fecha), más reciente primero.
func (r *OrderRepo) FindByNaturalKey(ctx context.Context, companyID, customerID string, deliveryDate time.Time) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE company_id = $1 AND customer_id = $2 AND delivery_date = $3
		ORDER BY created_at DESC, id`
	return r.queryOrders(ctx, query, companyID, customerID, deliveryDate)
}

// List pedidos de la empresa con filtros opcionales. Limit 0 no limita.
func (r *OrderRepo) List(ctx context.Context, companyID string, f repository.OrderFilter) ([]*entity.Order, error) {
	conds := []string{"company_id = $1"}
	args := []any{companyID}
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.DeliveryDate != nil {
		add("delivery_date = $%d", *f.DeliveryDate)
	}
	if f.CustomerID != "" {
		add("customer_id = $%d", f.CustomerID)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + orderColumns + ` FROM orders WHERE `)
	b.WriteString(strings.Join(conds, " AND "))
	b.WriteString(` ORDER BY delivery_date DESC, created_at DESC`)
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		fmt.Fprintf(&b, ` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}
	return r.queryOrders(ctx, b.String(), args...)
}

func (r *OrderRepo) queryOrders(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var createdBy *string
	err := row.Scan(&o.ID, &o.CompanyID, &o.CustomerID, &o.DeliveryDate, &o.Status, &o.Notes, &o.Subtotal,
		&createdBy, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, err
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	if createdBy != nil {
		o.CreatedBy = *createdBy
	}
	return &o, nil
}

const orderItemColumns = `id, order_id, product_id, quantity, unit_price, line_total`

// GetItems líneas de un pedido en orden de inserción.
func (r *OrderRepo) GetItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	byOrder, err := r.GetItemsByOrderIDs(ctx, []string{orderID})
	if err != nil {
		return nil, err
	}
	return byOrder[orderID], nil
}

// GetItemsByOrderIDs líneas de varios pedidos agrupadas por OrderID.
func (r *OrderRepo) GetItemsByOrderIDs(ctx context.Context, orderIDs []string) (map[string][]*entity.OrderItem, error) {
	out := make(map[string][]*entity.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE order_id = ANY($1::uuid[]) ORDER BY order_id, created_at, id`
	rows, err := r.q.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out[it.OrderID] = append(out[it.OrderID], &it)
	}
	return out, rows.Err()
}

// DeleteItems elimina todas las líneas del pedido.
func (r *OrderRepo) DeleteItems(ctx context.Context, orderID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return nil
}

// InsertItems inserta las líneas en un único batch.
func (r *OrderRepo) InsertItems(ctx context.Context, items []*entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(`INSERT INTO order_items (`+orderItemColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.LineTotal)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: producto inexistente en línea de pedido", domain.ErrInvalidInput)
			}
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return br.Close()
}
