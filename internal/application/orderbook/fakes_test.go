package orderbook_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/hospitality-ops-api/internal/application/orderbook"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/repository"
)

// memOrders repositorio de pedidos en memoria.
type memOrders struct {
	mu            sync.Mutex
	orders        map[string]*entity.Order
	items         map[string][]*entity.OrderItem
	failInsert    error
	deletedOrders []string
}

func newMemOrders() *memOrders {
	return &memOrders{orders: map[string]*entity.Order{}, items: map[string][]*entity.OrderItem{}}
}

func (r *memOrders) Create(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *memOrders) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrders) Update(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		return errors.New("not found")
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *memOrders) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	r.deletedOrders = append(r.deletedOrders, id)
	return nil
}

func (r *memOrders) FindByNaturalKey(_ context.Context, companyID, customerID string, d time.Time) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.orders {
		if o.CompanyID == companyID && o.CustomerID == customerID && o.DeliveryDate.Equal(d) {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memOrders) List(_ context.Context, companyID string, f repository.OrderFilter) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.orders {
		if o.CompanyID != companyID {
			continue
		}
		if f.DeliveryDate != nil && !o.DeliveryDate.Equal(*f.DeliveryDate) {
			continue
		}
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memOrders) GetItems(_ context.Context, orderID string) ([]*entity.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.OrderItem(nil), r.items[orderID]...), nil
}

func (r *memOrders) GetItemsByOrderIDs(_ context.Context, ids []string) (map[string][]*entity.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string][]*entity.OrderItem, len(ids))
	for _, id := range ids {
		out[id] = append([]*entity.OrderItem(nil), r.items[id]...)
	}
	return out, nil
}

func (r *memOrders) DeleteItems(_ context.Context, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, orderID)
	return nil
}

func (r *memOrders) InsertItems(_ context.Context, items []*entity.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failInsert != nil {
		return r.failInsert
	}
	for _, it := range items {
		cp := *it
		r.items[it.OrderID] = append(r.items[it.OrderID], &cp)
	}
	return nil
}

func (r *memOrders) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

// memTx ejecuta la función directamente sobre el repositorio en memoria.
type memTx struct{ orders *memOrders }

func (t memTx) RunOrders(ctx context.Context, fn func(orders repository.OrderRepository) error) error {
	return fn(t.orders)
}

type memCustomers map[string]*entity.Customer

func (m memCustomers) Create(_ context.Context, c *entity.Customer) error { m[c.ID] = c; return nil }
func (m memCustomers) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return m[id], nil
}
func (m memCustomers) ListByCompany(_ context.Context, _ string, _, _ int) ([]*entity.Customer, error) {
	return nil, nil
}

type memProducts map[string]*entity.Product

func (m memProducts) Create(_ context.Context, p *entity.Product) error { m[p.ID] = p; return nil }
func (m memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return m[id], nil
}
func (m memProducts) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	for _, p := range m {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (m memProducts) Update(_ context.Context, p *entity.Product) error { m[p.ID] = p; return nil }
func (m memProducts) ListByCompany(_ context.Context, _ string, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

type memCompanies map[string]*entity.Company

func (m memCompanies) Create(_ context.Context, c *entity.Company) error { m[c.ID] = c; return nil }
func (m memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return m[id], nil
}
func (m memCompanies) HasActiveModule(_ context.Context, _, _ string) (bool, error) {
	return true, nil
}
func (m memCompanies) ActivateModules(_ context.Context, _ string, _ []string) error { return nil }

type captureExporter struct{ doc orderbook.DayExportDocument }

func (c *captureExporter) ExportDay(_ context.Context, doc orderbook.DayExportDocument) ([]byte, error) {
	c.doc = doc
	return []byte("xlsx"), nil
}

type captureNotes struct{ doc orderbook.OrderDocument }

func (c *captureNotes) GenerateDeliveryNotePDF(_ context.Context, _ *entity.Company, doc orderbook.OrderDocument) ([]byte, error) {
	c.doc = doc
	return []byte("%PDF"), nil
}
