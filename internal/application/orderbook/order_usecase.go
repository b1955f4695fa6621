package orderbook

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/hospitality-ops-api/internal/application/dto"
	"github.com/jhoicas/hospitality-ops-api/internal/domain"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/repository"
)

// exportLimit máximo de pedidos por día exportado.
const exportLimit = 5000

// GetOrder obtiene un pedido con sus líneas.
func (uc *OrderUseCase) GetOrder(ctx context.Context, companyID, id string) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	docs, err := uc.documents(ctx, []*entity.Order{order})
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(docs[0])
	return &resp, nil
}

// ListOrders lista pedidos filtrando por fecha de entrega, cliente y estado.
func (uc *OrderUseCase) ListOrders(ctx context.Context, companyID string, in dto.ListOrdersRequest) (*dto.OrderListResponse, error) {
	in.DefaultPage()
	filter := repository.OrderFilter{
		CustomerID: strings.TrimSpace(in.CustomerID),
		Status:     in.Status,
		Limit:      in.Limit,
		Offset:     in.Offset,
	}
	if in.DeliveryDate != "" {
		d, err := time.Parse(entity.DeliveryDateLayout, in.DeliveryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: delivery_date debe tener formato AAAA-MM-DD", domain.ErrInvalidInput)
		}
		filter.DeliveryDate = &d
	}
	orders, err := uc.orderRepo.List(ctx, companyID, filter)
	if err != nil {
		return nil, fmt.Errorf("listar pedidos: %w", err)
	}
	docs, err := uc.documents(ctx, orders)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(docs))
	for _, d := range docs {
		items = append(items, toOrderResponse(d))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// UpdateStatus cambia el estado siguiendo la tabla de transiciones; closed y cancelled son terminales.
// Pedir el estado actual no es un error.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, companyID, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if !entity.IsValidOrderStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, in.Status)
	}
	order, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if order.Status != in.Status {
		if !entity.CanTransitionOrder(order.Status, in.Status) {
			return nil, fmt.Errorf("%w: no se puede pasar de %s a %s", domain.ErrConflict, order.Status, in.Status)
		}
		order.Status = in.Status
		order.UpdatedAt = uc.now()
		if err := uc.orderRepo.Update(ctx, order); err != nil {
			return nil, fmt.Errorf("actualizar estado: %w", err)
		}
	}
	return uc.GetOrder(ctx, companyID, id)
}

// ExportDay genera el XLSX con los pedidos (no cancelados) de un día de entrega.
func (uc *OrderUseCase) ExportDay(ctx context.Context, companyID, date string) ([]byte, string, error) {
	d, err := time.Parse(entity.DeliveryDateLayout, strings.TrimSpace(date))
	if err != nil {
		return nil, "", fmt.Errorf("%w: delivery_date debe tener formato AAAA-MM-DD", domain.ErrInvalidInput)
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("exportar día: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	orders, err := uc.orderRepo.List(ctx, companyID, repository.OrderFilter{DeliveryDate: &d, Limit: exportLimit})
	if err != nil {
		return nil, "", fmt.Errorf("exportar día: listar pedidos: %w", err)
	}
	active := make([]*entity.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status != entity.OrderStatusCancelled {
			active = append(active, o)
		}
	}
	docs, err := uc.documents(ctx, active)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.exporter.ExportDay(ctx, DayExportDocument{Company: company, DeliveryDate: d, Orders: docs})
	if err != nil {
		return nil, "", fmt.Errorf("exportar día: %w", err)
	}
	return b, fmt.Sprintf("pedidos_%s.xlsx", d.Format(entity.DeliveryDateLayout)), nil
}

// DeliveryNote genera el albarán PDF de un pedido. Los pedidos cancelados no tienen albarán.
func (uc *OrderUseCase) DeliveryNote(ctx context.Context, companyID, id string) ([]byte, string, error) {
	order, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, "", err
	}
	if order.Status == entity.OrderStatusCancelled {
		return nil, "", fmt.Errorf("%w: el pedido está cancelado", domain.ErrConflict)
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil || company == nil {
		return nil, "", fmt.Errorf("albarán: obtener empresa: %w", orNotFound(err))
	}
	docs, err := uc.documents(ctx, []*entity.Order{order})
	if err != nil {
		return nil, "", err
	}
	b, err := uc.notes.GenerateDeliveryNotePDF(ctx, company, docs[0])
	if err != nil {
		return nil, "", fmt.Errorf("albarán: generación fallida: %w", err)
	}
	return b, fmt.Sprintf("albaran_%s_%s.pdf", order.DeliveryDate.Format(entity.DeliveryDateLayout), shortRef(order.ID)), nil
}

func (uc *OrderUseCase) load(ctx context.Context, companyID, id string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener pedido: %w", err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// documents carga líneas, clientes y productos de varios pedidos con una consulta de líneas.
func (uc *OrderUseCase) documents(ctx context.Context, orders []*entity.Order) ([]OrderDocument, error) {
	if len(orders) == 0 {
		return []OrderDocument{}, nil
	}
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	itemsByOrder, err := uc.orderRepo.GetItemsByOrderIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("obtener líneas: %w", err)
	}

	customers := make(map[string]*entity.Customer)
	products := make(map[string]*entity.Product)
	out := make([]OrderDocument, 0, len(orders))
	for _, o := range orders {
		customer, ok := customers[o.CustomerID]
		if !ok {
			customer, err = uc.customerRepo.GetByID(ctx, o.CustomerID)
			if err != nil {
				return nil, fmt.Errorf("obtener cliente: %w", err)
			}
			customers[o.CustomerID] = customer
		}
		if customer == nil {
			customer = &entity.Customer{ID: o.CustomerID, Name: "Cliente " + shortRef(o.CustomerID)}
		}

		raw := itemsByOrder[o.ID]
		lines := make([]OrderLineForDocument, 0, len(raw))
		for _, it := range raw {
			product, ok := products[it.ProductID]
			if !ok {
				product, err = uc.productRepo.GetByID(ctx, it.ProductID)
				if err != nil {
					return nil, fmt.Errorf("obtener producto: %w", err)
				}
				products[it.ProductID] = product
			}
			line := OrderLineForDocument{OrderItem: *it, ProductName: "Producto " + shortRef(it.ProductID)}
			if product != nil {
				line.ProductName = product.Name
				line.SKU = product.SKU
			}
			lines = append(lines, line)
		}
		out = append(out, OrderDocument{Order: o, Customer: customer, Lines: lines})
	}
	return out, nil
}

func toOrderResponse(doc OrderDocument) dto.OrderResponse {
	o := doc.Order
	resp := dto.OrderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		DeliveryDate: o.DeliveryDate.Format(entity.DeliveryDateLayout),
		Status:       o.Status,
		Notes:        o.Notes,
		Subtotal:     o.Subtotal,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		Items:        make([]dto.OrderItemResponse, 0, len(doc.Lines)),
	}
	if doc.Customer != nil {
		resp.CustomerName = doc.Customer.Name
	}
	for _, l := range doc.Lines {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		})
	}
	return resp
}

func orNotFound(err error) error {
	if err != nil {
		return err
	}
	return domain.ErrNotFound
}

func shortRef(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
