package orderbook

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hospitality-ops-api/internal/application/dto"
	"github.com/jhoicas/hospitality-ops-api/internal/domain"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/repository"
)

// Motivos de descarte de líneas.
const (
	skipMissingProduct  = "product_id vacío"
	skipUnknownProduct  = "producto no encontrado"
	skipInactiveProduct = "producto inactivo"
	skipBadQuantity     = "quantity debe ser mayor que 0"
	skipBadPrice        = "unit_price no puede ser negativo"
)

// OrderUseCase libro de pedidos: upsert, consulta, cambio de estado y documentos.
type OrderUseCase struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	companyRepo  repository.CompanyRepository
	tx           TxRunner
	notes        DeliveryNoteGenerator
	exporter     DayExporter
	log          zerolog.Logger
	now          func() time.Time
}

// OrderDeps dependencias del libro de pedidos.
type OrderDeps struct {
	Orders    repository.OrderRepository
	Customers repository.CustomerRepository
	Products  repository.ProductRepository
	Companies repository.CompanyRepository
	Tx        TxRunner
	Notes     DeliveryNoteGenerator
	Exporter  DayExporter
	Log       zerolog.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(d OrderDeps) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:    d.Orders,
		customerRepo: d.Customers,
		productRepo:  d.Products,
		companyRepo:  d.Companies,
		tx:           d.Tx,
		notes:        d.Notes,
		exporter:     d.Exporter,
		log:          d.Log,
		now:          time.Now,
	}
}

// UpsertOrder crea o actualiza el pedido identificado por (cliente, fecha de entrega).
//
//   - Las líneas se validan antes de escribir nada; las que referencian productos inválidos
//     se descartan y se informan en SkippedItems. Sin líneas válidas -> ErrInvalidInput.
//   - Si existen varios pedidos con la misma clave se conserva el más reciente y se borran los demás.
//   - Solo draft, pending y confirmed admiten cambios; otro estado -> ErrOrderNotEditable.
//   - Las líneas se reemplazan por completo (nunca se mezclan).
//   - Si falla la inserción de líneas, el pedido se borra solo si se creó en esta llamada.
func (uc *OrderUseCase) UpsertOrder(ctx context.Context, companyID, userID string, in dto.UpsertOrderRequest) (*dto.UpsertOrderResponse, error) {
	deliveryDate, err := time.Parse(entity.DeliveryDateLayout, strings.TrimSpace(in.DeliveryDate))
	if err != nil {
		return nil, fmt.Errorf("%w: delivery_date debe tener formato AAAA-MM-DD", domain.ErrInvalidInput)
	}
	if in.Status != "" && !entity.IsEditableOrderStatus(in.Status) {
		return nil, fmt.Errorf("%w: status inicial debe ser draft, pending o confirmed", domain.ErrInvalidInput)
	}

	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("upsert pedido: obtener cliente: %w", err)
	}
	if customer == nil || customer.CompanyID != companyID {
		return nil, fmt.Errorf("%w: cliente no encontrado", domain.ErrInvalidInput)
	}

	lines, skipped, err := uc.resolveItems(ctx, companyID, in.Items)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: el pedido no tiene líneas válidas", domain.ErrInvalidInput)
	}

	existing, err := uc.orderRepo.FindByNaturalKey(ctx, companyID, customer.ID, deliveryDate)
	if err != nil {
		return nil, fmt.Errorf("upsert pedido: buscar existente: %w", err)
	}
	if len(existing) > 0 && !entity.IsEditableOrderStatus(existing[0].Status) {
		return nil, fmt.Errorf("%w: el pedido está en estado %s; solo se pueden modificar pedidos en draft, pending o confirmed",
			domain.ErrOrderNotEditable, existing[0].Status)
	}
	removed := 0
	if len(existing) > 1 {
		removed = uc.removeDuplicates(ctx, existing[1:])
	}

	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal)
	}

	now := uc.now()
	var order *entity.Order
	created := false
	if len(existing) > 0 {
		order = existing[0]
		if in.Status != "" {
			order.Status = in.Status
		}
		order.Notes = in.Notes
		order.Subtotal = subtotal
		order.UpdatedAt = now
		if err := uc.orderRepo.Update(ctx, order); err != nil {
			return nil, fmt.Errorf("upsert pedido: actualizar: %w", err)
		}
		if err := uc.orderRepo.DeleteItems(ctx, order.ID); err != nil {
			return nil, fmt.Errorf("upsert pedido: borrar líneas: %w", err)
		}
	} else {
		status := in.Status
		if status == "" {
			status = entity.OrderStatusPending
		}
		order = &entity.Order{
			ID:           uuid.New().String(),
			CompanyID:    companyID,
			CustomerID:   customer.ID,
			DeliveryDate: deliveryDate,
			Status:       status,
			Notes:        in.Notes,
			Subtotal:     subtotal,
			CreatedBy:    userID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.orderRepo.Create(ctx, order); err != nil {
			return nil, fmt.Errorf("upsert pedido: crear: %w", err)
		}
		created = true
	}

	items := make([]*entity.OrderItem, 0, len(lines))
	for i := range lines {
		lines[i].ID = uuid.New().String()
		lines[i].OrderID = order.ID
		items = append(items, &lines[i].OrderItem)
	}
	if err := uc.orderRepo.InsertItems(ctx, items); err != nil {
		if created {
			if delErr := uc.orderRepo.Delete(ctx, order.ID); delErr != nil {
				uc.log.Error().Err(delErr).Str("order_id", order.ID).Msg("orderbook: no se pudo deshacer el pedido recién creado")
			}
		}
		return nil, fmt.Errorf("upsert pedido: insertar líneas: %w", err)
	}

	resp := &dto.UpsertOrderResponse{
		Order:             toOrderResponse(OrderDocument{Order: order, Customer: customer, Lines: lines}),
		Created:           created,
		SkippedItems:      skipped,
		DuplicatesRemoved: removed,
	}
	return resp, nil
}

// resolveItems valida cada línea contra el catálogo. Solo los errores de infraestructura abortan.
func (uc *OrderUseCase) resolveItems(ctx context.Context, companyID string, in []dto.OrderItemRequest) ([]OrderLineForDocument, []dto.SkippedItemDTO, error) {
	lines := make([]OrderLineForDocument, 0, len(in))
	skipped := make([]dto.SkippedItemDTO, 0)
	products := make(map[string]*entity.Product)

	skip := func(i int, productID, reason string) {
		skipped = append(skipped, dto.SkippedItemDTO{Index: i, ProductID: productID, Reason: reason})
	}

	for i, it := range in {
		productID := strings.TrimSpace(it.ProductID)
		if productID == "" {
			skip(i, it.ProductID, skipMissingProduct)
			continue
		}
		if _, err := uuid.Parse(productID); err != nil {
			skip(i, productID, skipUnknownProduct)
			continue
		}
		if !it.Quantity.IsPositive() {
			skip(i, productID, skipBadQuantity)
			continue
		}
		if it.UnitPrice != nil && it.UnitPrice.IsNegative() {
			skip(i, productID, skipBadPrice)
			continue
		}

		product, cached := products[productID]
		if !cached {
			p, err := uc.productRepo.GetByID(ctx, productID)
			if err != nil {
				return nil, nil, fmt.Errorf("upsert pedido: obtener producto: %w", err)
			}
			product = p
			products[productID] = p
		}
		if product == nil || product.CompanyID != companyID {
			skip(i, productID, skipUnknownProduct)
			continue
		}
		if !product.IsActive {
			skip(i, productID, skipInactiveProduct)
			continue
		}

		price := product.UnitPrice
		if it.UnitPrice != nil {
			price = *it.UnitPrice
		}
		lines = append(lines, OrderLineForDocument{
			OrderItem: entity.OrderItem{
				ProductID: product.ID,
				Quantity:  it.Quantity,
				UnitPrice: price,
				LineTotal: it.Quantity.Mul(price).Round(2),
			},
			ProductName: product.Name,
			SKU:         product.SKU,
		})
	}
	return lines, skipped, nil
}

// removeDuplicates borra cada duplicado (líneas y cabecera) en su propia transacción.
// Un fallo se registra y no impide el upsert sobre el pedido más reciente.
func (uc *OrderUseCase) removeDuplicates(ctx context.Context, dups []*entity.Order) int {
	removed := 0
	for _, d := range dups {
		err := uc.tx.RunOrders(ctx, func(orders repository.OrderRepository) error {
			if err := orders.DeleteItems(ctx, d.ID); err != nil {
				return err
			}
			return orders.Delete(ctx, d.ID)
		})
		if err != nil {
			uc.log.Error().Err(err).Str("order_id", d.ID).Msg("orderbook: no se pudo borrar el pedido duplicado")
			continue
		}
		uc.log.Warn().Str("order_id", d.ID).Str("customer_id", d.CustomerID).
			Str("delivery_date", d.DeliveryDate.Format(entity.DeliveryDateLayout)).
			Msg("orderbook: pedido duplicado eliminado")
		removed++
	}
	return removed
}
