package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hospitality-ops-api/internal/application/dto"
	"github.com/jhoicas/hospitality-ops-api/internal/application/orderbook"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// OrderHandler libro de pedidos de clientes.
type OrderHandler struct {
	uc *orderbook.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orderbook.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Upsert godoc
// @Summary      Crear o actualizar pedido de cliente
// @Description  (customer_id, delivery_date) identifica el pedido. Si existe se reemplazan sus líneas; si no, se crea. Las líneas con producto inválido se omiten y se informan en skipped_items.
// @Tags         order-book
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertOrderRequest  true  "Pedido"
// @Success      200   {object}  dto.UpsertOrderResponse  "Actualizado"
// @Success      201   {object}  dto.UpsertOrderResponse  "Creado"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/order-book/orders [post]
func (h *OrderHandler) Upsert(c *fiber.Ctx) error {
	if shuttingDown(c) {
		return nil
	}
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var in dto.UpsertOrderRequest
	if resp := bindJSON(c, &in); resp != nil {
		return badRequest(c, resp)
	}
	out, err := h.uc.UpsertOrder(c.Context(), companyID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	status := fiber.StatusOK
	if out.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}

// List godoc
// @Summary      Listar pedidos de clientes
// @Tags         order-book
// @Security     Bearer
// @Produce      json
// @Param        delivery_date  query  string  false  "AAAA-MM-DD"
// @Param        customer_id    query  string  false  "Cliente"
// @Param        status         query  string  false  "Estado"
// @Param        limit          query  int     false  "Límite"  default(20)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200            {object}  dto.OrderListResponse
// @Router       /api/order-book/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var in dto.ListOrdersRequest
	if resp := bindQuery(c, &in); resp != nil {
		return badRequest(c, resp)
	}
	out, err := h.uc.ListOrders(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener pedido de cliente
// @Tags         order-book
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/order-book/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	out, err := h.uc.GetOrder(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Tags         order-book
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/order-book/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var in dto.UpdateOrderStatusRequest
	if resp := bindJSON(c, &in); resp != nil {
		return badRequest(c, resp)
	}
	out, err := h.uc.UpdateStatus(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportDay godoc
// @Summary      Exportar pedidos del día a Excel
// @Tags         order-book
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        delivery_date  query  string  true  "AAAA-MM-DD"
// @Success      200            {file}  binary
// @Failure      400            {object}  dto.ErrorResponse
// @Router       /api/order-book/orders/export [get]
func (h *OrderHandler) ExportDay(c *fiber.Ctx) error {
	if shuttingDown(c) {
		return nil
	}
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	date := c.Query("delivery_date")
	if date == "" {
		return badRequest(c, fieldError("delivery_date", "es obligatorio"))
	}
	content, filename, err := h.uc.ExportDay(c.Context(), companyID, date)
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, xlsxContentType, filename, content)
}

// DeliveryNote godoc
// @Summary      Descargar albarán PDF
// @Tags         order-book
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}  binary
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/order-book/orders/{id}/delivery-note [get]
func (h *OrderHandler) DeliveryNote(c *fiber.Ctx) error {
	if shuttingDown(c) {
		return nil
	}
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	content, filename, err := h.uc.DeliveryNote(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, "application/pdf", filename, content)
}
