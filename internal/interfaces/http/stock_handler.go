package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hospitality-ops-api/internal/application/dto"
	appstock "github.com/jhoicas/hospitality-ops-api/internal/application/stock"
)

// StockHandler artículos de stock, conteos, sugerencias de relleno y pedidos a proveedor.
type StockHandler struct {
	items   *appstock.StockItemUseCase
	padding *appstock.PaddingUseCase
	orders  *appstock.PurchaseOrderUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(items *appstock.StockItemUseCase, padding *appstock.PaddingUseCase, orders *appstock.PurchaseOrderUseCase) *StockHandler {
	return &StockHandler{items: items, padding: padding, orders: orders}
}

// CreateItem godoc
// @Summary      Crear artículo de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.StockItemResponse
// @Router       /api/stock/items [post]
func (h *StockHandler) CreateItem(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var in dto.CreateStockItemRequest
	if resp := bindJSON(c, &in); resp != nil {
		return badRequest(c, resp)
	}
	out, err := h.items.Create(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListItems godoc
// @Summary      Listar artículos de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        supplier_id  query  string  false  "Filtrar por proveedor"
// @Success      200          {array}  dto.StockItemResponse
// @Router       /api/stock/items [get]
func (h *StockHandler) ListItems(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var page dto.PageRequest
	if resp := bindQuery(c, &page); resp != nil {
		return badRequest(c, resp)
	}
	supplierID := strings.TrimSpace(c.Query("supplier_id"))
	if supplierID != "" {
		if _, err := uuid.Parse(supplierID); err != nil {
			return badRequest(c, fieldError("supplier_id", "debe ser un UUID válido"))
		}
	}
	out, err := h.items.List(c.Context(), companyID, supplierID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecordCount godoc
// @Summary      Registrar conteo de stock en un local
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.RecordStockCountRequest  true  "Artículo, local y cantidad"
// @Success      204
// @Router       /api/stock/levels [post]
func (h *StockHandler) RecordCount(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var in dto.RecordStockCountRequest
	if resp := bindJSON(c, &in); resp != nil {
		return badRequest(c, resp)
	}
	if err := h.items.RecordCount(c.Context(), companyID, in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PaddingSuggestions godoc
// @Summary      Sugerencias para alcanzar el mínimo del proveedor
// @Description  Propone artículos bajo nivel par, priorizando vida útil larga. exclude: IDs separados por coma ya presentes en el pedido.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id         path   string  true   "ID del proveedor"
// @Param        subtotal   query  string  false  "Subtotal actual del pedido"
// @Param        shortfall  query  string  false  "Importe que falta (sustituye al cálculo)"
// @Param        exclude    query  string  false  "IDs de artículos excluidos"
// @Param        site_id    query  string  false  "Local cuyo stock se consulta"
// @Success      200        {object}  dto.PaddingResponse
// @Failure      400        {object}  dto.ValidationErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/stock/suppliers/{id}/padding-suggestions [get]
func (h *StockHandler) PaddingSuggestions(c *fiber.Ctx) error {
	if shuttingDown(c) {
		return nil
	}
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	in, resp := paddingRequest(c)
	if resp != nil {
		return badRequest(c, resp)
	}
	out, err := h.padding.Suggest(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func paddingRequest(c *fiber.Ctx) (dto.PaddingRequest, *dto.ValidationErrorResponse) {
	in := dto.PaddingRequest{
		SupplierID: c.Params("id"),
		SiteID:     strings.TrimSpace(c.Query("site_id")),
		Subtotal:   decimal.Zero,
	}
	if _, err := uuid.Parse(in.SupplierID); err != nil {
		return in, fieldError("id", "debe ser un UUID válido")
	}
	if in.SiteID != "" {
		if _, err := uuid.Parse(in.SiteID); err != nil {
			return in, fieldError("site_id", "debe ser un UUID válido")
		}
	}
	if raw := strings.TrimSpace(c.Query("subtotal")); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil || v.IsNegative() {
			return in, fieldError("subtotal", "debe ser un importe no negativo")
		}
		in.Subtotal = v
	}
	if raw := strings.TrimSpace(c.Query("shortfall")); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil || v.IsNegative() {
			return in, fieldError("shortfall", "debe ser un importe no negativo")
		}
		in.Shortfall = &v
	}
	if raw := c.Query("exclude"); raw != "" {
		in.ExcludeIDs = strings.Split(raw, ",")
	}
	return in, nil
}

// CreatePurchaseOrder godoc
// @Summary      Crear pedido a proveedor (borrador)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "Proveedor, local y líneas"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Router       /api/stock/purchase-orders [post]
func (h *StockHandler) CreatePurchaseOrder(c *fiber.Ctx) error {
	if shuttingDown(c) {
		return nil
	}
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var in dto.CreatePurchaseOrderRequest
	if resp := bindJSON(c, &in); resp != nil {
		return badRequest(c, resp)
	}
	out, err := h.orders.Create(c.Context(), companyID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPurchaseOrder godoc
// @Summary      Obtener pedido a proveedor
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Router       /api/stock/purchase-orders/{id} [get]
func (h *StockHandler) GetPurchaseOrder(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	out, err := h.orders.Get(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SubmitPurchaseOrder godoc
// @Summary      Enviar pedido a proveedor
// @Description  Rechaza con 409 si no alcanza el mínimo del proveedor.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/purchase-orders/{id}/submit [post]
func (h *StockHandler) SubmitPurchaseOrder(c *fiber.Ctx) error {
	if shuttingDown(c) {
		return nil
	}
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	out, err := h.orders.Submit(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PurchaseOrderPDF godoc
// @Summary      Descargar PDF del pedido a proveedor
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}  binary
// @Router       /api/stock/purchase-orders/{id}/pdf [get]
func (h *StockHandler) PurchaseOrderPDF(c *fiber.Ctx) error {
	if shuttingDown(c) {
		return nil
	}
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	content, filename, err := h.orders.PDF(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, "application/pdf", filename, content)
}
