package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hospitality-ops-api/internal/application/dto"
	"github.com/jhoicas/hospitality-ops-api/internal/application/usecase"
)

// CatalogueHandler clientes y productos del libro de pedidos.
type CatalogueHandler struct {
	customers *usecase.CustomerUseCase
	products  *usecase.ProductUseCase
}

// NewCatalogueHandler construye el handler.
func NewCatalogueHandler(customers *usecase.CustomerUseCase, products *usecase.ProductUseCase) *CatalogueHandler {
	return &CatalogueHandler{customers: customers, products: products}
}

// CreateCustomer godoc
// @Summary      Crear cliente
// @Tags         order-book
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Router       /api/order-book/customers [post]
func (h *CatalogueHandler) CreateCustomer(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var in dto.CreateCustomerRequest
	if resp := bindJSON(c, &in); resp != nil {
		return badRequest(c, resp)
	}
	out, err := h.customers.Create(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCustomers godoc
// @Summary      Listar clientes
// @Tags         order-book
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/order-book/customers [get]
func (h *CatalogueHandler) ListCustomers(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var page dto.PageRequest
	if resp := bindQuery(c, &page); resp != nil {
		return badRequest(c, resp)
	}
	out, err := h.customers.List(c.Context(), companyID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetCustomer godoc
// @Summary      Obtener cliente
// @Tags         order-book
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/order-book/customers/{id} [get]
func (h *CatalogueHandler) GetCustomer(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	out, err := h.customers.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateProduct godoc
// @Summary      Crear producto (variante con SKU)
// @Tags         order-book
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/order-book/products [post]
func (h *CatalogueHandler) CreateProduct(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var in dto.CreateProductRequest
	if resp := bindJSON(c, &in); resp != nil {
		return badRequest(c, resp)
	}
	out, err := h.products.Create(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListProducts godoc
// @Summary      Listar productos
// @Tags         order-book
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/order-book/products [get]
func (h *CatalogueHandler) ListProducts(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var page dto.PageRequest
	if resp := bindQuery(c, &page); resp != nil {
		return badRequest(c, resp)
	}
	out, err := h.products.List(c.Context(), companyID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetProduct godoc
// @Summary      Obtener producto
// @Tags         order-book
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Router       /api/order-book/products/{id} [get]
func (h *CatalogueHandler) GetProduct(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	out, err := h.products.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateProduct godoc
// @Summary      Actualizar producto
// @Tags         order-book
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ProductResponse
// @Router       /api/order-book/products/{id} [put]
func (h *CatalogueHandler) UpdateProduct(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var in dto.UpdateProductRequest
	if resp := bindJSON(c, &in); resp != nil {
		return badRequest(c, resp)
	}
	out, err := h.products.Update(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
