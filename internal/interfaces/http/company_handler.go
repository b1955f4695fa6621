package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hospitality-ops-api/internal/application/dto"
	"github.com/jhoicas/hospitality-ops-api/internal/application/usecase"
)

// CompanyHandler empresas, sus módulos y sus locales.
type CompanyHandler struct {
	uc      *usecase.CompanyUseCase
	modules *usecase.ModuleService
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase, modules *usecase.ModuleService) *CompanyHandler {
	return &CompanyHandler{uc: uc, modules: modules}
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa y módulos"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if resp := bindJSON(c, &in); resp != nil {
		return badRequest(c, resp)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener la empresa del token
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	if c.Params("id") != companyID {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo se puede consultar la empresa propia"})
	}
	out, err := h.uc.GetByID(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar empresas visibles (la del token)
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.CompanyListResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var page dto.PageRequest
	if resp := bindQuery(c, &page); resp != nil {
		return badRequest(c, resp)
	}
	out, err := h.uc.List(c.Context(), companyID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ActivateModules godoc
// @Summary      Activar módulos de la empresa del token
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        body  body  dto.ActivateModulesRequest  true  "Módulos"
// @Success      204
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/modules [post]
func (h *CompanyHandler) ActivateModules(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	if c.Params("id") != companyID {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo se pueden activar módulos de la empresa propia"})
	}
	var in dto.ActivateModulesRequest
	if resp := bindJSON(c, &in); resp != nil {
		return badRequest(c, resp)
	}
	if err := h.modules.Activate(c.Context(), companyID, in.Modules); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateSite godoc
// @Summary      Crear local
// @Tags         sites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSiteRequest  true  "Datos del local"
// @Success      201   {object}  dto.SiteResponse
// @Router       /api/sites [post]
func (h *CompanyHandler) CreateSite(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var in dto.CreateSiteRequest
	if resp := bindJSON(c, &in); resp != nil {
		return badRequest(c, resp)
	}
	out, err := h.uc.CreateSite(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSites godoc
// @Summary      Listar locales
// @Tags         sites
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SiteResponse
// @Router       /api/sites [get]
func (h *CompanyHandler) ListSites(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	out, err := h.uc.ListSites(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
