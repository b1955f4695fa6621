package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hospitality-ops-api/internal/application/dto"
	"github.com/jhoicas/hospitality-ops-api/internal/domain"
)

// errorMapping traduce errores de dominio a HTTP. Se evalúa en orden.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrOrderNotEditable, fiber.StatusBadRequest, "ORDER_NOT_EDITABLE"},
	{domain.ErrBelowMinimum, fiber.StatusConflict, "BELOW_MINIMUM"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// respondError escribe el error. Los inesperados se registran y se devuelven como 500 sin detalle.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	requestLog(c).Error().Err(err).Str("path", c.Path()).Msg("error inesperado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno, intente de nuevo"})
}

// shuttingDown corta la petición con 503 si el servidor ya está apagándose.
// fasthttp solo cierra el contexto de la petición en el apagado, no cuando el cliente se desconecta.
func shuttingDown(c *fiber.Ctx) bool {
	if c.Context().Err() == nil {
		return false
	}
	_ = c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SHUTTING_DOWN", Message: "el servidor se está apagando, intente de nuevo"})
	return true
}

func requireCompany(c *fiber.Ctx) (string, bool) {
	companyID := GetCompanyID(c)
	if companyID == "" {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
		return "", false
	}
	return companyID, true
}

func badRequest(c *fiber.Ctx, resp *dto.ValidationErrorResponse) error {
	return c.Status(fiber.StatusBadRequest).JSON(resp)
}

func fieldError(field, msg string) *dto.ValidationErrorResponse {
	return &dto.ValidationErrorResponse{
		Code:    "VALIDATION",
		Message: "la petición no es válida",
		Details: []dto.ValidationDetail{{Field: field, Message: msg}},
	}
}

func sendAttachment(c *fiber.Ctx, contentType, filename string, content []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(content)
}
