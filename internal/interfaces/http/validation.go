package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hospitality-ops-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Nombres de campo del JSON (o del query) en los mensajes de error.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		return name
	})
	return v
}

// bindJSON parsea el body y lo valida. Devuelve nil si todo es correcto.
func bindJSON(c *fiber.Ctx, in any) *dto.ValidationErrorResponse {
	if err := c.BodyParser(in); err != nil {
		return &dto.ValidationErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido", Details: []dto.ValidationDetail{}}
	}
	return validateStruct(in)
}

// bindQuery parsea y valida los parámetros de query.
func bindQuery(c *fiber.Ctx, in any) *dto.ValidationErrorResponse {
	if err := c.QueryParser(in); err != nil {
		return &dto.ValidationErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos", Details: []dto.ValidationDetail{}}
	}
	return validateStruct(in)
}

func validateStruct(in any) *dto.ValidationErrorResponse {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	resp := &dto.ValidationErrorResponse{Code: "VALIDATION", Message: "la petición no es válida"}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			resp.Details = append(resp.Details, dto.ValidationDetail{Field: fieldPath(e), Message: validationMessage(e)})
		}
	}
	return resp
}

// fieldPath ruta del campo sin el nombre del struct raíz (items[2].product_id).
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "campo obligatorio"
	case "email":
		return "email inválido"
	case "uuid":
		return "debe ser un UUID"
	case "datetime":
		return "formato de fecha esperado " + e.Param()
	case "oneof":
		return "debe ser uno de: " + e.Param()
	case "min":
		if e.Kind() == reflect.String {
			return "mínimo " + e.Param() + " caracteres"
		}
		if e.Kind() == reflect.Slice {
			return "mínimo " + e.Param() + " elementos"
		}
		return "debe ser al menos " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "máximo " + e.Param() + " caracteres"
		}
		return "debe ser como mucho " + e.Param()
	default:
		return "valor inválido"
	}
}
