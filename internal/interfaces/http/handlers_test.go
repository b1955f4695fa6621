package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hospitality-ops-api/internal/application/dto"
	"github.com/jhoicas/hospitality-ops-api/internal/domain"
)

const testCompany = "00000000-0000-0000-0000-0000000000aa"

// withCompany simula el AuthMiddleware cargando el tenant en Locals.
func withCompany(c *fiber.Ctx) error {
	c.Locals(LocalCompanyID, testCompany)
	c.Locals(LocalRole, "admin")
	return c.Next()
}

func send(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	_ = resp.Body.Close()
	return resp, out
}

func detailFields(body map[string]any) []string {
	raw, _ := body["details"].([]any)
	out := make([]string, 0, len(raw))
	for _, d := range raw {
		if m, ok := d.(map[string]any); ok {
			out = append(out, fmt.Sprint(m["field"]))
		}
	}
	return out
}

func TestRespondError_MapeaErroresDeDominio(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("upsert: %w", domain.ErrOrderNotEditable), fiber.StatusBadRequest, "ORDER_NOT_EDITABLE"},
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("%w: sku", domain.ErrDuplicate), fiber.StatusConflict, "DUPLICATE"},
		{domain.ErrBelowMinimum, fiber.StatusConflict, "BELOW_MINIMUM"},
		{fmt.Errorf("%w: cantidad", domain.ErrInvalidInput), fiber.StatusBadRequest, "VALIDATION"},
		{errors.New("conexión rechazada"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tc.err) })

			resp, body := send(t, app, http.MethodGet, "/", "")
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestRespondError_NoFiltraDetallesInternos(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return respondError(c, errors.New("pq: password authentication failed for user app"))
	})
	_, body := send(t, app, http.MethodGet, "/", "")
	assert.NotContains(t, fmt.Sprint(body["message"]), "password")
}

func TestShuttingDown_ServidorActivoSigue(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if shuttingDown(c) {
			return nil
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	resp, _ := send(t, app, http.MethodGet, "/", "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestUpsertOrder_BodyInvalidoDevuelveDetallePorCampo(t *testing.T) {
	app := fiber.New()
	h := NewOrderHandler(nil)
	app.Post("/orders", withCompany, h.Upsert)

	resp, body := send(t, app, http.MethodPost, "/orders", `{"delivery_date":"2024-13-40","items":[]}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
	fields := detailFields(body)
	assert.Contains(t, fields, "customer_id")
	assert.Contains(t, fields, "delivery_date")
	assert.Contains(t, fields, "items")
}

func TestUpsertOrder_JSONMalformado(t *testing.T) {
	app := fiber.New()
	app.Post("/orders", withCompany, NewOrderHandler(nil).Upsert)

	resp, body := send(t, app, http.MethodPost, "/orders", `{"customer_id":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", body["code"])
}

func TestUpsertOrder_SinEmpresaEnToken(t *testing.T) {
	app := fiber.New()
	app.Post("/orders", NewOrderHandler(nil).Upsert)

	resp, _ := send(t, app, http.MethodPost, "/orders", `{}`)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestExportDay_FechaObligatoria(t *testing.T) {
	app := fiber.New()
	app.Get("/orders/export", withCompany, NewOrderHandler(nil).ExportDay)

	resp, body := send(t, app, http.MethodGet, "/orders/export", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"delivery_date"}, detailFields(body))
}

func TestPaddingSuggestions_ValidaParametros(t *testing.T) {
	const supplier = "11111111-1111-1111-1111-111111111111"
	cases := map[string]struct {
		target string
		field  string
	}{
		"proveedor": {"/suppliers/no-es-uuid/padding", "id"},
		"subtotal":  {"/suppliers/" + supplier + "/padding?subtotal=abc", "subtotal"},
		"negativo":  {"/suppliers/" + supplier + "/padding?shortfall=-3", "shortfall"},
		"local":     {"/suppliers/" + supplier + "/padding?site_id=x", "site_id"},
	}
	app := fiber.New()
	app.Get("/suppliers/:id/padding", withCompany, NewStockHandler(nil, nil, nil).PaddingSuggestions)

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp, body := send(t, app, http.MethodGet, tc.target, "")
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, []string{tc.field}, detailFields(body))
		})
	}
}

func TestPaddingRequest_ParseaExclusionesYFaltante(t *testing.T) {
	app := fiber.New()
	var got dto.PaddingRequest
	app.Get("/suppliers/:id/padding", func(c *fiber.Ctx) error {
		in, resp := paddingRequest(c)
		assert.Nil(t, resp)
		got = in
		return c.SendStatus(fiber.StatusNoContent)
	})

	const supplier = "11111111-1111-1111-1111-111111111111"
	resp, _ := send(t, app, http.MethodGet, "/suppliers/"+supplier+"/padding?subtotal=112.50&shortfall=37.5&exclude=a,b", "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, supplier, got.SupplierID)
	assert.Equal(t, "112.5", got.Subtotal.String())
	require.NotNil(t, got.Shortfall)
	assert.Equal(t, "37.5", got.Shortfall.String())
	assert.Equal(t, []string{"a", "b"}, got.ExcludeIDs)
}

type fakeModules struct {
	active bool
	err    error
}

func (f fakeModules) HasActiveModule(context.Context, string, string) (bool, error) {
	return f.active, f.err
}

func TestRequireModule(t *testing.T) {
	cases := []struct {
		name    string
		checker fakeModules
		status  int
	}{
		{"activo", fakeModules{active: true}, fiber.StatusOK},
		{"inactivo", fakeModules{}, fiber.StatusForbidden},
		{"fallo de base de datos", fakeModules{err: errors.New("timeout")}, fiber.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", withCompany, RequireModule("stock", tc.checker), func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})
			resp, _ := send(t, app, http.MethodGet, "/", "")
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
