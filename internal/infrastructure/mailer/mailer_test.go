package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Invitacion(t *testing.T) {
	data := map[string]any{
		"name": "Ana", "email": "ana@crown.test", "role": "staff",
		"companyName": "The Crown", "temporaryPassword": "a1b2c3d4e5f6",
	}
	subject, plain, html, err := render("user_invite.tmpl", data)
	require.NoError(t, err)
	assert.Equal(t, "Invitación a The Crown", subject)
	assert.Contains(t, plain, "a1b2c3d4e5f6")
	assert.Contains(t, html, "<strong>staff</strong>")
}

func TestRender_InvitacionSinPasswordTemporal(t *testing.T) {
	data := map[string]any{"name": "Ana", "email": "ana@crown.test", "role": "admin", "companyName": "The Crown", "temporaryPassword": ""}
	_, plain, _, err := render("user_invite.tmpl", data)
	require.NoError(t, err)
	assert.NotContains(t, plain, "Contraseña temporal")
}

func TestRender_PedidoProveedor(t *testing.T) {
	data := map[string]any{
		"companyName": "The Crown", "supplierName": "Fresh Foods", "siteName": "Cocina",
		"siteAddress": "", "reference": "ABC12345", "subtotal": "£150.00", "lineCount": 4,
	}
	subject, plain, _, err := render("purchase_order.tmpl", data)
	require.NoError(t, err)
	assert.Equal(t, "Pedido ABC12345 de The Crown", subject)
	assert.Contains(t, plain, "subtotal £150.00")
}

func TestRender_TextoPlanoSinEscaparHTML(t *testing.T) {
	data := map[string]any{
		"name": "Sean O'Brien", "email": "sean@crown.test", "role": "staff",
		"companyName": "Fish & Chips <Ltd>", "temporaryPassword": "",
	}
	subject, plain, html, err := render("user_invite.tmpl", data)
	require.NoError(t, err)
	assert.Equal(t, "Invitación a Fish & Chips <Ltd>", subject)
	assert.Contains(t, plain, "O'Brien")
	assert.NotContains(t, plain, "&#39;")
	assert.Contains(t, html, "O&#39;Brien")
	assert.Contains(t, html, "Fish &amp; Chips &lt;Ltd&gt;")
}

func TestRender_PlantillaInexistente(t *testing.T) {
	_, _, _, err := render("nope.tmpl", nil)
	assert.Error(t, err)
}
