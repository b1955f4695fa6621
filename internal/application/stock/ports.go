package stock

import (
	"context"

	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
	domainstock "github.com/jhoicas/hospitality-ops-api/internal/domain/stock"
)

// CandidateCache caché de candidatos de relleno por (empresa, proveedor, local).
// Los fallos de caché nunca deben romper la sugerencia: el caso de uso los registra y sigue.
type CandidateCache interface {
	Get(ctx context.Context, companyID, supplierID, siteID string) ([]domainstock.Candidate, bool, error)
	Set(ctx context.Context, companyID, supplierID, siteID string, candidates []domainstock.Candidate) error
	// Invalidate elimina las entradas de todos los locales del proveedor.
	Invalidate(ctx context.Context, companyID, supplierID string) error
}

// DocumentStorage almacenamiento de documentos generados (PDF de pedidos).
type DocumentStorage interface {
	Upload(ctx context.Context, key, contentType string, body []byte) error
	PresignGet(ctx context.Context, key string) (string, error)
}

// Mailer envío de correos a partir de plantillas embebidas.
type Mailer interface {
	SendWithAttachment(recipient, templateFile string, data any, filename string, content []byte) error
}

// PurchaseOrderPDFGenerator genera la representación PDF de un pedido a proveedor.
type PurchaseOrderPDFGenerator interface {
	GeneratePurchaseOrderPDF(ctx context.Context, doc PurchaseOrderDocument) ([]byte, error)
}

// PurchaseOrderDocument datos necesarios para renderizar un pedido a proveedor.
type PurchaseOrderDocument struct {
	Order    *entity.PurchaseOrder
	Company  *entity.Company
	Supplier *entity.Supplier
	Site     *entity.Site
	Lines    []PurchaseOrderLineForPDF
}

// PurchaseOrderLineForPDF línea enriquecida con el nombre y unidad del artículo.
type PurchaseOrderLineForPDF struct {
	entity.PurchaseOrderLine
	Name string
	Unit string
}
