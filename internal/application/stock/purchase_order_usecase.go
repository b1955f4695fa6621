package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hospitality-ops-api/internal/application/dto"
	"github.com/jhoicas/hospitality-ops-api/internal/domain"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/repository"
	domainstock "github.com/jhoicas/hospitality-ops-api/internal/domain/stock"
	"github.com/jhoicas/hospitality-ops-api/pkg/money"
)

const purchaseOrderTemplate = "purchase_order.tmpl"

// PurchaseOrderUseCase borradores y envío de pedidos a proveedor.
type PurchaseOrderUseCase struct {
	poRepo       repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	itemRepo     repository.StockItemRepository
	siteRepo     repository.SiteRepository
	companyRepo  repository.CompanyRepository
	generator    PurchaseOrderPDFGenerator
	storage      DocumentStorage // opcional
	mailer       Mailer          // opcional
	log          zerolog.Logger
}

// PurchaseOrderDeps dependencias del caso de uso de pedidos a proveedor.
type PurchaseOrderDeps struct {
	PurchaseOrders repository.PurchaseOrderRepository
	Suppliers      repository.SupplierRepository
	StockItems     repository.StockItemRepository
	Sites          repository.SiteRepository
	Companies      repository.CompanyRepository
	Generator      PurchaseOrderPDFGenerator
	Storage        DocumentStorage
	Mailer         Mailer
	Log            zerolog.Logger
}

// NewPurchaseOrderUseCase construye el caso de uso. Storage y Mailer pueden ser nil.
func NewPurchaseOrderUseCase(d PurchaseOrderDeps) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		poRepo:       d.PurchaseOrders,
		supplierRepo: d.Suppliers,
		itemRepo:     d.StockItems,
		siteRepo:     d.Sites,
		companyRepo:  d.Companies,
		generator:    d.Generator,
		storage:      d.Storage,
		mailer:       d.Mailer,
		log:          d.Log,
	}
}

// Create crea un pedido en borrador. Los precios se toman del artículo; un artículo sin precio
// entra con precio 0. Artículos de otro proveedor, desconocidos o repetidos -> ErrInvalidInput.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.CompanyID != companyID {
		return nil, fmt.Errorf("%w: proveedor no encontrado", domain.ErrInvalidInput)
	}
	site, err := uc.siteRepo.GetByID(ctx, in.SiteID)
	if err != nil {
		return nil, err
	}
	if site == nil || site.CompanyID != companyID {
		return nil, fmt.Errorf("%w: local no encontrado", domain.ErrInvalidInput)
	}

	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		SupplierID:    supplier.ID,
		SiteID:        site.ID,
		Status:        entity.PurchaseOrderStatusDraft,
		MinOrderValue: supplier.MinOrderValue,
		Notes:         in.Notes,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	seen := make(map[string]struct{}, len(in.Lines))
	lines := make([]*entity.PurchaseOrderLine, 0, len(in.Lines))
	names := make(map[string]string, len(in.Lines))
	subtotal := decimal.Zero
	for i, l := range in.Lines {
		if !l.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: línea %d: quantity debe ser > 0", domain.ErrInvalidInput, i)
		}
		if _, dup := seen[l.StockItemID]; dup {
			return nil, fmt.Errorf("%w: línea %d: artículo repetido", domain.ErrInvalidInput, i)
		}
		seen[l.StockItemID] = struct{}{}

		item, err := uc.itemRepo.GetByID(ctx, l.StockItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || item.CompanyID != companyID || item.SupplierID != supplier.ID {
			return nil, fmt.Errorf("%w: línea %d: el artículo no pertenece al proveedor", domain.ErrInvalidInput, i)
		}
		price := decimal.Zero
		if item.UnitPrice != nil {
			price = *item.UnitPrice
		}
		total := l.Quantity.Mul(price).Round(2)
		subtotal = subtotal.Add(total)
		names[item.ID] = item.Name
		lines = append(lines, &entity.PurchaseOrderLine{
			ID:              uuid.New().String(),
			PurchaseOrderID: po.ID,
			StockItemID:     item.ID,
			Quantity:        l.Quantity,
			UnitPrice:       price,
			LineTotal:       total,
		})
	}
	po.Subtotal = subtotal

	if err := uc.poRepo.Create(ctx, po, lines); err != nil {
		return nil, fmt.Errorf("crear pedido a proveedor: %w", err)
	}
	return toPurchaseOrderResponse(po, lines, names), nil
}

// Get obtiene un pedido con sus líneas.
func (uc *PurchaseOrderUseCase) Get(ctx context.Context, companyID, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	doc, err := uc.document(ctx, po)
	if err != nil {
		return nil, err
	}
	return documentToResponse(doc), nil
}

// Submit envía un borrador al proveedor.
//
// Retorna:
//   - domain.ErrConflict     si el pedido ya no está en borrador.
//   - domain.ErrBelowMinimum si el subtotal no alcanza el mínimo del proveedor.
//
// Si hay almacenamiento configurado el PDF se sube antes de marcar el pedido; el correo
// al proveedor es best-effort y su fallo solo se registra.
func (uc *PurchaseOrderUseCase) Submit(ctx context.Context, companyID, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if po.Status != entity.PurchaseOrderStatusDraft {
		return nil, fmt.Errorf("%w: el pedido está en estado %s", domain.ErrConflict, po.Status)
	}
	if !po.MeetsMinimum() {
		return nil, fmt.Errorf("%w: faltan %s para el mínimo de %s",
			domain.ErrBelowMinimum,
			money.GBP(domainstock.Shortfall(po.MinOrderValue, po.Subtotal)),
			money.GBP(po.MinOrderValue))
	}

	doc, err := uc.document(ctx, po)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	po.Status = entity.PurchaseOrderStatusSubmitted
	po.SubmittedAt = &now
	po.UpdatedAt = now

	pdfBytes, err := uc.generator.GeneratePurchaseOrderPDF(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("pdf pedido a proveedor: %w", err)
	}

	var documentURL string
	if uc.storage != nil {
		key := fmt.Sprintf("purchase-orders/%s/%s.pdf", companyID, po.ID)
		if err := uc.storage.Upload(ctx, key, "application/pdf", pdfBytes); err != nil {
			return nil, fmt.Errorf("subir pedido a proveedor: %w", err)
		}
		po.DocumentKey = key
		if url, err := uc.storage.PresignGet(ctx, key); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("stock: no se pudo firmar la URL del documento")
		} else {
			documentURL = url
		}
	}

	if err := uc.poRepo.Update(ctx, po); err != nil {
		return nil, fmt.Errorf("actualizar pedido a proveedor: %w", err)
	}

	emailed := uc.notifySupplier(doc, pdfBytes)

	resp := documentToResponse(doc)
	resp.DocumentURL = documentURL
	resp.Emailed = &emailed
	return resp, nil
}

// PDF genera el PDF de un pedido (en cualquier estado).
func (uc *PurchaseOrderUseCase) PDF(ctx context.Context, companyID, id string) ([]byte, string, error) {
	po, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.document(ctx, po)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.generator.GeneratePurchaseOrderPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf pedido a proveedor: %w", err)
	}
	return b, purchaseOrderFilename(po), nil
}

func (uc *PurchaseOrderUseCase) notifySupplier(doc PurchaseOrderDocument, pdfBytes []byte) bool {
	if uc.mailer == nil || doc.Supplier.Email == "" {
		return false
	}
	data := map[string]any{
		"companyName":  doc.Company.Name,
		"supplierName": doc.Supplier.Name,
		"siteName":     doc.Site.Name,
		"siteAddress":  doc.Site.Address,
		"reference":    shortRef(doc.Order.ID),
		"subtotal":     money.GBP(doc.Order.Subtotal),
		"lineCount":    len(doc.Lines),
	}
	err := uc.mailer.SendWithAttachment(doc.Supplier.Email, purchaseOrderTemplate, data, purchaseOrderFilename(doc.Order), pdfBytes)
	if err != nil {
		uc.log.Error().Err(err).Str("purchase_order_id", doc.Order.ID).Msg("stock: fallo enviando el pedido al proveedor")
		return false
	}
	return true
}

func (uc *PurchaseOrderUseCase) load(ctx context.Context, companyID, id string) (*entity.PurchaseOrder, error) {
	po, err := uc.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	if po.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return po, nil
}

// document carga empresa, proveedor, local y líneas con el nombre del artículo.
func (uc *PurchaseOrderUseCase) document(ctx context.Context, po *entity.PurchaseOrder) (PurchaseOrderDocument, error) {
	company, err := uc.companyRepo.GetByID(ctx, po.CompanyID)
	if err != nil || company == nil {
		return PurchaseOrderDocument{}, fmt.Errorf("pedido a proveedor: obtener empresa: %w", orNotFound(err))
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, po.SupplierID)
	if err != nil || supplier == nil {
		return PurchaseOrderDocument{}, fmt.Errorf("pedido a proveedor: obtener proveedor: %w", orNotFound(err))
	}
	site, err := uc.siteRepo.GetByID(ctx, po.SiteID)
	if err != nil || site == nil {
		return PurchaseOrderDocument{}, fmt.Errorf("pedido a proveedor: obtener local: %w", orNotFound(err))
	}
	raw, err := uc.poRepo.GetLines(ctx, po.ID)
	if err != nil {
		return PurchaseOrderDocument{}, fmt.Errorf("pedido a proveedor: obtener líneas: %w", err)
	}
	lines := make([]PurchaseOrderLineForPDF, 0, len(raw))
	for _, l := range raw {
		enriched := PurchaseOrderLineForPDF{PurchaseOrderLine: *l, Name: "Artículo " + shortRef(l.StockItemID)}
		if item, iErr := uc.itemRepo.GetByID(ctx, l.StockItemID); iErr == nil && item != nil {
			enriched.Name = item.Name
			enriched.Unit = item.Unit
		}
		lines = append(lines, enriched)
	}
	return PurchaseOrderDocument{Order: po, Company: company, Supplier: supplier, Site: site, Lines: lines}, nil
}

func orNotFound(err error) error {
	if err != nil {
		return err
	}
	return domain.ErrNotFound
}

func purchaseOrderFilename(po *entity.PurchaseOrder) string {
	return fmt.Sprintf("pedido_proveedor_%s.pdf", shortRef(po.ID))
}

// shortRef referencia legible: primeros 8 caracteres del UUID.
func shortRef(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder, lines []*entity.PurchaseOrderLine, names map[string]string) *dto.PurchaseOrderResponse {
	out := &dto.PurchaseOrderResponse{
		ID:            po.ID,
		SupplierID:    po.SupplierID,
		SiteID:        po.SiteID,
		Status:        po.Status,
		Subtotal:      po.Subtotal,
		MinOrderValue: po.MinOrderValue,
		Shortfall:     domainstock.Shortfall(po.MinOrderValue, po.Subtotal),
		MeetsMinimum:  po.MeetsMinimum(),
		Notes:         po.Notes,
		SubmittedAt:   po.SubmittedAt,
		Lines:         make([]dto.PurchaseOrderLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.PurchaseOrderLineResponse{
			ID:          l.ID,
			StockItemID: l.StockItemID,
			Name:        names[l.StockItemID],
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		})
	}
	return out
}

func documentToResponse(doc PurchaseOrderDocument) *dto.PurchaseOrderResponse {
	lines := make([]*entity.PurchaseOrderLine, 0, len(doc.Lines))
	names := make(map[string]string, len(doc.Lines))
	for i := range doc.Lines {
		lines = append(lines, &doc.Lines[i].PurchaseOrderLine)
		names[doc.Lines[i].StockItemID] = doc.Lines[i].Name
	}
	return toPurchaseOrderResponse(doc.Order, lines, names)
}
