package stock

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hospitality-ops-api/internal/application/dto"
	"github.com/jhoicas/hospitality-ops-api/internal/domain"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/repository"
	domainstock "github.com/jhoicas/hospitality-ops-api/internal/domain/stock"
)

// PaddingUseCase sugiere artículos para que un pedido a proveedor alcance su importe mínimo.
type PaddingUseCase struct {
	supplierRepo repository.SupplierRepository
	itemRepo     repository.StockItemRepository
	cache        CandidateCache // opcional
	opts         domainstock.Options
	log          zerolog.Logger
}

// NewPaddingUseCase construye el caso de uso. cache puede ser nil.
func NewPaddingUseCase(
	supplierRepo repository.SupplierRepository,
	itemRepo repository.StockItemRepository,
	cache CandidateCache,
	opts domainstock.Options,
	log zerolog.Logger,
) *PaddingUseCase {
	return &PaddingUseCase{
		supplierRepo: supplierRepo,
		itemRepo:     itemRepo,
		cache:        cache,
		opts:         opts,
		log:          log,
	}
}

// Suggest devuelve la lista priorizada de sugerencias y la autoselección.
// Nunca falla por falta de candidatos ni por errores de la consulta de candidatos:
// en ese caso responde con lista vacía y Degraded=true.
//
// Retorna:
//   - domain.ErrNotFound     si el proveedor no existe.
//   - domain.ErrForbidden    si el proveedor es de otra empresa.
//   - domain.ErrInvalidInput si subtotal o shortfall son negativos.
func (uc *PaddingUseCase) Suggest(ctx context.Context, companyID string, in dto.PaddingRequest) (*dto.PaddingResponse, error) {
	if in.Subtotal.IsNegative() {
		return nil, fmt.Errorf("%w: subtotal no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.Shortfall != nil && in.Shortfall.IsNegative() {
		return nil, fmt.Errorf("%w: shortfall no puede ser negativo", domain.ErrInvalidInput)
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("padding: obtener proveedor: %w", err)
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if supplier.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	shortfall := domainstock.Shortfall(supplier.MinOrderValue, in.Subtotal)
	if in.Shortfall != nil {
		shortfall = *in.Shortfall
	}

	candidates, degraded := uc.loadCandidates(ctx, companyID, supplier.ID, in.SiteID)

	suggestions := domainstock.Suggest(candidates, domainstock.ExcludeSet(in.ExcludeIDs), uc.opts)
	sel := domainstock.AutoSelect(suggestions, shortfall)

	selected := make(map[string]struct{}, len(sel.Items))
	selectedIDs := make([]string, 0, len(sel.Items))
	for _, s := range sel.Items {
		selected[s.StockItemID] = struct{}{}
		selectedIDs = append(selectedIDs, s.StockItemID)
	}

	out := make([]dto.PaddingSuggestionDTO, 0, len(suggestions))
	for _, s := range suggestions {
		_, auto := selected[s.StockItemID]
		out = append(out, toPaddingSuggestionDTO(s, auto))
	}

	return &dto.PaddingResponse{
		SupplierID:        supplier.ID,
		MinOrderValue:     supplier.MinOrderValue,
		CurrentSubtotal:   in.Subtotal,
		Shortfall:         shortfall,
		Suggestions:       out,
		AutoSelectedIDs:   selectedIDs,
		AutoSelectedTotal: sel.Total,
		ReachesMinimum:    sel.ReachesTarget,
		Degraded:          degraded,
	}, nil
}

// loadCandidates caché -> consulta principal -> consulta de respaldo -> vacío.
func (uc *PaddingUseCase) loadCandidates(ctx context.Context, companyID, supplierID, siteID string) ([]domainstock.Candidate, bool) {
	log := uc.log.With().Str("company_id", companyID).Str("supplier_id", supplierID).Str("site_id", siteID).Logger()

	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx, companyID, supplierID, siteID)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("padding: error leyendo caché, se consulta la base de datos")
		case ok:
			return cached, false
		}
	}

	candidates, err := uc.itemRepo.ListPaddingCandidates(ctx, companyID, supplierID, siteID)
	if err == nil {
		if uc.cache != nil {
			if cErr := uc.cache.Set(ctx, companyID, supplierID, siteID, candidates); cErr != nil {
				log.Warn().Err(cErr).Msg("padding: no se pudo guardar en caché")
			}
		}
		return candidates, false
	}
	log.Warn().Err(err).Msg("padding: consulta principal fallida, usando consulta de respaldo")

	candidates, err = uc.itemRepo.ListPaddingCandidatesFallback(ctx, companyID, supplierID)
	if err != nil {
		log.Error().Err(err).Msg("padding: consulta de respaldo fallida, se devuelve lista vacía")
		return []domainstock.Candidate{}, true
	}
	return candidates, true
}

func toPaddingSuggestionDTO(s domainstock.Suggestion, auto bool) dto.PaddingSuggestionDTO {
	var unitPrice *decimal.Decimal
	if s.PriceKnown {
		p := s.UnitPrice
		unitPrice = &p
	}
	return dto.PaddingSuggestionDTO{
		StockItemID:       s.StockItemID,
		Name:              s.Name,
		Unit:              s.Unit,
		SuggestedQuantity: s.SuggestedQuantity,
		UnitPrice:         unitPrice,
		LineTotal:         s.LineTotal,
		PriorityScore:     s.PriorityScore,
		BelowReorderPoint: s.BelowReorderPoint,
		DaysToStockout:    s.DaysToStockout,
		Reason:            s.Reason,
		AutoSelected:      auto,
	}
}
