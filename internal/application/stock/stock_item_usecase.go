package stock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/hospitality-ops-api/internal/application/dto"
	"github.com/jhoicas/hospitality-ops-api/internal/domain"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/repository"
)

// StockItemUseCase alta y consulta de artículos de stock, y registro de recuentos por local.
type StockItemUseCase struct {
	itemRepo     repository.StockItemRepository
	supplierRepo repository.SupplierRepository
	siteRepo     repository.SiteRepository
	cache        CandidateCache // opcional
	log          zerolog.Logger
}

// NewStockItemUseCase construye el caso de uso. cache puede ser nil.
func NewStockItemUseCase(
	itemRepo repository.StockItemRepository,
	supplierRepo repository.SupplierRepository,
	siteRepo repository.SiteRepository,
	cache CandidateCache,
	log zerolog.Logger,
) *StockItemUseCase {
	return &StockItemUseCase{
		itemRepo:     itemRepo,
		supplierRepo: supplierRepo,
		siteRepo:     siteRepo,
		cache:        cache,
		log:          log,
	}
}

// Create crea un artículo de un proveedor de la empresa.
func (uc *StockItemUseCase) Create(ctx context.Context, companyID string, in dto.CreateStockItemRequest) (*dto.StockItemResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor no encontrado", domain.ErrInvalidInput)
	}
	if supplier.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.ParLevel.IsNegative() || in.ReorderPoint.IsNegative() || in.AvgDailyUsage.IsNegative() {
		return nil, fmt.Errorf("%w: par_level, reorder_point y avg_daily_usage deben ser >= 0", domain.ErrInvalidInput)
	}

	now := time.Now()
	item := &entity.StockItem{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		SupplierID:    supplier.ID,
		Name:          strings.TrimSpace(in.Name),
		SKU:           strings.TrimSpace(in.SKU),
		Unit:          in.Unit,
		UnitPrice:     in.UnitPrice,
		ParLevel:      in.ParLevel,
		ReorderPoint:  in.ReorderPoint,
		ShelfLifeDays: in.ShelfLifeDays,
		IsPerishable:  in.IsPerishable,
		AvgDailyUsage: in.AvgDailyUsage,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID, supplier.ID)
	return toStockItemResponse(item), nil
}

// GetByID obtiene un artículo de la empresa.
func (uc *StockItemUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.StockItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toStockItemResponse(item), nil
}

// List lista artículos de la empresa, opcionalmente de un solo proveedor.
func (uc *StockItemUseCase) List(ctx context.Context, companyID, supplierID string, page dto.PageRequest) ([]dto.StockItemResponse, error) {
	page.DefaultPage()
	list, err := uc.itemRepo.ListByCompany(ctx, companyID, supplierID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *toStockItemResponse(it))
	}
	return out, nil
}

// RecordCount registra la cantidad contada de un artículo en un local e invalida
// la caché de sugerencias del proveedor.
func (uc *StockItemUseCase) RecordCount(ctx context.Context, companyID string, in dto.RecordStockCountRequest) error {
	if in.Quantity.IsNegative() {
		return fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrInvalidInput)
	}
	item, err := uc.itemRepo.GetByID(ctx, in.StockItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if item.CompanyID != companyID {
		return domain.ErrForbidden
	}
	site, err := uc.siteRepo.GetByID(ctx, in.SiteID)
	if err != nil {
		return err
	}
	if site == nil || site.CompanyID != companyID {
		return fmt.Errorf("%w: local no encontrado", domain.ErrInvalidInput)
	}

	level := &entity.StockLevel{
		StockItemID: item.ID,
		SiteID:      site.ID,
		Quantity:    in.Quantity,
		UpdatedAt:   time.Now(),
	}
	if err := uc.itemRepo.UpsertLevel(ctx, level); err != nil {
		return err
	}
	uc.invalidate(ctx, companyID, item.SupplierID)
	return nil
}

func (uc *StockItemUseCase) invalidate(ctx context.Context, companyID, supplierID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, companyID, supplierID); err != nil {
		uc.log.Warn().Err(err).Str("supplier_id", supplierID).Msg("stock: no se pudo invalidar la caché de sugerencias")
	}
}

func toStockItemResponse(it *entity.StockItem) *dto.StockItemResponse {
	return &dto.StockItemResponse{
		ID:                it.ID,
		SupplierID:        it.SupplierID,
		Name:              it.Name,
		SKU:               it.SKU,
		Unit:              it.Unit,
		UnitPrice:         it.UnitPrice,
		ParLevel:          it.ParLevel,
		ReorderPoint:      it.ReorderPoint,
		ShelfLifeDays:     it.ShelfLifeDays,
		IsPerishable:      it.IsPerishable,
		AvgDailyUsage:     it.AvgDailyUsage,
		LastCountQuantity: it.LastCountQuantity,
		IsActive:          it.IsActive,
	}
}
