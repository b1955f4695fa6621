package repository

import (
	"context"

	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/stock"
)

// StockItemRepository puerto de persistencia para artículos de stock y sus niveles por local.
type StockItemRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, id string) (*entity.StockItem, error)
	ListByCompany(ctx context.Context, companyID, supplierID string, limit, offset int) ([]*entity.StockItem, error)

	// UpsertLevel registra la cantidad contada en un local y actualiza LastCountQuantity del artículo.
	UpsertLevel(ctx context.Context, level *entity.StockLevel) error

	// ListPaddingCandidates devuelve los artículos activos del proveedor bajo nivel par
	// usando los niveles por local (siteID vacío = suma de todos los locales).
	ListPaddingCandidates(ctx context.Context, companyID, supplierID, siteID string) ([]stock.Candidate, error)
	// ListPaddingCandidatesFallback consulta menos precisa: solo stock_items y su última cantidad contada.
	ListPaddingCandidatesFallback(ctx context.Context, companyID, supplierID string) ([]stock.Candidate, error)
}
