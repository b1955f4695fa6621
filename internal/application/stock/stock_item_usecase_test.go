package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hospitality-ops-api/internal/application/dto"
	appstock "github.com/jhoicas/hospitality-ops-api/internal/application/stock"
	"github.com/jhoicas/hospitality-ops-api/internal/domain"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
)

func TestRecordCount_InvalidaCacheDelProveedor(t *testing.T) {
	ctx := context.Background()
	items := &mockItemRepo{}
	sites := &mockSiteRepo{}
	cache := &mockCache{}
	items.On("GetByID", ctx, "flour").Return(&entity.StockItem{ID: "flour", CompanyID: companyID, SupplierID: supplierID}, nil)
	sites.On("GetByID", ctx, "site-1").Return(&entity.Site{ID: "site-1", CompanyID: companyID}, nil)
	items.On("UpsertLevel", ctx, mock.MatchedBy(func(l *entity.StockLevel) bool {
		return l.StockItemID == "flour" && l.SiteID == "site-1" && l.Quantity.Equal(dec("3.5"))
	})).Return(nil)
	cache.On("Invalidate", ctx, companyID, supplierID).Return(errors.New("redis caído"))

	uc := appstock.NewStockItemUseCase(items, &mockSupplierRepo{}, sites, cache, zerolog.Nop())
	err := uc.RecordCount(ctx, companyID, dto.RecordStockCountRequest{StockItemID: "flour", SiteID: "site-1", Quantity: dec("3.5")})

	require.NoError(t, err, "un fallo de caché no rompe el recuento")
	items.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestRecordCount_CantidadNegativa(t *testing.T) {
	uc := appstock.NewStockItemUseCase(&mockItemRepo{}, &mockSupplierRepo{}, &mockSiteRepo{}, nil, zerolog.Nop())
	err := uc.RecordCount(context.Background(), companyID, dto.RecordStockCountRequest{StockItemID: "x", SiteID: "y", Quantity: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateStockItem_ProveedorDeOtraEmpresa(t *testing.T) {
	ctx := context.Background()
	suppliers := &mockSupplierRepo{}
	suppliers.On("GetByID", ctx, "s-2").Return(&entity.Supplier{ID: "s-2", CompanyID: "company-2"}, nil)

	uc := appstock.NewStockItemUseCase(&mockItemRepo{}, suppliers, &mockSiteRepo{}, nil, zerolog.Nop())
	_, err := uc.Create(ctx, companyID, dto.CreateStockItemRequest{SupplierID: "s-2", Name: "Milk", Unit: "l"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
