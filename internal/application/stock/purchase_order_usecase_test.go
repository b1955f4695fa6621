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

type poFixture struct {
	pos       *mockPORepo
	suppliers *mockSupplierRepo
	items     *mockItemRepo
	sites     *mockSiteRepo
	companies *mockCompanyRepo
	gen       *fakeGenerator
	storage   *fakeStorage
	mailer    *fakeMailer
	uc        *appstock.PurchaseOrderUseCase
}

func newPOFixture() *poFixture {
	f := &poFixture{
		pos:       &mockPORepo{},
		suppliers: &mockSupplierRepo{},
		items:     &mockItemRepo{},
		sites:     &mockSiteRepo{},
		companies: &mockCompanyRepo{},
		gen:       &fakeGenerator{},
		storage:   &fakeStorage{},
		mailer:    &fakeMailer{},
	}
	f.uc = appstock.NewPurchaseOrderUseCase(appstock.PurchaseOrderDeps{
		PurchaseOrders: f.pos,
		Suppliers:      f.suppliers,
		StockItems:     f.items,
		Sites:          f.sites,
		Companies:      f.companies,
		Generator:      f.gen,
		Storage:        f.storage,
		Mailer:         f.mailer,
		Log:            zerolog.Nop(),
	})

	supplier := supplierWithMinimum("100")
	supplier.Email = "pedidos@brakes.example"
	f.suppliers.On("GetByID", mock.Anything, supplierID).Return(supplier, nil)
	f.sites.On("GetByID", mock.Anything, "site-1").Return(&entity.Site{ID: "site-1", CompanyID: companyID, Name: "Kitchen"}, nil)
	f.companies.On("GetByID", mock.Anything, companyID).Return(&entity.Company{ID: companyID, Name: "The Anchor"}, nil)
	f.items.On("GetByID", mock.Anything, "flour").Return(&entity.StockItem{
		ID: "flour", CompanyID: companyID, SupplierID: supplierID, Name: "Flour 16kg", Unit: "bag", UnitPrice: ptr(dec("12.50")),
	}, nil)
	f.items.On("GetByID", mock.Anything, "foreign").Return(&entity.StockItem{
		ID: "foreign", CompanyID: companyID, SupplierID: "supplier-2", Name: "Milk",
	}, nil)
	return f
}

func draftPO(subtotal string) *entity.PurchaseOrder {
	return &entity.PurchaseOrder{
		ID: "po-123456789", CompanyID: companyID, SupplierID: supplierID, SiteID: "site-1",
		Status: entity.PurchaseOrderStatusDraft, Subtotal: dec(subtotal), MinOrderValue: dec("100"),
	}
}

func TestPurchaseOrder_CreateCalculaSubtotalYFaltante(t *testing.T) {
	f := newPOFixture()
	f.pos.On("Create", mock.Anything, mock.AnythingOfType("*entity.PurchaseOrder"), mock.Anything).Return(nil)

	resp, err := f.uc.Create(context.Background(), companyID, "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		SiteID:     "site-1",
		Lines:      []dto.PurchaseOrderLineRequest{{StockItemID: "flour", Quantity: dec("4")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusDraft, resp.Status)
	assert.True(t, resp.Subtotal.Equal(dec("50")))
	assert.True(t, resp.Shortfall.Equal(dec("50")))
	assert.False(t, resp.MeetsMinimum)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "Flour 16kg", resp.Lines[0].Name)
}

func TestPurchaseOrder_CreateRechazaArticuloDeOtroProveedor(t *testing.T) {
	f := newPOFixture()
	_, err := f.uc.Create(context.Background(), companyID, "user-1", dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		SiteID:     "site-1",
		Lines:      []dto.PurchaseOrderLineRequest{{StockItemID: "foreign", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	f.pos.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestPurchaseOrder_SubmitBajoMinimo(t *testing.T) {
	f := newPOFixture()
	f.pos.On("GetByID", mock.Anything, "po-123456789").Return(draftPO("60"), nil)

	_, err := f.uc.Submit(context.Background(), companyID, "po-123456789")
	require.ErrorIs(t, err, domain.ErrBelowMinimum)
	assert.Contains(t, err.Error(), "£40.00")
	assert.Zero(t, f.gen.calls)
	f.pos.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPurchaseOrder_SubmitSubeDocumentoYEnviaCorreo(t *testing.T) {
	f := newPOFixture()
	f.pos.On("GetByID", mock.Anything, "po-123456789").Return(draftPO("125"), nil)
	f.pos.On("GetLines", mock.Anything, "po-123456789").Return([]*entity.PurchaseOrderLine{
		{ID: "l1", PurchaseOrderID: "po-123456789", StockItemID: "flour", Quantity: dec("10"), UnitPrice: dec("12.50"), LineTotal: dec("125")},
	}, nil)
	f.pos.On("Update", mock.Anything, mock.MatchedBy(func(po *entity.PurchaseOrder) bool {
		return po.Status == entity.PurchaseOrderStatusSubmitted && po.SubmittedAt != nil && po.DocumentKey != ""
	})).Return(nil)

	resp, err := f.uc.Submit(context.Background(), companyID, "po-123456789")
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusSubmitted, resp.Status)
	assert.Equal(t, []string{"purchase-orders/company-1/po-123456789.pdf"}, f.storage.keys)
	assert.Equal(t, "https://storage.local/purchase-orders/company-1/po-123456789.pdf", resp.DocumentURL)
	require.NotNil(t, resp.Emailed)
	assert.True(t, *resp.Emailed)
	assert.Equal(t, []string{"pedidos@brakes.example"}, f.mailer.sent)
	f.pos.AssertExpectations(t)
}

func TestPurchaseOrder_FalloDeCorreoNoRompeElEnvio(t *testing.T) {
	f := newPOFixture()
	f.mailer.err = errors.New("smtp: 421 service not available")
	f.pos.On("GetByID", mock.Anything, "po-123456789").Return(draftPO("100"), nil)
	f.pos.On("GetLines", mock.Anything, "po-123456789").Return([]*entity.PurchaseOrderLine{}, nil)
	f.pos.On("Update", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.uc.Submit(context.Background(), companyID, "po-123456789")
	require.NoError(t, err)
	require.NotNil(t, resp.Emailed)
	assert.False(t, *resp.Emailed)
}

func TestPurchaseOrder_SubmitSoloBorradores(t *testing.T) {
	f := newPOFixture()
	po := draftPO("200")
	po.Status = entity.PurchaseOrderStatusSubmitted
	f.pos.On("GetByID", mock.Anything, "po-123456789").Return(po, nil)

	_, err := f.uc.Submit(context.Background(), companyID, "po-123456789")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPurchaseOrder_OtraEmpresaEsProhibido(t *testing.T) {
	f := newPOFixture()
	f.pos.On("GetByID", mock.Anything, "po-123456789").Return(draftPO("200"), nil)

	_, err := f.uc.Get(context.Background(), "company-2", "po-123456789")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
