package stock_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	appstock "github.com/jhoicas/hospitality-ops-api/internal/application/stock"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
	domainstock "github.com/jhoicas/hospitality-ops-api/internal/domain/stock"
)

type mockSupplierRepo struct{ mock.Mock }

func (m *mockSupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Supplier), args.Error(1)
}

func (m *mockSupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSupplierRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error) {
	args := m.Called(ctx, companyID, limit, offset)
	return args.Get(0).([]*entity.Supplier), args.Error(1)
}

type mockItemRepo struct{ mock.Mock }

func (m *mockItemRepo) Create(ctx context.Context, it *entity.StockItem) error {
	return m.Called(ctx, it).Error(0)
}

func (m *mockItemRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.StockItem), args.Error(1)
}

func (m *mockItemRepo) ListByCompany(ctx context.Context, companyID, supplierID string, limit, offset int) ([]*entity.StockItem, error) {
	args := m.Called(ctx, companyID, supplierID, limit, offset)
	return args.Get(0).([]*entity.StockItem), args.Error(1)
}

func (m *mockItemRepo) UpsertLevel(ctx context.Context, level *entity.StockLevel) error {
	return m.Called(ctx, level).Error(0)
}

func (m *mockItemRepo) ListPaddingCandidates(ctx context.Context, companyID, supplierID, siteID string) ([]domainstock.Candidate, error) {
	args := m.Called(ctx, companyID, supplierID, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domainstock.Candidate), args.Error(1)
}

func (m *mockItemRepo) ListPaddingCandidatesFallback(ctx context.Context, companyID, supplierID string) ([]domainstock.Candidate, error) {
	args := m.Called(ctx, companyID, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domainstock.Candidate), args.Error(1)
}

type mockSiteRepo struct{ mock.Mock }

func (m *mockSiteRepo) Create(ctx context.Context, s *entity.Site) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSiteRepo) GetByID(ctx context.Context, id string) (*entity.Site, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Site), args.Error(1)
}

func (m *mockSiteRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Site, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]*entity.Site), args.Error(1)
}

type mockCompanyRepo struct{ mock.Mock }

func (m *mockCompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Company), args.Error(1)
}

func (m *mockCompanyRepo) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	args := m.Called(ctx, companyID, moduleName)
	return args.Bool(0), args.Error(1)
}

func (m *mockCompanyRepo) ActivateModules(ctx context.Context, companyID string, modules []string) error {
	return m.Called(ctx, companyID, modules).Error(0)
}

type mockPORepo struct{ mock.Mock }

func (m *mockPORepo) Create(ctx context.Context, po *entity.PurchaseOrder, lines []*entity.PurchaseOrderLine) error {
	return m.Called(ctx, po, lines).Error(0)
}

func (m *mockPORepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PurchaseOrder), args.Error(1)
}

func (m *mockPORepo) GetLines(ctx context.Context, id string) ([]*entity.PurchaseOrderLine, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]*entity.PurchaseOrderLine), args.Error(1)
}

func (m *mockPORepo) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	return m.Called(ctx, po).Error(0)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, companyID, supplierID, siteID string) ([]domainstock.Candidate, bool, error) {
	args := m.Called(ctx, companyID, supplierID, siteID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domainstock.Candidate), args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, companyID, supplierID, siteID string, c []domainstock.Candidate) error {
	return m.Called(ctx, companyID, supplierID, siteID, c).Error(0)
}

func (m *mockCache) Invalidate(ctx context.Context, companyID, supplierID string) error {
	return m.Called(ctx, companyID, supplierID).Error(0)
}

type fakeGenerator struct {
	calls int
	err   error
}

func (g *fakeGenerator) GeneratePurchaseOrderPDF(_ context.Context, _ appstock.PurchaseOrderDocument) ([]byte, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.3 fake"), nil
}

type fakeStorage struct {
	keys []string
	err  error
}

func (s *fakeStorage) Upload(_ context.Context, key, _ string, _ []byte) error {
	if s.err != nil {
		return s.err
	}
	s.keys = append(s.keys, key)
	return nil
}

func (s *fakeStorage) PresignGet(_ context.Context, key string) (string, error) {
	return "https://storage.local/" + key, nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendWithAttachment(recipient, _ string, _ any, _ string, _ []byte) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, recipient)
	return nil
}
