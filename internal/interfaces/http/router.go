package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hospitality-ops-api/internal/application/auth"
	"github.com/jhoicas/hospitality-ops-api/internal/application/orderbook"
	appstock "github.com/jhoicas/hospitality-ops-api/internal/application/stock"
	"github.com/jhoicas/hospitality-ops-api/internal/application/usecase"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	CompanyUC       *usecase.CompanyUseCase
	ModuleService   *usecase.ModuleService
	UserUC          *usecase.UserUseCase
	CustomerUC      *usecase.CustomerUseCase
	ProductUC       *usecase.ProductUseCase
	SupplierUC      *appstock.SupplierUseCase
	StockItemUC     *appstock.StockItemUseCase
	PaddingUC       *appstock.PaddingUseCase
	PurchaseOrderUC *appstock.PurchaseOrderUseCase
	OrderUC         *orderbook.OrderUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Alta de empresa (público); el primer registro en ella queda como admin
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.ModuleService)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	companies := protected.Group("/companies")
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Post("/:id/modules", adminOnly, companyHandler.ActivateModules)

	sites := protected.Group("/sites")
	sites.Get("/", companyHandler.ListSites)
	sites.Post("/", adminOnly, companyHandler.CreateSite)

	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Get("/", adminOnly, userHandler.List)
	users.Post("/create", adminOnly, userHandler.Create)

	// Módulo stock
	requireStock := RequireModule(entity.ModuleStock, deps.ModuleService)

	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := protected.Group("/suppliers", requireStock)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)

	stockHandler := NewStockHandler(deps.StockItemUC, deps.PaddingUC, deps.PurchaseOrderUC)
	stock := protected.Group("/stock", requireStock)
	stock.Get("/items", stockHandler.ListItems)
	stock.Post("/items", stockHandler.CreateItem)
	stock.Post("/levels", stockHandler.RecordCount)
	stock.Get("/suppliers/:id/padding-suggestions", stockHandler.PaddingSuggestions)
	stock.Post("/purchase-orders", stockHandler.CreatePurchaseOrder)
	stock.Get("/purchase-orders/:id", stockHandler.GetPurchaseOrder)
	stock.Post("/purchase-orders/:id/submit", stockHandler.SubmitPurchaseOrder)
	stock.Get("/purchase-orders/:id/pdf", stockHandler.PurchaseOrderPDF)

	// Módulo libro de pedidos
	orderBook := protected.Group("/order-book", RequireModule(entity.ModuleOrderBook, deps.ModuleService))

	catalogueHandler := NewCatalogueHandler(deps.CustomerUC, deps.ProductUC)
	orderBook.Get("/customers", catalogueHandler.ListCustomers)
	orderBook.Post("/customers", catalogueHandler.CreateCustomer)
	orderBook.Get("/customers/:id", catalogueHandler.GetCustomer)
	orderBook.Get("/products", catalogueHandler.ListProducts)
	orderBook.Post("/products", catalogueHandler.CreateProduct)
	orderBook.Get("/products/:id", catalogueHandler.GetProduct)
	orderBook.Put("/products/:id", catalogueHandler.UpdateProduct)

	orderHandler := NewOrderHandler(deps.OrderUC)
	orderBook.Get("/orders", orderHandler.List)
	orderBook.Post("/orders", orderHandler.Upsert)
	orderBook.Get("/orders/export", orderHandler.ExportDay)
	orderBook.Get("/orders/:id", orderHandler.Get)
	orderBook.Patch("/orders/:id/status", orderHandler.UpdateStatus)
	orderBook.Get("/orders/:id/delivery-note", orderHandler.DeliveryNote)
}
