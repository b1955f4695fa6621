package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/hospitality-ops-api/internal/application/auth"
	"github.com/jhoicas/hospitality-ops-api/internal/application/orderbook"
	appstock "github.com/jhoicas/hospitality-ops-api/internal/application/stock"
	"github.com/jhoicas/hospitality-ops-api/internal/application/usecase"
	domainstock "github.com/jhoicas/hospitality-ops-api/internal/domain/stock"
	"github.com/jhoicas/hospitality-ops-api/internal/infrastructure/cache"
	"github.com/jhoicas/hospitality-ops-api/internal/infrastructure/mailer"
	infrapdf "github.com/jhoicas/hospitality-ops-api/internal/infrastructure/pdf"
	"github.com/jhoicas/hospitality-ops-api/internal/infrastructure/postgres"
	"github.com/jhoicas/hospitality-ops-api/internal/infrastructure/storage"
	"github.com/jhoicas/hospitality-ops-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/hospitality-ops-api/internal/interfaces/http"
	"github.com/jhoicas/hospitality-ops-api/pkg/config"
	"github.com/jhoicas/hospitality-ops-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	siteRepo := postgres.NewSiteRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	stockItemRepo := postgres.NewStockItemRepository(pool)
	purchaseOrderRepo := postgres.NewPurchaseOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Servicios opcionales: sin configuración la funcionalidad se degrada, no se detiene el arranque.
	var candidateCache appstock.CandidateCache
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, sugerencias sin caché")
		} else {
			defer client.Close()
			candidateCache = cache.NewRedisCandidateCache(client, cfg.Padding.CacheTTL, log.Component("cache"))
		}
	}

	var documentStorage appstock.DocumentStorage
	if cfg.Storage.Enabled() {
		s3, err := storage.NewS3Storage(ctx, cfg.Storage, log.Component("storage"))
		if err != nil {
			log.Warn().Err(err).Msg("almacenamiento S3 no disponible, los PDF no se archivarán")
		} else {
			if err := s3.EnsureBucket(ctx); err != nil {
				log.Warn().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("no se pudo verificar el bucket")
			}
			documentStorage = s3
		}
	}

	var (
		poMailer   appstock.Mailer
		userMailer usecase.Mailer
	)
	if cfg.SMTP.Enabled() {
		m := mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender, log.Component("mailer"))
		poMailer, userMailer = m, m
	}

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	companyUC := usecase.NewCompanyUseCase(companyRepo, siteRepo)
	moduleSvc := usecase.NewModuleService(companyRepo)
	userUC := usecase.NewUserUseCase(userRepo, companyRepo, siteRepo, userMailer, log.Component("users"))
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	productUC := usecase.NewProductUseCase(productRepo)

	supplierUC := appstock.NewSupplierUseCase(supplierRepo)
	stockItemUC := appstock.NewStockItemUseCase(stockItemRepo, supplierRepo, siteRepo, candidateCache, log.Component("stock"))
	paddingUC := appstock.NewPaddingUseCase(supplierRepo, stockItemRepo, candidateCache, domainstock.Options{
		DefaultShelfLifeDays:       cfg.Padding.DefaultShelfLifeDays,
		NonPerishableShelfLifeDays: cfg.Padding.NonPerishableShelfLifeDays,
	}, log.Component("padding"))
	purchaseOrderUC := appstock.NewPurchaseOrderUseCase(appstock.PurchaseOrderDeps{
		PurchaseOrders: purchaseOrderRepo,
		Suppliers:      supplierRepo,
		StockItems:     stockItemRepo,
		Sites:          siteRepo,
		Companies:      companyRepo,
		Generator:      pdfGenerator,
		Storage:        documentStorage,
		Mailer:         poMailer,
		Log:            log.Component("purchase_orders"),
	})

	orderUC := orderbook.NewOrderUseCase(orderbook.OrderDeps{
		Orders:    orderRepo,
		Customers: customerRepo,
		Products:  productRepo,
		Companies: companyRepo,
		Tx:        txRunner,
		Notes:     pdfGenerator,
		Exporter:  xlsx.NewExporter(),
		Log:       log.Component("order_book"),
	})

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Hospitality Ops API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		CompanyUC:       companyUC,
		ModuleService:   moduleSvc,
		UserUC:          userUC,
		CustomerUC:      customerUC,
		ProductUC:       productUC,
		SupplierUC:      supplierUC,
		StockItemUC:     stockItemUC,
		PaddingUC:       paddingUC,
		PurchaseOrderUC: purchaseOrderUC,
		OrderUC:         orderUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
