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

	appanalytics "github.com/jhoicas/decora-api/internal/application/analytics"
	"github.com/jhoicas/decora-api/internal/application/auth"
	"github.com/jhoicas/decora-api/internal/application/catalog"
	"github.com/jhoicas/decora-api/internal/application/finance"
	"github.com/jhoicas/decora-api/internal/application/quoting"
	"github.com/jhoicas/decora-api/internal/application/usecase"
	"github.com/jhoicas/decora-api/internal/domain/pricing"
	"github.com/jhoicas/decora-api/internal/domain/repository"
	"github.com/jhoicas/decora-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/decora-api/internal/infrastructure/pdf"
	"github.com/jhoicas/decora-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/decora-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/decora-api/internal/interfaces/http"
	"github.com/jhoicas/decora-api/pkg/config"
	"github.com/jhoicas/decora-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migrações")
		}
		log.Info().Msg("migrações aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	serviceRepo := postgres.NewSewingServiceRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	itemRepo := postgres.NewLineItemRepository(pool)
	receivableRepo := postgres.NewReceivableRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	salespersonRepo := postgres.NewSalespersonRepository(pool)
	commissionRepo := postgres.NewCommissionRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	receiptStore := postgres.NewReceiptStore(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Catálogo: leituras passam pelo Redis quando REDIS_ADDR está definido.
	// Custo de itens sempre lê o preço ativo direto do banco.
	pgMaterials := postgres.NewMaterialRepository(pool)
	var materialRepo repository.MaterialRepository = pgMaterials
	var materialCache catalog.MaterialCache
	rdb, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis indisponível, seguindo sem cache")
	}
	if rdb != nil {
		defer rdb.Close()
		cached := cache.NewMaterialRepository(materialRepo, rdb, cfg.Redis.TTL, log)
		materialRepo = cached
		materialCache = cached
	}

	defaults := quoting.Defaults{
		InstallationPointPrice: cfg.Pricing.InstallationPointPrice,
		Presets: pricing.MarginPresets{
			Low:      cfg.Pricing.MarginLow,
			Standard: cfg.Pricing.MarginStandard,
			Premium:  cfg.Pricing.MarginPremium,
		},
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo, defaults)
	userUC := usecase.NewUserUseCase(userRepo, txRunner)
	dashboardUC := appanalytics.NewDashboardUseCase(postgres.NewAnalyticsRepository(pool))
	materialUC := catalog.NewMaterialUseCase(materialRepo, txRunner, materialCache, log)
	sewingServiceUC := catalog.NewSewingServiceUseCase(serviceRepo)
	pricingUC := quoting.NewPricingUseCase(pgMaterials, serviceRepo, companyRepo, defaults)
	quoteUC := quoting.NewQuoteUseCase(quoteRepo, itemRepo, pgMaterials, serviceRepo, companyRepo, salespersonRepo, txRunner, defaults, log)
	pdfUC := quoting.NewPDFUseCase(quoteRepo, itemRepo, companyRepo, infrapdf.NewMarotoPDFGenerator())
	receivableUC := finance.NewReceivableUseCase(receivableRepo, notificationRepo, receiptStore, infraxlsx.NewInstallmentSheet())
	registerReceiptUC := finance.NewRegisterReceiptUseCase(
		receivableRepo, orderRepo, salespersonRepo, commissionRepo,
		ledgerRepo, notificationRepo, receiptStore, txRunner,
		finance.ReceiptConfig{
			DefaultCommission: cfg.Pricing.DefaultCommission,
			MaxReceiptBytes:   cfg.Receipt.MaxBytes,
		},
		log,
	)
	commissionUC := finance.NewCommissionUseCase(orderRepo, commissionRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		// Margem para o multipart além do próprio comprovante.
		BodyLimit: cfg.Receipt.MaxBytes + 1<<20,
	})
	app.Use(recover.New())

	// Swagger UI em http://localhost:<port>/docs quando o arquivo existe.
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Decora API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		CompanyUC:       companyUC,
		UserUC:          userUC,
		DashboardUC:     dashboardUC,
		MaterialUC:      materialUC,
		SewingServiceUC: sewingServiceUC,
		PricingUC:       pricingUC,
		QuoteUC:         quoteUC,
		PDFUC:           pdfUC,
		ReceivableUC:    receivableUC,
		RegisterReceipt: registerReceiptUC,
		CommissionUC:    commissionUC,
		ReceiptMaxBytes: cfg.Receipt.MaxBytes,
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

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
