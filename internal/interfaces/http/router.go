package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/decora-api/internal/application/analytics"
	"github.com/jhoicas/decora-api/internal/application/auth"
	"github.com/jhoicas/decora-api/internal/application/catalog"
	"github.com/jhoicas/decora-api/internal/application/finance"
	"github.com/jhoicas/decora-api/internal/application/quoting"
	"github.com/jhoicas/decora-api/internal/application/usecase"
	"github.com/jhoicas/decora-api/internal/domain/entity"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	DashboardUC     *appanalytics.DashboardUseCase
	CompanyUC       *usecase.CompanyUseCase
	UserUC          *usecase.UserUseCase
	MaterialUC      *catalog.MaterialUseCase
	SewingServiceUC *catalog.SewingServiceUseCase
	PricingUC       *quoting.PricingUseCase
	QuoteUC         *quoting.QuoteUseCase
	PDFUC           *quoting.PDFUseCase
	ReceivableUC    *finance.ReceivableUseCase
	RegisterReceipt *finance.RegisterReceiptUseCase
	CommissionUC    *finance.CommissionUseCase
	ReceiptMaxBytes int
	JWTSecret       string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	anyRole := RequireRole(entity.RoleAdmin, entity.RoleVendedor, entity.RoleFinanceiro)
	salesRoles := RequireRole(entity.RoleAdmin, entity.RoleVendedor)
	financeRoles := RequireRole(entity.RoleAdmin, entity.RoleFinanceiro)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Empresa e equipe
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.UserUC)
	protected.Get("/company", anyRole, companyHandler.Get)
	protected.Get("/company/pricing-settings", anyRole, companyHandler.PricingSettings)
	protected.Put("/company/pricing-settings", adminOnly, companyHandler.UpdatePricingSettings)
	protected.Get("/users", adminOnly, companyHandler.ListUsers)
	protected.Post("/users", adminOnly, companyHandler.CreateUser)

	// Catálogo: leitura para todos, escrita só admin
	materialHandler := NewMaterialHandler(deps.MaterialUC, deps.SewingServiceUC)
	materials := protected.Group("/materials")
	materials.Get("/", anyRole, materialHandler.List)
	materials.Get("/:id", anyRole, materialHandler.Get)
	materials.Get("/:id/prices", anyRole, materialHandler.PriceHistory)
	materials.Post("/", adminOnly, materialHandler.Create)
	materials.Put("/:id/price", adminOnly, materialHandler.UpdatePrice)
	materials.Delete("/:id", adminOnly, materialHandler.Archive)

	services := protected.Group("/sewing-services")
	services.Get("/", anyRole, materialHandler.ListSewingServices)
	services.Post("/", adminOnly, materialHandler.CreateSewingService)
	services.Post("/:id/curtain-types", adminOnly, materialHandler.LinkCurtainType)

	// Cálculos sem persistência
	pricingHandler := NewPricingHandler(deps.PricingUC)
	pricing := protected.Group("/pricing", salesRoles)
	pricing.Post("/items", pricingHandler.PreviewItem)
	pricing.Post("/markup", pricingHandler.Markup)
	pricing.Post("/wallpaper", pricingHandler.Wallpaper)

	// Orçamentos
	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.PDFUC)
	quotes := protected.Group("/quotes", salesRoles)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.Get)
	quotes.Delete("/:id", quoteHandler.Delete)
	quotes.Put("/:id/margin", quoteHandler.ChangeMargin)
	quotes.Patch("/:id/status", quoteHandler.ChangeStatus)
	quotes.Post("/:id/items", quoteHandler.AddItem)
	quotes.Put("/:id/items/:itemId", quoteHandler.UpdateItem)
	quotes.Delete("/:id/items/:itemId", quoteHandler.DeleteItem)
	quotes.Get("/:id/pdf", quoteHandler.DownloadPDF)

	// Financeiro
	receivableHandler := NewReceivableHandler(deps.ReceivableUC, deps.RegisterReceipt, deps.ReceiptMaxBytes)
	receivables := protected.Group("/receivables", financeRoles)
	receivables.Get("/", receivableHandler.List)
	receivables.Get("/:id", receivableHandler.Get)
	receivables.Get("/:id/export", receivableHandler.Export)
	protected.Post("/installments/:id/receipt", financeRoles, receivableHandler.RegisterReceipt)
	protected.Get("/receipts/:key", financeRoles, receivableHandler.GetReceipt)
	protected.Get("/notifications", anyRole, receivableHandler.Notifications)
	commissionHandler := NewCommissionHandler(deps.CommissionUC)
	protected.Get("/orders/:id/commissions", financeRoles, commissionHandler.ListByOrder)

	// Painel
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", financeRoles, dashboardHandler.GetSummary)
}
