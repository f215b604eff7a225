package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/chauhanravicr7-netizen/dockside-backend/internal/application/analytics"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/auth"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/inventory"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/purchasing"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/sales"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/usecase"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	CustomerUC  *usecase.CustomerUseCase
	SupplierUC  *usecase.SupplierUseCase
	Ledger      *inventory.StockLedger
	PurchaseUC  *purchasing.PurchaseUseCase
	SaleUC      *sales.SaleUseCase
	SalePDF     *sales.PDFUseCase
	DashboardUC *appanalytics.DashboardUseCase
	InsightsUC  *appanalytics.InsightsUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	managers := RequireRole(entity.RoleCompanyAdmin, entity.RoleManager)

	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.UserUC)
	protected.Get("/company", companyHandler.GetCurrent)
	users := protected.Group("/users")
	users.Get("/", companyHandler.ListUsers)
	users.Post("/", RequireRole(entity.RoleCompanyAdmin), companyHandler.CreateUser)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Ledger)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/ledger", productHandler.Ledger)

	movements := protected.Group("/stock-movements")
	movementHandler := NewMovementHandler(deps.Ledger)
	movements.Get("/", movementHandler.List)
	movements.Post("/", managers, movementHandler.Create)

	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Patch("/:id/status", managers, purchaseHandler.UpdateStatus)

	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.SalePDF)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/pdf", saleHandler.DownloadPDF)
	salesGroup.Patch("/:id/status", managers, saleHandler.UpdateStatus)

	partnerHandler := NewPartnerHandler(deps.CustomerUC, deps.SupplierUC)
	customers := protected.Group("/customers")
	customers.Post("/", partnerHandler.CreateCustomer)
	customers.Get("/", partnerHandler.ListCustomers)
	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", partnerHandler.CreateSupplier)
	suppliers.Get("/", partnerHandler.ListSuppliers)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.InsightsUC)
	protected.Get("/dashboard/financial", dashboardHandler.Financial)
	protected.Post("/ai/insights", dashboardHandler.Insights)
}
