package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcastro/stockpilot-api/internal/application/adjustments"
	"github.com/jmcastro/stockpilot-api/internal/application/auth"
	"github.com/jmcastro/stockpilot-api/internal/application/cyclecount"
	"github.com/jmcastro/stockpilot-api/internal/application/ledger"
	"github.com/jmcastro/stockpilot-api/internal/application/purchasing"
	"github.com/jmcastro/stockpilot-api/internal/application/reports"
	"github.com/jmcastro/stockpilot-api/internal/application/returns"
	"github.com/jmcastro/stockpilot-api/internal/application/sales"
	"github.com/jmcastro/stockpilot-api/internal/application/transfers"
	"github.com/jmcastro/stockpilot-api/internal/application/usecase"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	ProductUC    *usecase.ProductUseCase
	LocationUC   *usecase.LocationUseCase
	CategoryUC   *usecase.CategoryUseCase
	SupplierUC   *usecase.SupplierUseCase
	CustomerUC   *usecase.CustomerUseCase
	CompanyUC    *usecase.CompanyUseCase
	InventoryUC  *usecase.InventoryUseCase
	Ledger       *ledger.Service
	PurchasingUC *purchasing.UseCase
	SalesUC      *sales.UseCase
	ReturnsUC    *returns.UseCase
	TransfersUC  *transfers.UseCase
	AdjustUC     *adjustments.UseCase
	CycleCountUC *cyclecount.UseCase
	ReportsUC    *reports.UseCase
	JWTSecret    string
	Logger       *logger.Logger
	Env          string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	ConfigureErrors(deps.Logger, deps.Env)

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(entity.RoleAdmin)

	// Company (protegido)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	protected.Get("/company", companyHandler.Get)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Locations (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)

	// Inventory por ubicación y movimientos de stock (protegido)
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.InventoryUC)
	inventory := protected.Group("/inventory")
	inventory.Put("/", inventoryHandler.UpsertInventory)
	inventory.Get("/", inventoryHandler.ListInventory)
	movements := protected.Group("/stock-movements")
	movements.Post("/", inventoryHandler.CreateMovement)
	movements.Get("/", inventoryHandler.ListMovements)

	// Stock adjustments (protegido)
	adjGroup := protected.Group("/stock-adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustUC)
	adjGroup.Post("/", adjustmentHandler.Create)
	adjGroup.Get("/", adjustmentHandler.List)

	// Stock transfers (protegido)
	trfGroup := protected.Group("/stock-transfers")
	transferHandler := NewTransferHandler(deps.TransfersUC)
	trfGroup.Post("/", transferHandler.Create)
	trfGroup.Get("/", transferHandler.List)
	trfGroup.Get("/:id", transferHandler.GetByID)
	trfGroup.Patch("/:id/complete", transferHandler.Complete)

	// Purchase orders (protegido; aprobación y borrado solo admin)
	poGroup := protected.Group("/purchase-orders")
	poHandler := NewPurchaseOrderHandler(deps.PurchasingUC)
	poGroup.Post("/", poHandler.Create)
	poGroup.Get("/", poHandler.List)
	poGroup.Get("/:id", poHandler.GetByID)
	poGroup.Patch("/:id/status", admin, poHandler.UpdateStatus)
	poGroup.Post("/:id/receive", poHandler.Receive)
	poGroup.Delete("/:id", admin, poHandler.Delete)

	// Sales orders (protegido)
	soGroup := protected.Group("/sales-orders")
	soHandler := NewSalesOrderHandler(deps.SalesUC)
	soGroup.Post("/", soHandler.Create)
	soGroup.Get("/", soHandler.List)
	soGroup.Get("/:id", soHandler.GetByID)
	soGroup.Patch("/:id/status", soHandler.UpdateStatus)
	soGroup.Delete("/:id", admin, soHandler.Delete)

	// Returns (protegido; aprobación solo admin)
	retGroup := protected.Group("/returns")
	returnHandler := NewReturnHandler(deps.ReturnsUC)
	retGroup.Post("/", returnHandler.Create)
	retGroup.Get("/", returnHandler.List)
	retGroup.Get("/:id", returnHandler.GetByID)
	retGroup.Patch("/:id/status", admin, returnHandler.UpdateStatus)
	retGroup.Delete("/:id", admin, returnHandler.Delete)

	// Cycle counts (protegido)
	ccGroup := protected.Group("/cycle-counts")
	ccHandler := NewCycleCountHandler(deps.CycleCountUC)
	ccGroup.Post("/", ccHandler.Create)
	ccGroup.Get("/", ccHandler.List)
	ccGroup.Get("/:id", ccHandler.GetByID)
	ccGroup.Patch("/:id/items", ccHandler.SubmitItems)
	ccGroup.Patch("/:id/complete", ccHandler.Complete)
	ccGroup.Delete("/:id", admin, ccHandler.Delete)

	// Reports y alertas (protegido)
	reportHandler := NewReportHandler(deps.ReportsUC)
	repGroup := protected.Group("/reports")
	repGroup.Get("/usage", reportHandler.Usage)
	repGroup.Get("/dead-stock", reportHandler.DeadStock)
	repGroup.Get("/low-stock", reportHandler.LowStock)
	repGroup.Get("/inventory-value", reportHandler.InventoryValue)
	repGroup.Get("/top-at-risk", reportHandler.AtRisk)
	repGroup.Get("/top-cash-consuming", reportHandler.TopCashConsuming)
	repGroup.Get("/supplier-delays", reportHandler.SupplierDelays)
	alerts := protected.Group("/alerts")
	alerts.Get("/", reportHandler.ListAlerts)
	alerts.Post("/generate", reportHandler.GenerateAlerts)
	alerts.Delete("/:id", reportHandler.DismissAlert)
}
