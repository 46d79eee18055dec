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
	"github.com/jmcastro/stockpilot-api/internal/infrastructure/postgres"
	httpRouter "github.com/jmcastro/stockpilot-api/internal/interfaces/http"
	"github.com/jmcastro/stockpilot-api/pkg/config"
	"github.com/jmcastro/stockpilot-api/pkg/logger"
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
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (las operaciones transaccionales usan TxRunner)
	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	soRepo := postgres.NewSalesOrderRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	transferRepo := postgres.NewStockTransferRepository(pool)
	cycleCountRepo := postgres.NewCycleCountRepository(pool)
	adjustmentRepo := postgres.NewStockAdjustmentRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, companyRepo, cfg.JWT)
	productUC := usecase.NewProductUseCase(productRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	inventoryUC := usecase.NewInventoryUseCase(inventoryRepo)
	ledgerSvc := ledger.NewService(txRunner, movementRepo)
	purchasingUC := purchasing.NewUseCase(txRunner, poRepo)
	salesUC := sales.NewUseCase(txRunner, soRepo)
	returnsUC := returns.NewUseCase(txRunner, returnRepo)
	transfersUC := transfers.NewUseCase(txRunner, transferRepo)
	adjustUC := adjustments.NewUseCase(txRunner, adjustmentRepo)
	cycleCountUC := cyclecount.NewUseCase(txRunner, cycleCountRepo, inventoryRepo)
	reportsUC := reports.NewUseCase(reportRepo, alertRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StockPilot API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		LocationUC:   locationUC,
		CategoryUC:   categoryUC,
		SupplierUC:   supplierUC,
		CustomerUC:   customerUC,
		CompanyUC:    companyUC,
		InventoryUC:  inventoryUC,
		Ledger:       ledgerSvc,
		PurchasingUC: purchasingUC,
		SalesUC:      salesUC,
		ReturnsUC:    returnsUC,
		TransfersUC:  transfersUC,
		AdjustUC:     adjustUC,
		CycleCountUC: cycleCountUC,
		ReportsUC:    reportsUC,
		JWTSecret:    cfg.JWT.Secret,
		Logger:       log,
		Env:          cfg.App.Env,
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
