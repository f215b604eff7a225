package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"

	"github.com/chauhanravicr7-netizen/dockside-backend/docs"
	appanalytics "github.com/chauhanravicr7-netizen/dockside-backend/internal/application/analytics"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/auth"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/inventory"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/ports"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/purchasing"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/sales"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/usecase"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/infrastructure/memory"
	infrapdf "github.com/chauhanravicr7-netizen/dockside-backend/internal/infrastructure/pdf"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/infrastructure/postgres"
	httpRouter "github.com/chauhanravicr7-netizen/dockside-backend/internal/interfaces/http"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/scheduler"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/config"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/ids"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	// montos como números JSON, no strings
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()

	var (
		txRunner  ports.TxRunner
		repos     repository.Repositories
		analytics repository.AnalyticsRepository
	)
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		txRunner, repos, analytics = store, store.Repositories(), store.Analytics()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			n, err := postgres.Migrate(ctx, pool)
			if err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Int("aplicadas", n).Msg("migraciones al día")
		}
		txRunner = postgres.NewTxRunner(pool)
		repos = postgres.NewRepositories(pool)
		analytics = postgres.NewAnalyticsRepository(pool)
	}

	idp := ids.System{}
	ledger := inventory.NewStockLedger(txRunner, repos, idp, inventory.Policy{
		AllowNegativeStock: cfg.Inventory.AllowNegativeStock,
	})

	authUC := auth.NewAuthUseCase(txRunner, repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, idp)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.FrontendURL,
		AllowMethods:     "GET,POST,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		docs.SwaggerInfo.Host = cfg.HTTP.Addr()
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   usecase.NewCompanyUseCase(repos.Companies),
		UserUC:      usecase.NewUserUseCase(repos.Users, idp),
		ProductUC:   usecase.NewProductUseCase(repos.Products, repos.Suppliers, idp),
		CustomerUC:  usecase.NewCustomerUseCase(repos.Customers, idp),
		SupplierUC:  usecase.NewSupplierUseCase(repos.Suppliers, idp),
		Ledger:      ledger,
		PurchaseUC:  purchasing.NewPurchaseUseCase(txRunner, repos, ledger, idp),
		SaleUC:      sales.NewSaleUseCase(txRunner, repos, ledger, idp),
		SalePDF:     sales.NewPDFUseCase(repos, infrapdf.NewMarotoPDFGenerator()),
		DashboardUC: appanalytics.NewDashboardUseCase(analytics),
		InsightsUC:  appanalytics.NewInsightsUseCase(repos.Products),
		JWTSecret:   cfg.JWT.Secret,
	})

	var jobs *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobs = scheduler.New(repos.Products, nil)
		if err := jobs.Start(cfg.Scheduler.DaysInStockCron); err != nil {
			log.Fatal().Err(err).Msg("scheduler")
		}
	}

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
	if jobs != nil {
		jobs.Stop(shutdownCtx)
	}

	log.Info().Msg("aplicación detenida")
}
