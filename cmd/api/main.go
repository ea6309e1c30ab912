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
	"github.com/jhoicas/Inventario-hotel-api/internal/application/analytics"
	"github.com/jhoicas/Inventario-hotel-api/internal/application/inventory"
	"github.com/jhoicas/Inventario-hotel-api/internal/application/usecase"
	domaininv "github.com/jhoicas/Inventario-hotel-api/internal/domain/inventory"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/repository"
	"github.com/jhoicas/Inventario-hotel-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Inventario-hotel-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-hotel-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Inventario-hotel-api/internal/interfaces/http"
	"github.com/jhoicas/Inventario-hotel-api/pkg/config"
	"github.com/jhoicas/Inventario-hotel-api/pkg/logger"
)

// storage repositorios del driver elegido (postgres o memory).
type storage struct {
	categories repository.CategoryRepository
	items      repository.ItemRepository
	txs        repository.StockTransactionRepository
	users      repository.UserRepository
	reports    repository.ReportRepository
	txRunner   inventory.TxRunner
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config, mode domaininv.StockMode, log *logger.Logger) (*storage, error) {
	if cfg.DB.Driver == "memory" {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore(mode)
		return &storage{
			categories: s.Categories(),
			items:      s.Items(),
			txs:        s.Transactions(),
			users:      s.Users(),
			reports:    s.Reports(),
			txRunner:   s.TxRunner(),
			close:      func() {},
		}, nil
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DB); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	derived := mode == domaininv.StockModeDerived
	return &storage{
		categories: postgres.NewCategoryRepository(pool),
		items:      postgres.NewItemRepository(pool, derived),
		txs:        postgres.NewStockTransactionRepository(pool),
		users:      postgres.NewUserRepository(pool),
		reports:    postgres.NewReportRepository(pool),
		txRunner:   postgres.NewTxRunner(pool, derived),
		close:      pool.Close,
	}, nil
}

// seedMemoryAdmin crea el administrador SEED_ADMIN_* en el almacén en memoria, que
// empieza vacío en cada arranque y no pasa por cmd/seed.
func seedMemoryAdmin(ctx context.Context, users *usecase.UserUseCase, cfg config.SeedConfig, log *logger.Logger) error {
	res, err := users.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return err
	}
	if res.User == nil {
		log.Warn().Msg("SEED_ADMIN_PASSWORD vacío: sin usuarios, los movimientos con userId responden 404")
		return nil
	}
	log.Info().Str("username", res.User.Username).Str("id", res.User.ID).Msg("usuario administrador disponible")
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})

	mode, err := domaininv.ParseStockMode(cfg.Inventory.StockMode)
	if err != nil {
		log.Fatal().Err(err).Msg("LEDGER_STOCK_MODE")
	}
	policy, err := usecase.ParseDeletePolicy(cfg.Inventory.CategoryDeletePolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("CATEGORY_DELETE_POLICY")
	}
	loc, err := cfg.Inventory.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("REPORT_TIMEZONE")
	}

	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.DB.Driver).
		Str("stock_mode", string(mode)).
		Str("timezone", loc.String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, mode, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	if cfg.DB.Driver == "memory" {
		if err := seedMemoryAdmin(ctx, usecase.NewUserUseCase(store.users), cfg.Seed, log); err != nil {
			log.Fatal().Err(err).Msg("crear usuario administrador")
		}
	}

	ledgerUC := inventory.NewLedgerUseCase(store.txRunner, store.items, store.txs, store.users, mode, log.Component("ledger"))
	categoryUC := usecase.NewCategoryUseCase(store.categories, store.items, policy)
	itemUC := usecase.NewItemUseCase(store.items, store.categories, store.txs)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	reportUC := analytics.NewReportUseCase(store.reports, store.items, store.txs, pdfGenerator, loc)
	dashboardUC := analytics.NewDashboardUseCase(store.categories, store.items, store.reports, loc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(log.Component("http").Middleware())

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Inventario Hotel API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("documento swagger no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:  categoryUC,
		ItemUC:      itemUC,
		Ledger:      ledgerUC,
		ReportUC:    reportUC,
		DashboardUC: dashboardUC,
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
