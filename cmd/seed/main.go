// seed carga el catálogo inicial (categorías e ítems) desde un CSV y crea el usuario
// administrador si no existe.
//
// Uso: go run ./cmd/seed [-latin1] [ruta/catalogo.csv]
// Formato por línea: categoria;item;unidad;stockMinimo (la cabecera es opcional).
// Con -latin1 el archivo se lee como ISO-8859-1 (exportaciones de Excel en Windows).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/Inventario-hotel-api/internal/application/dto"
	"github.com/jhoicas/Inventario-hotel-api/internal/application/usecase"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/inventory"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/repository"
	"github.com/jhoicas/Inventario-hotel-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-hotel-api/pkg/config"
	"github.com/jhoicas/Inventario-hotel-api/pkg/logger"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	latin1 := flag.Bool("latin1", false, "leer el CSV como ISO-8859-1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Component("seed")
	if cfg.DB.Driver != "postgres" {
		log.Fatal().Str("driver", cfg.DB.Driver).Msg("el seed requiere STORAGE_DRIVER=postgres")
	}
	mode, err := inventory.ParseStockMode(cfg.Inventory.StockMode)
	if err != nil {
		log.Fatal().Err(err).Msg("LEDGER_STOCK_MODE")
	}

	if err := postgres.RunMigrations(cfg.DB); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	derived := mode == inventory.StockModeDerived
	categoryRepo := postgres.NewCategoryRepository(pool)
	itemRepo := postgres.NewItemRepository(pool, derived)
	seeder := &catalogSeeder{
		categories: usecase.NewCategoryUseCase(categoryRepo, itemRepo, usecase.DeletePolicyBlock),
		items:      usecase.NewItemUseCase(itemRepo, categoryRepo, postgres.NewStockTransactionRepository(pool)),
		lookup:     categoryRepo,
		known:      make(map[string]string),
		log:        log,
	}

	if path := flag.Arg(0); path != "" {
		f, err := os.Open(path)
		if err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("abrir CSV")
		}
		var r io.Reader = f
		if *latin1 {
			r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
		}
		rows, err := parseCatalog(r)
		_ = f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("leer CSV")
		}
		stats, err := seeder.seed(ctx, rows)
		if err != nil {
			log.Fatal().Err(err).Msg("cargar catálogo")
		}
		log.Info().
			Int("categorias", stats.categories).
			Int("items", stats.items).
			Int("omitidos", stats.skipped).
			Msg("catálogo cargado")
	}

	users := usecase.NewUserUseCase(postgres.NewUserRepository(pool))
	if err := seedAdmin(ctx, users, cfg.Seed, log); err != nil {
		log.Fatal().Err(err).Msg("usuario administrador")
	}
}

type seedStats struct {
	categories, items, skipped int
}

// catalogSeeder crea categorías e ítems a través de los casos de uso, para aplicar
// las mismas validaciones que la API.
type catalogSeeder struct {
	categories *usecase.CategoryUseCase
	items      *usecase.ItemUseCase
	lookup     repository.CategoryRepository
	known      map[string]string // nombre de categoría -> id
	log        *logger.Logger
}

func (s *catalogSeeder) seed(ctx context.Context, rows []catalogRow) (seedStats, error) {
	var st seedStats
	for _, row := range rows {
		categoryID, created, err := s.ensureCategory(ctx, row.Category)
		if err != nil {
			return st, fmt.Errorf("categoría %q: %w", row.Category, err)
		}
		if created {
			st.categories++
		}
		_, err = s.items.Create(ctx, dto.CreateItemRequest{
			Name:          row.Item,
			Unit:          row.Unit,
			MinStockLevel: &row.MinStockLevel,
			CategoryID:    categoryID,
		})
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			s.log.Debug().Str("item", row.Item).Msg("ítem ya existe, se omite")
			st.skipped++
		case err != nil:
			return st, fmt.Errorf("línea %d, ítem %q: %w", row.Line, row.Item, err)
		default:
			st.items++
		}
	}
	return st, nil
}

func (s *catalogSeeder) ensureCategory(ctx context.Context, name string) (string, bool, error) {
	if id, ok := s.known[name]; ok {
		return id, false, nil
	}
	out, err := s.categories.Create(ctx, dto.CreateCategoryRequest{Name: name})
	if err == nil {
		s.known[name] = out.ID
		return out.ID, true, nil
	}
	if !errors.Is(err, domain.ErrDuplicate) {
		return "", false, err
	}
	list, _, err := s.lookup.List(ctx, repository.CategoryFilter{Search: name, Limit: dto.MaxLimit})
	if err != nil {
		return "", false, err
	}
	for _, c := range list {
		if c.Name == name {
			s.known[name] = c.ID
			return c.ID, false, nil
		}
	}
	return "", false, fmt.Errorf("existe pero está inactiva: %w", domain.ErrConflict)
}

func seedAdmin(ctx context.Context, users *usecase.UserUseCase, cfg config.SeedConfig, log *logger.Logger) error {
	res, err := users.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return err
	}
	switch {
	case res.Created:
		log.Info().Str("username", res.User.Username).Str("id", res.User.ID).Msg("usuario administrador creado")
	case res.User == nil:
		log.Warn().Msg("SEED_ADMIN_PASSWORD vacío, no se crea el usuario administrador")
	case !res.PasswordMatches:
		log.Warn().Str("username", res.User.Username).Msg("el administrador existe con otra contraseña; no se modifica")
	default:
		log.Info().Str("username", res.User.Username).Msg("usuario administrador ya existe")
	}
	return nil
}
