package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-hotel-api/internal/application/analytics"
	"github.com/jhoicas/Inventario-hotel-api/internal/application/inventory"
	"github.com/jhoicas/Inventario-hotel-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC  *usecase.CategoryUseCase
	ItemUC      *usecase.ItemUseCase
	Ledger      *inventory.LedgerUseCase
	ReportUC    *analytics.ReportUseCase
	DashboardUC *analytics.DashboardUseCase
}

// Router registra las rutas de la API en la raíz y repetidas bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	h := handlers{
		category:  NewCategoryHandler(deps.CategoryUC),
		item:      NewItemHandler(deps.ItemUC, deps.Ledger),
		stock:     NewStockHandler(deps.Ledger),
		report:    NewReportHandler(deps.ReportUC),
		dashboard: NewDashboardHandler(deps.DashboardUC),
	}
	h.register(app)
	h.register(app.Group("/api"))
}

type handlers struct {
	category  *CategoryHandler
	item      *ItemHandler
	stock     *StockHandler
	report    *ReportHandler
	dashboard *DashboardHandler
}

func (h handlers) register(r fiber.Router) {
	// Categorías
	r.Post("/category", h.category.Create)
	r.Get("/category", h.category.List)
	r.Put("/category/:id", h.category.Update)
	r.Delete("/category/:id", h.category.Delete)

	// Ítems
	r.Post("/item", h.item.Create)
	r.Get("/item", h.item.List)
	r.Get("/item/:id", h.item.GetByID)
	r.Get("/item/:id/balance", h.item.Balance)
	r.Put("/item/:id", h.item.Update)
	r.Delete("/item/:id", h.item.Delete)

	// Libro de movimientos
	r.Post("/add", h.stock.Add)
	r.Post("/use", h.stock.Use)

	// Reportes
	r.Get("/report", h.report.Inventory)
	r.Get("/report/pdf", h.report.InventoryPDF)
	r.Get("/daily-usages", h.report.DailyUsage)
	r.Get("/monthly-usage", h.report.MonthlyUsage)
	r.Get("/summary", h.report.Summary)
	r.Get("/dashboard", h.dashboard.GetSummary)
}
