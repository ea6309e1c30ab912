// Package analytics contiene los casos de uso de reportes: consumo por ventana,
// resumen agregado, reporte de inventario y el dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-hotel-api/internal/application/dto"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/report"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardRecentLimit = 10 // movimientos en el widget de actividad reciente
	lowStockStatus       = "CRITICAL"
)

// DashboardUseCase genera la foto del inventario para el dashboard.
//
// Fuentes: repositorios de categorías, ítems y reportes (consultas read-only).
// La foto no es atómica: movimientos concurrentes pueden o no reflejarse.
type DashboardUseCase struct {
	categoryRepo repository.CategoryRepository
	itemRepo     repository.ItemRepository
	reportRepo   repository.ReportRepository
	loc          *time.Location
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc nil usa la zona local del servidor.
func NewDashboardUseCase(
	categoryRepo repository.CategoryRepository,
	itemRepo repository.ItemRepository,
	reportRepo repository.ReportRepository,
	loc *time.Location,
) *DashboardUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		reportRepo:   reportRepo,
		loc:          loc,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cinco consultas en paralelo:
//  1. CountActive(categorías)  → Summary.TotalCategories
//  2. CountActive(ítems)       → Summary.TotalItems
//  3. ListLowStock             → LowStockItems + Summary.LowStockCount
//  4. StatsByType(hoy)         → TodayStats
//  5. Recent(10)               → RecentActivity
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	today := report.Day(uc.now().In(uc.loc))

	var (
		totalCategories int
		totalItems      int
		lowStock        []*entity.Item
		stats           map[string]repository.TypeStats
		recent          []repository.RecentTransaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.categoryRepo.CountActive(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: categorías: %w", err)
		}
		totalCategories = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.itemRepo.CountActive(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: ítems: %w", err)
		}
		totalItems = n
		return nil
	})
	g.Go(func() error {
		items, err := uc.itemRepo.ListLowStock(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: stock bajo: %w", err)
		}
		lowStock = items
		return nil
	})
	g.Go(func() error {
		s, err := uc.reportRepo.StatsByType(gctx, today.Start, today.End)
		if err != nil {
			return fmt.Errorf("dashboard: movimientos de hoy: %w", err)
		}
		stats = s
		return nil
	})
	g.Go(func() error {
		r, err := uc.reportRepo.Recent(gctx, dashboardRecentLimit)
		if err != nil {
			return fmt.Errorf("dashboard: actividad reciente: %w", err)
		}
		recent = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.DashboardSummaryDTO{
		Summary: dto.DashboardCountsDTO{
			TotalCategories: totalCategories,
			TotalItems:      totalItems,
			LowStockCount:   len(lowStock),
		},
		LowStockItems:  make([]dto.LowStockItemDTO, 0, len(lowStock)),
		TodayStats:     make(map[string]dto.TypeStatsDTO, 2),
		RecentActivity: make([]dto.RecentActivityDTO, 0, len(recent)),
	}
	for _, it := range lowStock {
		out.LowStockItems = append(out.LowStockItems, dto.LowStockItemDTO{
			ID:      it.ID,
			Name:    it.Name,
			Current: it.CurrentStock,
			Min:     it.MinStockLevel,
			Unit:    it.Unit,
			Status:  lowStockStatus,
		})
	}
	// IN y OUT siempre presentes, aunque no haya movimientos hoy.
	for _, t := range []string{entity.TransactionTypeIN, entity.TransactionTypeOUT} {
		s, ok := stats[t]
		if !ok {
			s = repository.TypeStats{TotalQty: decimal.Zero}
		}
		out.TodayStats[t] = dto.TypeStatsDTO{Count: s.Count, TotalQty: s.TotalQty}
	}
	for _, r := range recent {
		out.RecentActivity = append(out.RecentActivity, dto.RecentActivityDTO{
			ID:           r.ID,
			ItemID:       r.ItemID,
			ItemName:     r.ItemName,
			UserID:       r.UserID,
			Username:     r.Username,
			Type:         r.Type,
			Quantity:     r.Quantity,
			BalanceAfter: r.BalanceAfter,
			Remarks:      r.Remarks,
			CreatedAt:    r.CreatedAt,
		})
	}
	return out, nil
}
