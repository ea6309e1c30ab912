package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-hotel-api/internal/application/dto"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/report"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DateLayout formato de fecha aceptado por los reportes diarios.
const DateLayout = "2006-01-02"

// ReportUseCase agrega movimientos por ventana de tiempo. Solo lectura.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	itemRepo   repository.ItemRepository
	txRepo     repository.StockTransactionRepository
	pdf        InventoryPDFGenerator
	loc        *time.Location
	now        func() time.Time
}

// NewReportUseCase construye el caso de uso. loc nil usa la zona local del servidor.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	itemRepo repository.ItemRepository,
	txRepo repository.StockTransactionRepository,
	pdf InventoryPDFGenerator,
	loc *time.Location,
) *ReportUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &ReportUseCase{
		reportRepo: reportRepo,
		itemRepo:   itemRepo,
		txRepo:     txRepo,
		pdf:        pdf,
		loc:        loc,
		now:        time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// DailyUsage Σ OUT por ítem en [date 00:00, date+1 00:00). date en formato YYYY-MM-DD.
func (uc *ReportUseCase) DailyUsage(ctx context.Context, date string) ([]dto.UsageDTO, error) {
	d, err := time.ParseInLocation(DateLayout, date, uc.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha inválida %q", domain.ErrInvalidInput, date)
	}
	return uc.usage(ctx, report.Day(d))
}

// MonthlyUsage Σ OUT por ítem en [día 1, día 1 del mes siguiente).
func (uc *ReportUseCase) MonthlyUsage(ctx context.Context, year, month int) ([]dto.UsageDTO, error) {
	w, err := report.Month(year, time.Month(month), uc.loc)
	if err != nil {
		return nil, err
	}
	return uc.usage(ctx, w)
}

func (uc *ReportUseCase) usage(ctx context.Context, w report.Window) ([]dto.UsageDTO, error) {
	rows, err := uc.reportRepo.UsageByItem(ctx, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("reporte de consumo: %w", err)
	}
	out := make([]dto.UsageDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.UsageDTO{ItemName: r.ItemName, Unit: r.Unit, TotalUsed: r.TotalUsed})
	}
	return out, nil
}

// WindowedSummary agrupa los movimientos de la ventana por (ítem, categoría).
// Los grupos conservan el orden del primer movimiento de cada uno.
func (uc *ReportUseCase) WindowedSummary(ctx context.Context, kind string) (*dto.SummaryResponse, error) {
	w, err := report.ForKind(kind, uc.now().In(uc.loc))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: tipo de resumen %q (use daily, weekly o monthly)", domain.ErrInvalidInput, kind)
		}
		return nil, err
	}
	txs, err := uc.reportRepo.TransactionsInWindow(ctx, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("resumen: %w", err)
	}

	index := make(map[string]int)
	groups := make([]dto.SummaryGroupDTO, 0)
	for _, t := range txs {
		key := t.ItemID + "|" + t.CategoryID
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, dto.SummaryGroupDTO{
				Item:         t.ItemName,
				Category:     t.CategoryName,
				Unit:         t.Unit,
				TotalIn:      decimal.Zero,
				TotalOut:     decimal.Zero,
				Transactions: []dto.SummaryTransactionDTO{},
			})
		}
		g := &groups[i]
		switch t.Type {
		case entity.TransactionTypeIN:
			g.TotalIn = g.TotalIn.Add(t.Quantity)
		case entity.TransactionTypeOUT:
			g.TotalOut = g.TotalOut.Add(t.Quantity)
		}
		g.Transactions = append(g.Transactions, dto.SummaryTransactionDTO{
			Type:         t.Type,
			Quantity:     t.Quantity,
			Time:         t.CreatedAt,
			BalanceAfter: t.BalanceAfter,
			Remarks:      t.Remarks,
		})
	}

	return &dto.SummaryResponse{
		DateRange: dto.DateRangeDTO{Start: w.Start, End: w.EndInclusive},
		Data:      groups,
	}, nil
}

// InventoryReport saldo actual de cada ítem activo junto con los totales derivados del historial.
func (uc *ReportUseCase) InventoryReport(ctx context.Context) ([]dto.InventoryReportRowDTO, error) {
	items, err := uc.itemRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte de inventario: ítems: %w", err)
	}
	sums, err := uc.txRepo.SumAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte de inventario: totales: %w", err)
	}
	rows := make([]dto.InventoryReportRowDTO, 0, len(items))
	for _, it := range items {
		b := sums[it.ID]
		remaining := b.TotalIn.Sub(b.TotalOut)
		status := dto.StockStatusGood
		if it.IsLowStock() {
			status = dto.StockStatusLow
		}
		rows = append(rows, dto.InventoryReportRowDTO{
			ItemID:       it.ID,
			ItemName:     it.Name,
			Category:     it.CategoryName,
			Unit:         it.Unit,
			CurrentStock: it.CurrentStock,
			MinStock:     it.MinStockLevel,
			TotalIn:      b.TotalIn,
			TotalOut:     b.TotalOut,
			Remaining:    remaining,
			Status:       status,
			Consistent:   it.CurrentStock.Equal(remaining),
		})
	}
	return rows, nil
}

// InventoryReportPDF genera el reporte de inventario en PDF. Devuelve bytes y nombre de archivo.
func (uc *ReportUseCase) InventoryReportPDF(ctx context.Context) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", errors.New("reporte pdf: generador no configurado")
	}
	rows, err := uc.InventoryReport(ctx)
	if err != nil {
		return nil, "", err
	}
	now := uc.now().In(uc.loc)
	doc, err := uc.pdf.GenerateInventoryPDF(ctx, "Reporte de inventario", now, rows)
	if err != nil {
		return nil, "", fmt.Errorf("reporte pdf: %w", err)
	}
	return doc, fmt.Sprintf("inventario_%s.pdf", now.Format("20060102_1504")), nil
}
