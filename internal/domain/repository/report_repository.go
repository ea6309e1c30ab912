package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// UsageResult consumo (Σ OUT) de un ítem en una ventana.
type UsageResult struct {
	ItemID    string
	ItemName  string
	Unit      string
	TotalUsed decimal.Decimal
}

// WindowTransaction movimiento de la ventana con los datos del ítem y su categoría ya resueltos.
type WindowTransaction struct {
	ItemID       string
	ItemName     string
	CategoryID   string
	CategoryName string
	Unit         string
	Type         string
	Quantity     decimal.Decimal
	BalanceAfter decimal.Decimal
	Remarks      string
	CreatedAt    time.Time
}

// TypeStats conteo y cantidad total de movimientos de un tipo.
type TypeStats struct {
	Count    int
	TotalQty decimal.Decimal
}

// RecentTransaction movimiento reciente con ítem y usuario resueltos para mostrar.
type RecentTransaction struct {
	ID           string
	ItemID       string
	ItemName     string
	UserID       string
	Username     string
	Type         string
	Quantity     decimal.Decimal
	BalanceAfter decimal.Decimal
	Remarks      string
	CreatedAt    time.Time
}

// ReportRepository consultas de solo lectura para reportes y dashboard.
// Todas las ventanas son semiabiertas: start <= created_at < end.
type ReportRepository interface {
	// UsageByItem Σ OUT agrupado por ítem.
	UsageByItem(ctx context.Context, start, end time.Time) ([]UsageResult, error)
	// TransactionsInWindow todos los movimientos (IN y OUT) de la ventana, ordenados por fecha.
	TransactionsInWindow(ctx context.Context, start, end time.Time) ([]WindowTransaction, error)
	// StatsByType conteo y Σ cantidad por tipo desde start hasta end.
	StatsByType(ctx context.Context, start, end time.Time) (map[string]TypeStats, error)
	// Recent los `limit` movimientos más recientes (created_at DESC).
	Recent(ctx context.Context, limit int) ([]RecentTransaction, error)
}
