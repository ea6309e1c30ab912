package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /dashboard.
type DashboardSummaryDTO struct {
	Summary        DashboardCountsDTO      `json:"summary"`
	LowStockItems  []LowStockItemDTO       `json:"lowStockItems"`
	TodayStats     map[string]TypeStatsDTO `json:"todayStats"` // clave: IN | OUT
	RecentActivity []RecentActivityDTO     `json:"recentActivity"`
}

// DashboardCountsDTO contadores de catálogo.
type DashboardCountsDTO struct {
	TotalCategories int `json:"totalCategories"`
	TotalItems      int `json:"totalItems"`
	LowStockCount   int `json:"lowStockCount"`
}

// LowStockItemDTO ítem con saldo en o bajo el mínimo.
type LowStockItemDTO struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Current decimal.Decimal `json:"current"`
	Min     decimal.Decimal `json:"min"`
	Unit    string          `json:"unit"`
	Status  string          `json:"status"` // CRITICAL
}

// TypeStatsDTO movimientos de hoy por tipo.
type TypeStatsDTO struct {
	Count    int             `json:"count"`
	TotalQty decimal.Decimal `json:"totalQty"`
}

// RecentActivityDTO movimiento reciente con ítem y usuario resueltos.
type RecentActivityDTO struct {
	ID           string          `json:"id"`
	ItemID       string          `json:"itemId"`
	ItemName     string          `json:"itemName"`
	UserID       string          `json:"userId,omitempty"`
	Username     string          `json:"username,omitempty"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Remarks      string          `json:"remarks,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}
