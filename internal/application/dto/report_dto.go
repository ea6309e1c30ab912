package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UsageDTO consumo de un ítem en la ventana (Σ OUT).
type UsageDTO struct {
	ItemName  string          `json:"itemName"`
	Unit      string          `json:"unit"`
	TotalUsed decimal.Decimal `json:"totalUsed"`
}

// UsageReportResponse respuesta de GET /daily-usages y GET /monthly-usage.
type UsageReportResponse struct {
	Message string     `json:"message"`
	Report  []UsageDTO `json:"report"`
}

// SummaryTransactionDTO movimiento dentro de un grupo del resumen.
type SummaryTransactionDTO struct {
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Time         time.Time       `json:"time"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Remarks      string          `json:"remarks,omitempty"`
}

// SummaryGroupDTO totales por (ítem, categoría) y sus movimientos.
type SummaryGroupDTO struct {
	Item         string                  `json:"item"`
	Category     string                  `json:"category"`
	Unit         string                  `json:"unit"`
	TotalIn      decimal.Decimal         `json:"totalIn"`
	TotalOut     decimal.Decimal         `json:"totalOut"`
	Transactions []SummaryTransactionDTO `json:"transactions"`
}

// DateRangeDTO ventana usada por el reporte (fin inclusivo).
type DateRangeDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SummaryResponse respuesta de GET /summary.
type SummaryResponse struct {
	DateRange DateRangeDTO      `json:"dateRange"`
	Data      []SummaryGroupDTO `json:"data"`
}

// Estados del reporte de inventario.
const (
	StockStatusLow  = "Low Stock"
	StockStatusGood = "Good"
)

// InventoryReportRowDTO fila de GET /report: saldo actual y totales derivados del historial.
type InventoryReportRowDTO struct {
	ItemID       string          `json:"itemId"`
	ItemName     string          `json:"itemName"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	MinStock     decimal.Decimal `json:"minStockLevel"`
	TotalIn      decimal.Decimal `json:"totalIn"`
	TotalOut     decimal.Decimal `json:"totalOut"`
	Remaining    decimal.Decimal `json:"remaining"`
	Status       string          `json:"status"`
	Consistent   bool            `json:"consistent"`
}
