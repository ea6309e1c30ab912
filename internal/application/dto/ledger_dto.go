package dto

import "github.com/shopspring/decimal"

// StockMovementRequest body para POST /add y POST /use.
type StockMovementRequest struct {
	ItemID   string          `json:"itemId" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	Remarks  string          `json:"remarks" validate:"max=500"`
	UserID   string          `json:"userId"`
}

// AddStockResponse respuesta de POST /add.
type AddStockResponse struct {
	Message      string          `json:"message"`
	CurrentStock decimal.Decimal `json:"currentStock"`
}

// UseStockResponse respuesta de POST /use. Alert es null si el saldo queda sobre el mínimo.
type UseStockResponse struct {
	Message      string          `json:"message"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	Alert        *string         `json:"alert"`
}

// BalanceResponse contraste del contador desnormalizado con la suma del historial.
type BalanceResponse struct {
	ItemID       string          `json:"itemId"`
	ItemName     string          `json:"itemName"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	TotalIn      decimal.Decimal `json:"totalIn"`
	TotalOut     decimal.Decimal `json:"totalOut"`
	Remaining    decimal.Decimal `json:"remaining"`
	Consistent   bool            `json:"consistent"`
}
