package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	TransactionTypeIN  = "IN"  // entrada
	TransactionTypeOUT = "OUT" // salida / consumo
)

// StockTransaction es un registro inmutable del libro de movimientos.
// Nunca se actualiza ni se borra; CategoryID se copia del ítem al momento de escribir.
type StockTransaction struct {
	ID           string
	ItemID       string
	CategoryID   string
	UserID       string // opcional
	Type         string
	Quantity     decimal.Decimal // siempre positiva
	BalanceAfter decimal.Decimal
	Remarks      string
	CreatedAt    time.Time
}

// Signed devuelve la cantidad con signo según el tipo (+IN, −OUT).
func (t *StockTransaction) Signed() decimal.Decimal {
	if t.Type == TransactionTypeOUT {
		return t.Quantity.Neg()
	}
	return t.Quantity
}
