// Package inventory contiene las reglas puras del libro de stock (servicio de dominio):
// validación de cantidades, aplicación de entradas/salidas y saldo derivado de movimientos.
package inventory

import (
	"fmt"

	"github.com/jhoicas/Inventario-hotel-api/internal/domain"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// QuantityScale decimales admitidos en cantidades (NUMERIC(14,3)).
const QuantityScale = 3

// MaxQuantity mayor valor representable en NUMERIC(14,3); vale para cantidades y saldos.
var MaxQuantity = decimal.RequireFromString("99999999999.999")

// Balance saldo derivado del historial de movimientos de un ítem.
type Balance struct {
	TotalIn   decimal.Decimal
	TotalOut  decimal.Decimal
	Remaining decimal.Decimal
}

// ValidateQuantity exige 0 < cantidad <= MaxQuantity y como máximo QuantityScale decimales.
func ValidateQuantity(qty decimal.Decimal) error {
	if !qty.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if !qty.Equal(qty.Round(QuantityScale)) {
		return domain.ErrInvalidInput
	}
	if qty.GreaterThan(MaxQuantity) {
		return fmt.Errorf("%w: cantidad mayor que %s", domain.ErrInvalidInput, MaxQuantity)
	}
	return nil
}

// ApplyIn devuelve el saldo después de una entrada. Falla si el saldo superaría MaxQuantity.
func ApplyIn(current, qty decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateQuantity(qty); err != nil {
		return current, err
	}
	next := current.Add(qty)
	if next.GreaterThan(MaxQuantity) {
		return current, fmt.Errorf("%w: el saldo superaría %s", domain.ErrInvalidInput, MaxQuantity)
	}
	return next, nil
}

// ApplyOut devuelve el saldo después de una salida. Nunca deja el saldo negativo:
// si qty > current devuelve *domain.InsufficientStockError.
func ApplyOut(current, qty decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateQuantity(qty); err != nil {
		return current, err
	}
	if qty.GreaterThan(current) {
		return current, &domain.InsufficientStockError{Current: current, Requested: qty}
	}
	return current.Sub(qty), nil
}

// SumTransactions calcula Σ IN, Σ OUT y el saldo restante.
func SumTransactions(txs []*entity.StockTransaction) Balance {
	b := Balance{TotalIn: decimal.Zero, TotalOut: decimal.Zero}
	for _, t := range txs {
		if t.Type == entity.TransactionTypeIN {
			b.TotalIn = b.TotalIn.Add(t.Quantity)
		} else {
			b.TotalOut = b.TotalOut.Add(t.Quantity)
		}
	}
	b.Remaining = b.TotalIn.Sub(b.TotalOut)
	return b
}

// LowStockAlert devuelve el aviso de stock bajo o "" si el saldo está sobre el mínimo.
// El umbral es inclusivo: saldo == mínimo ya cuenta como bajo.
func LowStockAlert(item *entity.Item, balance decimal.Decimal) string {
	if balance.GreaterThan(item.MinStockLevel) {
		return ""
	}
	return fmt.Sprintf("⚠️ Alert: %s stock is low! Remaining: %s %s", item.Name, balance.String(), item.Unit)
}

// StockMode fuente autoritativa del saldo corriente.
type StockMode string

const (
	// StockModeCounter Item.CurrentStock se mantiene en cada movimiento; la suma del historial es control cruzado.
	StockModeCounter StockMode = "counter"
	// StockModeDerived no se mantiene contador: el saldo siempre es Σ IN − Σ OUT.
	StockModeDerived StockMode = "derived"
)

// ParseStockMode interpreta el modo configurado; vacío equivale a counter.
func ParseStockMode(s string) (StockMode, error) {
	switch StockMode(s) {
	case "", StockModeCounter:
		return StockModeCounter, nil
	case StockModeDerived:
		return StockModeDerived, nil
	}
	return "", fmt.Errorf("modo de stock desconocido %q: %w", s, domain.ErrInvalidInput)
}
