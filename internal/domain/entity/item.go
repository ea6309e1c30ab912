package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un insumo del hotel/restaurante.
// CurrentStock es el saldo corriente desnormalizado: siempre igual a Σ IN − Σ OUT de sus movimientos.
// En modo "derived" se calcula al leer y la columna no se mantiene.
type Item struct {
	ID            string
	Name          string // único
	CategoryID    string
	CategoryName  string // solo lectura (JOIN)
	Unit          string // kg, lt, unidad...
	MinStockLevel decimal.Decimal // punto de reorden (>= 0)
	CurrentStock  decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el saldo está en o por debajo del mínimo (umbral inclusivo).
func (i *Item) IsLowStock() bool {
	return i.CurrentStock.LessThanOrEqual(i.MinStockLevel)
}
