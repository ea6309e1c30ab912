package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/inventory"
)

// StockTransactionRepository define el puerto del libro de movimientos (solo inserción).
type StockTransactionRepository interface {
	Create(ctx context.Context, tx *entity.StockTransaction) error
	ListByItem(ctx context.Context, itemID string, from, to *time.Time) ([]*entity.StockTransaction, error)
	// SumByItem Σ IN / Σ OUT de todo el historial del ítem.
	SumByItem(ctx context.Context, itemID string) (inventory.Balance, error)
	// SumAll Σ IN / Σ OUT por ítem, para todos los ítems con movimientos.
	SumAll(ctx context.Context) (map[string]inventory.Balance, error)
	CountByItem(ctx context.Context, itemID string) (int, error)
}
