package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Inventario-hotel-api/internal/domain"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/inventory"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementa el libro en memoria (solo inserción).
type StockTransactionRepo struct {
	s  *Store
	tx *txState
}

// Create dentro de una transacción queda pendiente hasta el commit.
func (r *StockTransactionRepo) Create(_ context.Context, t *entity.StockTransaction) error {
	cp := *t
	if r.tx != nil {
		r.tx.txs = append(r.tx.txs, &cp)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[t.ItemID]; !ok {
		return domain.ErrNotFound
	}
	r.s.txs = append(r.s.txs, &cp)
	return nil
}

// ListByItem movimientos del ítem en [from, to), ordenados por fecha.
func (r *StockTransactionRepo) ListByItem(_ context.Context, itemID string, from, to *time.Time) ([]*entity.StockTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.StockTransaction, 0)
	for _, t := range r.s.txs {
		if t.ItemID != itemID {
			continue
		}
		if from != nil && t.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && !t.CreatedAt.Before(*to) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// SumByItem incluye los movimientos pendientes de la transacción en curso.
func (r *StockTransactionRepo) SumByItem(_ context.Context, itemID string) (inventory.Balance, error) {
	r.s.mu.RLock()
	var txs []*entity.StockTransaction
	for _, t := range r.s.txs {
		if t.ItemID == itemID {
			txs = append(txs, t)
		}
	}
	r.s.mu.RUnlock()
	if r.tx != nil {
		for _, t := range r.tx.txs {
			if t.ItemID == itemID {
				txs = append(txs, t)
			}
		}
	}
	return inventory.SumTransactions(txs), nil
}

func (r *StockTransactionRepo) SumAll(_ context.Context) (map[string]inventory.Balance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.sumsLocked(), nil
}

func (r *StockTransactionRepo) CountByItem(_ context.Context, itemID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, t := range r.s.txs {
		if t.ItemID == itemID {
			n++
		}
	}
	return n, nil
}
