package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de reporte en memoria. Ventanas semiabiertas [start, end).
type ReportRepo struct {
	s *Store
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// UsageByItem Σ OUT por ítem, ordenado por nombre del ítem.
func (r *ReportRepo) UsageByItem(_ context.Context, start, end time.Time) ([]repository.UsageResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byItem := make(map[string]*repository.UsageResult)
	for _, t := range r.s.txs {
		if t.Type != entity.TransactionTypeOUT || !inWindow(t.CreatedAt, start, end) {
			continue
		}
		u, ok := byItem[t.ItemID]
		if !ok {
			u = &repository.UsageResult{ItemID: t.ItemID, TotalUsed: decimal.Zero}
			if it, ok := r.s.items[t.ItemID]; ok {
				u.ItemName = it.Name
				u.Unit = it.Unit
			}
			byItem[t.ItemID] = u
		}
		u.TotalUsed = u.TotalUsed.Add(t.Quantity)
	}
	out := make([]repository.UsageResult, 0, len(byItem))
	for _, u := range byItem {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ItemName != out[j].ItemName {
			return out[i].ItemName < out[j].ItemName
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out, nil
}

// TransactionsInWindow movimientos ordenados por fecha ascendente.
func (r *ReportRepo) TransactionsInWindow(_ context.Context, start, end time.Time) ([]repository.WindowTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]repository.WindowTransaction, 0)
	for _, t := range r.s.txs {
		if !inWindow(t.CreatedAt, start, end) {
			continue
		}
		w := repository.WindowTransaction{
			ItemID:       t.ItemID,
			CategoryID:   t.CategoryID,
			Type:         t.Type,
			Quantity:     t.Quantity,
			BalanceAfter: t.BalanceAfter,
			Remarks:      t.Remarks,
			CreatedAt:    t.CreatedAt,
		}
		if it, ok := r.s.items[t.ItemID]; ok {
			w.ItemName = it.Name
			w.Unit = it.Unit
		}
		if c, ok := r.s.categories[t.CategoryID]; ok {
			w.CategoryName = c.Name
		}
		out = append(out, w)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ReportRepo) StatsByType(_ context.Context, start, end time.Time) (map[string]repository.TypeStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]repository.TypeStats)
	for _, t := range r.s.txs {
		if !inWindow(t.CreatedAt, start, end) {
			continue
		}
		st, ok := out[t.Type]
		if !ok {
			st.TotalQty = decimal.Zero
		}
		st.Count++
		st.TotalQty = st.TotalQty.Add(t.Quantity)
		out[t.Type] = st
	}
	return out, nil
}

// Recent los limit movimientos más recientes, del más nuevo al más viejo.
func (r *ReportRepo) Recent(_ context.Context, limit int) ([]repository.RecentTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sorted := make([]*entity.StockTransaction, len(r.s.txs))
	copy(sorted, r.s.txs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]repository.RecentTransaction, 0, len(sorted))
	for _, t := range sorted {
		rt := repository.RecentTransaction{
			ID:           t.ID,
			ItemID:       t.ItemID,
			UserID:       t.UserID,
			Type:         t.Type,
			Quantity:     t.Quantity,
			BalanceAfter: t.BalanceAfter,
			Remarks:      t.Remarks,
			CreatedAt:    t.CreatedAt,
		}
		if it, ok := r.s.items[t.ItemID]; ok {
			rt.ItemName = it.Name
		}
		if u, ok := r.s.users[t.UserID]; ok {
			rt.Username = u.Username
		}
		out = append(out, rt)
	}
	return out, nil
}
