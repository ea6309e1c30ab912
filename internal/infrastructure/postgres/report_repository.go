package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas read-only para reportes y dashboard. Ventanas semiabiertas [start, end).
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// UsageByItem Σ OUT por ítem en la ventana.
func (r *ReportRepo) UsageByItem(ctx context.Context, start, end time.Time) ([]repository.UsageResult, error) {
	query := `
		SELECT t.item_id, i.name, i.unit, SUM(t.quantity)
		FROM stock_transactions t
		JOIN items i ON i.id = t.item_id
		WHERE t.type = 'OUT' AND t.created_at >= $1 AND t.created_at < $2
		GROUP BY t.item_id, i.name, i.unit
		ORDER BY i.name, t.item_id`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("usage by item: %w", err)
	}
	out := make([]repository.UsageResult, 0)
	var u repository.UsageResult
	_, err = pgx.ForEachRow(rows, []any{&u.ItemID, &u.ItemName, &u.Unit, &u.TotalUsed}, func() error {
		out = append(out, u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan usage: %w", err)
	}
	return out, nil
}

// TransactionsInWindow movimientos de la ventana con ítem y categoría resueltos.
func (r *ReportRepo) TransactionsInWindow(ctx context.Context, start, end time.Time) ([]repository.WindowTransaction, error) {
	query := `
		SELECT t.item_id, i.name, t.category_id, COALESCE(c.name, ''), i.unit,
		       t.type, t.quantity, t.balance_after, t.remarks, t.created_at
		FROM stock_transactions t
		JOIN items i ON i.id = t.item_id
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.created_at >= $1 AND t.created_at < $2
		ORDER BY t.created_at, t.id`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("transactions in window: %w", err)
	}
	out := make([]repository.WindowTransaction, 0)
	var w repository.WindowTransaction
	_, err = pgx.ForEachRow(rows, []any{
		&w.ItemID, &w.ItemName, &w.CategoryID, &w.CategoryName, &w.Unit,
		&w.Type, &w.Quantity, &w.BalanceAfter, &w.Remarks, &w.CreatedAt,
	}, func() error {
		out = append(out, w)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan window transaction: %w", err)
	}
	return out, nil
}

// StatsByType conteo y Σ cantidad por tipo en la ventana.
func (r *ReportRepo) StatsByType(ctx context.Context, start, end time.Time) (map[string]repository.TypeStats, error) {
	query := `
		SELECT type, COUNT(*), COALESCE(SUM(quantity), 0)
		FROM stock_transactions
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY type`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("stats by type: %w", err)
	}
	out := make(map[string]repository.TypeStats)
	var (
		typ string
		st  repository.TypeStats
	)
	_, err = pgx.ForEachRow(rows, []any{&typ, &st.Count, &st.TotalQty}, func() error {
		out[typ] = st
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan stats: %w", err)
	}
	return out, nil
}

// Recent los limit movimientos más recientes con nombre de ítem y usuario.
func (r *ReportRepo) Recent(ctx context.Context, limit int) ([]repository.RecentTransaction, error) {
	query := `
		SELECT t.id, t.item_id, i.name, COALESCE(t.user_id::text, ''), COALESCE(u.username, ''),
		       t.type, t.quantity, t.balance_after, t.remarks, t.created_at
		FROM stock_transactions t
		JOIN items i ON i.id = t.item_id
		LEFT JOIN users u ON u.id = t.user_id
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent transactions: %w", err)
	}
	out := make([]repository.RecentTransaction, 0, limit)
	var rt repository.RecentTransaction
	_, err = pgx.ForEachRow(rows, []any{
		&rt.ID, &rt.ItemID, &rt.ItemName, &rt.UserID, &rt.Username,
		&rt.Type, &rt.Quantity, &rt.BalanceAfter, &rt.Remarks, &rt.CreatedAt,
	}, func() error {
		out = append(out, rt)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan recent transaction: %w", err)
	}
	return out, nil
}
