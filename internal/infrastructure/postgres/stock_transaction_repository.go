package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/inventory"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementación del libro de movimientos sobre PostgreSQL (solo inserción).
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create agrega un movimiento al libro.
func (r *StockTransactionRepo) Create(ctx context.Context, t *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (id, item_id, category_id, user_id, type, quantity, balance_after, remarks, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, t.ID, t.ItemID, t.CategoryID, nullableUUID(t.UserID), t.Type,
		t.Quantity, t.BalanceAfter, t.Remarks, t.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

// ListByItem movimientos del ítem en [from, to) (límites opcionales), en orden cronológico.
func (r *StockTransactionRepo) ListByItem(ctx context.Context, itemID string, from, to *time.Time) ([]*entity.StockTransaction, error) {
	query := `
		SELECT id, item_id, category_id, user_id, type, quantity, balance_after, remarks, created_at
		FROM stock_transactions
		WHERE item_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3)
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, itemID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockTransaction, 0)
	for rows.Next() {
		var t entity.StockTransaction
		var userID *string
		if err := rows.Scan(&t.ID, &t.ItemID, &t.CategoryID, &userID, &t.Type, &t.Quantity,
			&t.BalanceAfter, &t.Remarks, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		if userID != nil {
			t.UserID = *userID
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

const sumColumns = `
	COALESCE(SUM(quantity) FILTER (WHERE type = 'IN'), 0),
	COALESCE(SUM(quantity) FILTER (WHERE type = 'OUT'), 0)`

// SumByItem Σ IN / Σ OUT del historial completo del ítem.
func (r *StockTransactionRepo) SumByItem(ctx context.Context, itemID string) (inventory.Balance, error) {
	var b inventory.Balance
	err := r.q.QueryRow(ctx, `SELECT `+sumColumns+` FROM stock_transactions WHERE item_id = $1`, itemID).
		Scan(&b.TotalIn, &b.TotalOut)
	if err != nil {
		return inventory.Balance{}, fmt.Errorf("sum stock transactions: %w", err)
	}
	b.Remaining = b.TotalIn.Sub(b.TotalOut)
	return b, nil
}

// SumAll Σ IN / Σ OUT agrupados por ítem.
func (r *StockTransactionRepo) SumAll(ctx context.Context) (map[string]inventory.Balance, error) {
	rows, err := r.q.Query(ctx, `SELECT item_id, `+sumColumns+` FROM stock_transactions GROUP BY item_id`)
	if err != nil {
		return nil, fmt.Errorf("sum all stock transactions: %w", err)
	}
	out := make(map[string]inventory.Balance)
	var (
		itemID string
		b      inventory.Balance
	)
	_, err = pgx.ForEachRow(rows, []any{&itemID, &b.TotalIn, &b.TotalOut}, func() error {
		b.Remaining = b.TotalIn.Sub(b.TotalOut)
		out[itemID] = b
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan stock sums: %w", err)
	}
	return out, nil
}

// CountByItem número de movimientos del ítem.
func (r *StockTransactionRepo) CountByItem(ctx context.Context, itemID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_transactions WHERE item_id = $1`, itemID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock transactions: %w", err)
	}
	return n, nil
}
