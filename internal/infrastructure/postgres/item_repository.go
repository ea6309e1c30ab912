package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const (
	counterStockExpr = `i.current_stock`
	derivedStockExpr = `COALESCE((
		SELECT SUM(CASE WHEN t.type = 'IN' THEN t.quantity ELSE -t.quantity END)
		FROM stock_transactions t WHERE t.item_id = i.id), 0)`
)

var itemOrderColumns = map[string]string{
	repository.ItemSortCreatedAt:     "i.created_at",
	repository.ItemSortName:          "i.name",
	repository.ItemSortCurrentStock:  "current_stock",
	repository.ItemSortMinStockLevel: "i.min_stock_level",
	repository.ItemSortUnit:          "i.unit",
}

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
// En modo derived current_stock se lee como Σ IN − Σ OUT en lugar de la columna.
type ItemRepo struct {
	q         Querier
	stockExpr string
}

// NewItemRepository construye el adaptador de persistencia para ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier, derived bool) *ItemRepo {
	expr := counterStockExpr
	if derived {
		expr = derivedStockExpr
	}
	return &ItemRepo{q: q, stockExpr: expr}
}

func (r *ItemRepo) selectFrom(stockExpr string) string {
	return `SELECT i.id, i.name, i.category_id, COALESCE(c.name, ''), i.unit, i.min_stock_level, ` +
		stockExpr + ` AS current_stock, i.is_active, i.created_at, i.updated_at
		FROM items i LEFT JOIN categories c ON c.id = i.category_id`
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(&it.ID, &it.Name, &it.CategoryID, &it.CategoryName, &it.Unit, &it.MinStockLevel,
		&it.CurrentStock, &it.IsActive, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func collectItems(rows pgx.Rows) ([]*entity.Item, error) {
	defer rows.Close()
	list := make([]*entity.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Create persiste un nuevo ítem. CurrentStock inicia en 0.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	query := `
		INSERT INTO items (id, name, category_id, unit, min_stock_level, current_stock, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, it.ID, it.Name, it.CategoryID, it.Unit, it.MinStockLevel,
		it.CurrentStock, it.IsActive, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID (activo o no).
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, r.selectFrom(r.stockExpr)+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetForUpdate obtiene el ítem y bloquea su fila (SELECT ... FOR UPDATE) hasta el fin de la tx.
// Siempre devuelve la columna current_stock: en modo derived la suma se lee después, en otra
// sentencia, para que vea los movimientos confirmados mientras se esperaba el bloqueo.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, r.selectFrom(counterStockExpr)+` WHERE i.id = $1 FOR UPDATE OF i`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isLockTimeout(err) {
			return nil, fmt.Errorf("ítem %s bloqueado por otro movimiento: %w", id, domain.ErrConflict)
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return it, nil
}

// Update actualiza datos descriptivos del ítem; no toca current_stock.
func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	query := `
		UPDATE items SET name = $2, category_id = $3, unit = $4, min_stock_level = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, it.ID, it.Name, it.CategoryID, it.Unit, it.MinStockLevel, it.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock escribe el saldo corriente (modo contador).
func (r *ItemRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE items SET current_stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update item stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List ítems activos con filtros, orden y paginación.
func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.Item, int, error) {
	conds := []string{"i.is_active"}
	args := []any{}
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		conds = append(conds, fmt.Sprintf("i.name ILIKE $%d", len(args)))
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		conds = append(conds, fmt.Sprintf("i.category_id = $%d", len(args)))
	}
	if f.LowStock {
		conds = append(conds, r.stockExpr+" <= i.min_stock_level")
	}
	where := " WHERE " + strings.Join(conds, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM items i`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	col, ok := itemOrderColumns[f.SortBy]
	if !ok {
		col = itemOrderColumns[repository.ItemSortCreatedAt]
	}
	dir := "DESC"
	if f.SortAsc {
		dir = "ASC"
	}
	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`%s%s ORDER BY %s %s, i.id LIMIT $%d OFFSET $%d`,
		r.selectFrom(r.stockExpr), where, col, dir, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	list, err := collectItems(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListActive todos los ítems activos, ordenados por nombre.
func (r *ItemRepo) ListActive(ctx context.Context) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, r.selectFrom(r.stockExpr)+` WHERE i.is_active ORDER BY i.name`)
	if err != nil {
		return nil, fmt.Errorf("list active items: %w", err)
	}
	return collectItems(rows)
}

// ListLowStock ítems activos con stock <= mínimo, ordenados por nombre.
func (r *ItemRepo) ListLowStock(ctx context.Context) ([]*entity.Item, error) {
	query := r.selectFrom(r.stockExpr) + ` WHERE i.is_active AND ` + r.stockExpr + ` <= i.min_stock_level ORDER BY i.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list low stock items: %w", err)
	}
	return collectItems(rows)
}

// CountActive número de ítems activos.
func (r *ItemRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM items WHERE is_active`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active items: %w", err)
	}
	return n, nil
}

// CountByCategory ítems que referencian la categoría; onlyActive excluye los borrados lógicamente.
func (r *ItemRepo) CountByCategory(ctx context.Context, categoryID string, onlyActive bool) (int, error) {
	query := `SELECT COUNT(*) FROM items WHERE category_id = $1`
	if onlyActive {
		query += ` AND is_active`
	}
	var n int
	if err := r.q.QueryRow(ctx, query, categoryID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items by category: %w", err)
	}
	return n, nil
}

// SoftDelete marca el ítem como inactivo.
func (r *ItemRepo) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE items SET is_active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el ítem. La FK de stock_transactions impide borrar ítems con movimientos.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrItemHasTransactions
		}
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
