package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-hotel-api/internal/domain"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementa repository.ItemRepository en memoria.
// Con tx != nil está atado a una unidad atómica de TxRunner.
type ItemRepo struct {
	s  *Store
	tx *txState
}

func (r *ItemRepo) nameTakenLocked(name, exceptID string) bool {
	for _, it := range r.s.items {
		if it.Name == name && it.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *ItemRepo) Create(_ context.Context, it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[it.CategoryID]; !ok {
		return domain.ErrNotFound
	}
	if r.nameTakenLocked(it.Name, "") {
		return domain.ErrDuplicate
	}
	cp := *it
	cp.CategoryName = ""
	r.s.items[it.ID] = &cp
	return nil
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return r.s.viewItemLocked(it, r.s.sumsLocked()), nil
}

// GetForUpdate toma el candado del ítem hasta el fin de la unidad atómica.
// Fuera de una transacción se comporta como GetByID con el contador guardado.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	r.s.mu.RLock()
	_, exists := r.s.items[id]
	r.s.mu.RUnlock()
	if !exists {
		return nil, nil
	}
	if r.tx != nil && !r.tx.holds(id) {
		if err := r.s.lockItem(ctx, id); err != nil {
			return nil, err
		}
		r.tx.locked = append(r.tx.locked, id)
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	if c, ok := r.s.categories[it.CategoryID]; ok {
		cp.CategoryName = c.Name
	}
	if r.tx != nil {
		if v, ok := r.tx.stock[id]; ok {
			cp.CurrentStock = v
		}
	}
	return &cp, nil
}

func (r *ItemRepo) Update(_ context.Context, it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.items[it.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.categories[it.CategoryID]; !ok {
		return domain.ErrNotFound
	}
	if r.nameTakenLocked(it.Name, it.ID) {
		return domain.ErrDuplicate
	}
	cur.Name = it.Name
	cur.CategoryID = it.CategoryID
	cur.Unit = it.Unit
	cur.MinStockLevel = it.MinStockLevel
	cur.UpdatedAt = it.UpdatedAt
	return nil
}

// UpdateStock dentro de una transacción queda pendiente hasta el commit.
func (r *ItemRepo) UpdateStock(_ context.Context, id string, stock decimal.Decimal) error {
	if r.tx != nil {
		r.tx.stock[id] = stock
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.CurrentStock = stock
	return nil
}

func (r *ItemRepo) List(_ context.Context, f repository.ItemFilter) ([]*entity.Item, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sums := r.s.sumsLocked()
	search := strings.ToLower(f.Search)
	var all []*entity.Item
	for _, it := range r.s.items {
		if !it.IsActive {
			continue
		}
		if f.CategoryID != "" && it.CategoryID != f.CategoryID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(it.Name), search) {
			continue
		}
		v := r.s.viewItemLocked(it, sums)
		if f.LowStock && !v.IsLowStock() {
			continue
		}
		all = append(all, v)
	}
	sortItems(all, f.SortBy, f.SortAsc)
	return paginate(all, f.Offset, f.Limit), len(all), nil
}

func (r *ItemRepo) ListActive(_ context.Context) ([]*entity.Item, error) {
	return r.collect(func(it *entity.Item) bool { return true }), nil
}

func (r *ItemRepo) ListLowStock(_ context.Context) ([]*entity.Item, error) {
	return r.collect(func(it *entity.Item) bool { return it.IsLowStock() }), nil
}

// collect ítems activos que cumplen keep, ordenados por nombre.
func (r *ItemRepo) collect(keep func(*entity.Item) bool) []*entity.Item {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sums := r.s.sumsLocked()
	out := make([]*entity.Item, 0)
	for _, it := range r.s.items {
		if !it.IsActive {
			continue
		}
		if v := r.s.viewItemLocked(it, sums); keep(v) {
			out = append(out, v)
		}
	}
	sortItems(out, repository.ItemSortName, true)
	return out
}

func (r *ItemRepo) CountActive(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, it := range r.s.items {
		if it.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *ItemRepo) CountByCategory(_ context.Context, categoryID string, onlyActive bool) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, it := range r.s.items {
		if it.CategoryID == categoryID && (!onlyActive || it.IsActive) {
			n++
		}
	}
	return n, nil
}

func (r *ItemRepo) SoftDelete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.IsActive = false
	it.UpdatedAt = time.Now()
	return nil
}

// Delete borrado físico; falla si el ítem tiene movimientos.
// Espera el candado del ítem, así un movimiento en curso termina antes del borrado
// (equivale al DELETE bloqueado por el FOR UPDATE en PostgreSQL).
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	if r.tx == nil || !r.tx.holds(id) {
		if err := r.s.lockItem(ctx, id); err != nil {
			return err
		}
		defer r.s.unlockItem(id)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return domain.ErrNotFound
	}
	for _, t := range r.s.txs {
		if t.ItemID == id {
			return domain.ErrItemHasTransactions
		}
	}
	delete(r.s.items, id)
	return nil
}

func sortItems(list []*entity.Item, by string, asc bool) {
	less := func(a, b *entity.Item) int {
		switch by {
		case repository.ItemSortName:
			return strings.Compare(a.Name, b.Name)
		case repository.ItemSortUnit:
			return strings.Compare(a.Unit, b.Unit)
		case repository.ItemSortCurrentStock:
			return a.CurrentStock.Cmp(b.CurrentStock)
		case repository.ItemSortMinStockLevel:
			return a.MinStockLevel.Cmp(b.MinStockLevel)
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		c := less(list[i], list[j])
		if c == 0 {
			return list[i].ID < list[j].ID
		}
		if asc {
			return c < 0
		}
		return c > 0
	})
}
