package memory

import (
	"context"

	"github.com/jhoicas/Inventario-hotel-api/internal/application/inventory"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// txState escrituras pendientes de una unidad atómica y candados tomados.
type txState struct {
	stock  map[string]decimal.Decimal
	txs    []*entity.StockTransaction
	locked []string
}

func (st *txState) holds(id string) bool {
	for _, l := range st.locked {
		if l == id {
			return true
		}
	}
	return false
}

// TxRunner implementa inventory.TxRunner sobre el Store. Las escrituras se aplican
// solo si fn termina sin error; los candados de ítem se liberan al final en ambos casos.
type TxRunner struct {
	s *Store
}

// Run ejecuta fn dentro de una unidad atómica.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ctx context.Context,
	itemRepo repository.ItemRepository,
	txRepo repository.StockTransactionRepository,
) error) error {
	st := &txState{stock: make(map[string]decimal.Decimal)}
	defer func() {
		for _, id := range st.locked {
			r.s.unlockItem(id)
		}
	}()

	if err := fn(ctx, &ItemRepo{s: r.s, tx: st}, &StockTransactionRepo{s: r.s, tx: st}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, v := range st.stock {
		if it, ok := r.s.items[id]; ok {
			it.CurrentStock = v
		}
	}
	r.s.txs = append(r.s.txs, st.txs...)
	return nil
}
