// Package memory implementa los puertos de persistencia en memoria.
// Se usa en pruebas y con STORAGE_DRIVER=memory; los datos se pierden al reiniciar.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// Store estado compartido por todos los repositorios en memoria.
//
// mu protege los mapas. Las operaciones del libro además toman el candado del ítem
// (itemLocks) durante toda la unidad atómica, igual que SELECT ... FOR UPDATE.
type Store struct {
	mu         sync.RWMutex
	categories map[string]*entity.Category
	items      map[string]*entity.Item
	txs        []*entity.StockTransaction
	users      map[string]*entity.User

	derived bool

	locksMu   sync.Mutex
	itemLocks map[string]chan struct{}
}

// NewStore crea un almacén vacío. En modo derived el stock de los ítems leídos
// se calcula como Σ IN − Σ OUT en lugar de usar el contador guardado.
func NewStore(mode inventory.StockMode) *Store {
	return &Store{
		categories: make(map[string]*entity.Category),
		items:      make(map[string]*entity.Item),
		users:      make(map[string]*entity.User),
		derived:    mode == inventory.StockModeDerived,
		itemLocks:  make(map[string]chan struct{}),
	}
}

// Categories repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Items repositorio de ítems fuera de transacción.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }

// Transactions repositorio del libro fuera de transacción.
func (s *Store) Transactions() *StockTransactionRepo { return &StockTransactionRepo{s: s} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Reports repositorio de consultas de reporte.
func (s *Store) Reports() *ReportRepo { return &ReportRepo{s: s} }

// TxRunner unidad atómica para el libro.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// lockItem toma el candado exclusivo del ítem o falla si ctx se cancela antes.
func (s *Store) lockItem(ctx context.Context, id string) error {
	s.locksMu.Lock()
	ch, ok := s.itemLocks[id]
	if !ok {
		ch = make(chan struct{}, 1)
		s.itemLocks[id] = ch
	}
	s.locksMu.Unlock()

	select {
	case ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) unlockItem(id string) {
	s.locksMu.Lock()
	ch := s.itemLocks[id]
	s.locksMu.Unlock()
	<-ch
}

// sumsLocked Σ IN / Σ OUT por ítem. Requiere s.mu tomado.
func (s *Store) sumsLocked() map[string]inventory.Balance {
	out := make(map[string]inventory.Balance)
	for _, t := range s.txs {
		b, ok := out[t.ItemID]
		if !ok {
			b = inventory.Balance{TotalIn: decimal.Zero, TotalOut: decimal.Zero}
		}
		if t.Type == entity.TransactionTypeIN {
			b.TotalIn = b.TotalIn.Add(t.Quantity)
		} else {
			b.TotalOut = b.TotalOut.Add(t.Quantity)
		}
		b.Remaining = b.TotalIn.Sub(b.TotalOut)
		out[t.ItemID] = b
	}
	return out
}

// viewItemLocked copia del ítem con el nombre de categoría resuelto y, en modo derived,
// el stock calculado desde sums. Requiere s.mu tomado.
func (s *Store) viewItemLocked(it *entity.Item, sums map[string]inventory.Balance) *entity.Item {
	cp := *it
	if c, ok := s.categories[it.CategoryID]; ok {
		cp.CategoryName = c.Name
	}
	if s.derived {
		cp.CurrentStock = sums[it.ID].Remaining
	}
	return &cp
}
