package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/inventory"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/repository"
	"github.com/jhoicas/Inventario-hotel-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func addCategory(t *testing.T, s *memory.Store, name string) *entity.Category {
	t.Helper()
	c := &entity.Category{ID: uuid.NewString(), Name: name, IsActive: true, CreatedAt: base, UpdatedAt: base}
	require.NoError(t, s.Categories().Create(context.Background(), c))
	return c
}

func addItem(t *testing.T, s *memory.Store, cat *entity.Category, name, stock, min string, created time.Time) *entity.Item {
	t.Helper()
	it := &entity.Item{
		ID: uuid.NewString(), Name: name, CategoryID: cat.ID, Unit: "kg",
		MinStockLevel: dec(min), CurrentStock: dec(stock), IsActive: true,
		CreatedAt: created, UpdatedAt: created,
	}
	require.NoError(t, s.Items().Create(context.Background(), it))
	return it
}

func addTx(t *testing.T, s *memory.Store, it *entity.Item, typ, qty string, at time.Time) {
	t.Helper()
	require.NoError(t, s.Transactions().Create(context.Background(), &entity.StockTransaction{
		ID: uuid.NewString(), ItemID: it.ID, CategoryID: it.CategoryID,
		Type: typ, Quantity: dec(qty), BalanceAfter: decimal.Zero, CreatedAt: at,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_ErrorRevierteTodo(t *testing.T) {
	s := memory.NewStore(inventory.StockModeCounter)
	it := addItem(t, s, addCategory(t, s, "Bar"), "Ron", "5", "1", base)
	boom := errors.New("boom")

	err := s.TxRunner().Run(context.Background(), func(ctx context.Context, items repository.ItemRepository, txs repository.StockTransactionRepository) error {
		locked, err := items.GetForUpdate(ctx, it.ID)
		require.NoError(t, err)
		require.NoError(t, items.UpdateStock(ctx, locked.ID, dec("9")))
		require.NoError(t, txs.Create(ctx, &entity.StockTransaction{ID: uuid.NewString(), ItemID: it.ID, Type: entity.TransactionTypeIN, Quantity: dec("4"), CreatedAt: base}))

		// Dentro de la unidad se ven las escrituras pendientes
		again, err := items.GetForUpdate(ctx, it.ID)
		require.NoError(t, err)
		assert.True(t, dec("9").Equal(again.CurrentStock))
		sum, err := txs.SumByItem(ctx, it.ID)
		require.NoError(t, err)
		assert.True(t, dec("4").Equal(sum.TotalIn))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Items().GetByID(context.Background(), it.ID)
	require.NoError(t, err)
	assert.True(t, dec("5").Equal(got.CurrentStock), "el saldo no cambia tras el rollback")
	n, err := s.Transactions().CountByItem(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTxRunner_CandadoRespetaContexto(t *testing.T) {
	s := memory.NewStore(inventory.StockModeCounter)
	it := addItem(t, s, addCategory(t, s, "Bar"), "Ron", "5", "1", base)

	holding := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- s.TxRunner().Run(context.Background(), func(ctx context.Context, items repository.ItemRepository, _ repository.StockTransactionRepository) error {
			if _, err := items.GetForUpdate(ctx, it.ID); err != nil {
				return err
			}
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := s.TxRunner().Run(ctx, func(ctx context.Context, items repository.ItemRepository, _ repository.StockTransactionRepository) error {
		_, err := items.GetForUpdate(ctx, it.ID)
		return err
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded, "el segundo bloqueo espera hasta que vence el contexto")

	close(release)
	require.NoError(t, <-done)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryRepo_ListYDuplicados(t *testing.T) {
	s := memory.NewStore(inventory.StockModeCounter)
	ctx := context.Background()
	addCategory(t, s, "Limpieza")
	lac := addCategory(t, s, "Lácteos")
	addCategory(t, s, "Bar")

	err := s.Categories().Create(ctx, &entity.Category{ID: uuid.NewString(), Name: "Bar", IsActive: true})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, total, err := s.Categories().List(ctx, repository.CategoryFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 2)
	assert.Equal(t, "Bar", list[0].Name)

	list, total, err = s.Categories().List(ctx, repository.CategoryFilter{Search: "LÁC", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, lac.ID, list[0].ID)

	require.NoError(t, s.Categories().SoftDelete(ctx, lac.ID))
	n, err := s.Categories().CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, _, err = s.Categories().List(ctx, repository.CategoryFilter{Offset: 10, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestItemRepo_ListFiltraYOrdena(t *testing.T) {
	s := memory.NewStore(inventory.StockModeCounter)
	ctx := context.Background()
	cocina := addCategory(t, s, "Cocina")
	bar := addCategory(t, s, "Bar")
	arroz := addItem(t, s, cocina, "Arroz", "2", "5", base)
	addItem(t, s, cocina, "Aceite", "10", "3", base.Add(time.Hour))
	ron := addItem(t, s, bar, "Ron", "1", "1", base.Add(2*time.Hour))

	list, total, err := s.Items().List(ctx, repository.ItemFilter{SortBy: repository.ItemSortCreatedAt, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, ron.ID, list[0].ID, "createdAt descendente por defecto")
	assert.Equal(t, "Bar", list[0].CategoryName)

	list, _, err = s.Items().List(ctx, repository.ItemFilter{SortBy: repository.ItemSortCurrentStock, SortAsc: true, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ron", "Arroz", "Aceite"}, names(list))

	list, total, err = s.Items().List(ctx, repository.ItemFilter{LowStock: true, SortBy: repository.ItemSortName, SortAsc: true, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total, "el umbral es inclusivo")
	assert.Equal(t, []string{"Arroz", "Ron"}, names(list))

	list, _, err = s.Items().List(ctx, repository.ItemFilter{CategoryID: cocina.ID, Search: "arr", Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, arroz.ID, list[0].ID)

	low, err := s.Items().ListLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Arroz", "Ron"}, names(low))

	n, err := s.Items().CountByCategory(ctx, cocina.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.ErrorIs(t, s.Categories().Delete(ctx, bar.ID), domain.ErrCategoryInUse)
}

func TestItemRepo_DeleteConMovimientos(t *testing.T) {
	s := memory.NewStore(inventory.StockModeCounter)
	ctx := context.Background()
	it := addItem(t, s, addCategory(t, s, "Cocina"), "Sal", "0", "1", base)
	addTx(t, s, it, entity.TransactionTypeIN, "1", base)

	assert.ErrorIs(t, s.Items().Delete(ctx, it.ID), domain.ErrItemHasTransactions)
	require.NoError(t, s.Items().SoftDelete(ctx, it.ID))
	n, err := s.Items().CountActive(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestItemRepo_DeleteEsperaAlMovimientoEnCurso(t *testing.T) {
	s := memory.NewStore(inventory.StockModeCounter)
	it := addItem(t, s, addCategory(t, s, "Cocina"), "Azúcar", "0", "1", base)

	err := s.TxRunner().Run(context.Background(), func(ctx context.Context, items repository.ItemRepository, txs repository.StockTransactionRepository) error {
		if _, err := items.GetForUpdate(ctx, it.ID); err != nil {
			return err
		}

		// Con el ítem bloqueado el borrado físico no avanza
		delCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, s.Items().Delete(delCtx, it.ID), context.DeadlineExceeded)

		if err := items.UpdateStock(ctx, it.ID, dec("5")); err != nil {
			return err
		}
		return txs.Create(ctx, &entity.StockTransaction{
			ID: uuid.NewString(), ItemID: it.ID, CategoryID: it.CategoryID,
			Type: entity.TransactionTypeIN, Quantity: dec("5"), BalanceAfter: dec("5"), CreatedAt: base,
		})
	})
	require.NoError(t, err)

	got, err := s.Items().GetByID(context.Background(), it.ID)
	require.NoError(t, err)
	require.NotNil(t, got, "el movimiento confirmado conserva su ítem")
	assert.True(t, dec("5").Equal(got.CurrentStock))

	// Ya confirmado, el borrado ve el movimiento y lo rechaza
	assert.ErrorIs(t, s.Items().Delete(context.Background(), it.ID), domain.ErrItemHasTransactions)
}

func TestItemRepo_DeleteSinMovimientosLiberaElCandado(t *testing.T) {
	s := memory.NewStore(inventory.StockModeCounter)
	cat := addCategory(t, s, "Cocina")
	it := addItem(t, s, cat, "Pimienta", "0", "1", base)

	require.NoError(t, s.Items().Delete(context.Background(), it.ID))
	got, err := s.Items().GetByID(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Un movimiento posterior no queda colgado del candado: encuentra el ítem borrado
	err = s.TxRunner().Run(context.Background(), func(ctx context.Context, items repository.ItemRepository, _ repository.StockTransactionRepository) error {
		locked, err := items.GetForUpdate(ctx, it.ID)
		require.NoError(t, err)
		assert.Nil(t, locked)
		return nil
	})
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestReportRepo_VentanasSemiabiertas(t *testing.T) {
	s := memory.NewStore(inventory.StockModeCounter)
	ctx := context.Background()
	cat := addCategory(t, s, "Cocina")
	arroz := addItem(t, s, cat, "Arroz", "0", "1", base)
	aceite := addItem(t, s, cat, "Aceite", "0", "1", base)

	start := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	addTx(t, s, arroz, entity.TransactionTypeIN, "10", start)
	addTx(t, s, arroz, entity.TransactionTypeOUT, "2", start.Add(9*time.Hour))
	addTx(t, s, aceite, entity.TransactionTypeOUT, "1.5", end.Add(-time.Millisecond))
	addTx(t, s, arroz, entity.TransactionTypeOUT, "3", end) // día siguiente

	usage, err := s.Reports().UsageByItem(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, "Aceite", usage[0].ItemName)
	assert.True(t, dec("1.5").Equal(usage[0].TotalUsed))
	assert.True(t, dec("2").Equal(usage[1].TotalUsed), "la salida de D+1 00:00 no cuenta")

	txs, err := s.Reports().TransactionsInWindow(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, "Cocina", txs[0].CategoryName)
	assert.True(t, txs[0].CreatedAt.Before(txs[2].CreatedAt))

	stats, err := s.Reports().StatsByType(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, 1, stats[entity.TransactionTypeIN].Count)
	assert.Equal(t, 2, stats[entity.TransactionTypeOUT].Count)
	assert.True(t, dec("3.5").Equal(stats[entity.TransactionTypeOUT].TotalQty))

	recent, err := s.Reports().Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, end, recent[0].CreatedAt)
	assert.Equal(t, "Arroz", recent[0].ItemName)
}

func TestStore_ModoDerivadoCalculaStock(t *testing.T) {
	s := memory.NewStore(inventory.StockModeDerived)
	ctx := context.Background()
	it := addItem(t, s, addCategory(t, s, "Cocina"), "Harina", "0", "2", base)
	addTx(t, s, it, entity.TransactionTypeIN, "5", base)
	addTx(t, s, it, entity.TransactionTypeOUT, "3.5", base.Add(time.Minute))

	got, err := s.Items().GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.True(t, dec("1.5").Equal(got.CurrentStock))
	assert.True(t, got.IsLowStock())

	sums, err := s.Transactions().SumAll(ctx)
	require.NoError(t, err)
	assert.True(t, dec("1.5").Equal(sums[it.ID].Remaining))

	from := base.Add(30 * time.Second)
	list, err := s.Transactions().ListByItem(ctx, it.ID, &from, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.TransactionTypeOUT, list[0].Type)
}

func names(list []*entity.Item) []string {
	out := make([]string, 0, len(list))
	for _, it := range list {
		out = append(out, it.Name)
	}
	return out
}
