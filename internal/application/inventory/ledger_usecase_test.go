package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-hotel-api/internal/application/inventory"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-hotel-api/internal/domain/inventory"
	"github.com/jhoicas/Inventario-hotel-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var modes = []domaininv.StockMode{domaininv.StockModeCounter, domaininv.StockModeDerived}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store  *memory.Store
	ledger *inventory.LedgerUseCase
	item   *entity.Item
}

// newFixture crea un store con una categoría y un ítem "Leche" (mínimo 5 lt, stock 0).
func newFixture(t *testing.T, mode domaininv.StockMode) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore(mode)
	now := time.Now()

	cat := &entity.Category{ID: uuid.NewString(), Name: "Lácteos", IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Categories().Create(ctx, cat))
	item := &entity.Item{
		ID:            uuid.NewString(),
		Name:          "Leche",
		CategoryID:    cat.ID,
		Unit:          "lt",
		MinStockLevel: dec("5"),
		CurrentStock:  decimal.Zero,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, store.Items().Create(ctx, item))

	ledger := inventory.NewLedgerUseCase(store.TxRunner(), store.Items(), store.Transactions(), store.Users(), mode, nil)
	return &fixture{store: store, ledger: ledger, item: item}
}

func (f *fixture) move(t *testing.T, in bool, qty string) (*inventory.MovementResult, error) {
	t.Helper()
	input := inventory.MovementInput{ItemID: f.item.ID, Quantity: dec(qty)}
	if in {
		return f.ledger.AddStock(context.Background(), input)
	}
	return f.ledger.UseStock(context.Background(), input)
}

func (f *fixture) txCount(t *testing.T) int {
	t.Helper()
	n, err := f.store.Transactions().CountByItem(context.Background(), f.item.ID)
	require.NoError(t, err)
	return n
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas y salidas
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_EntradaSalidaYAlerta(t *testing.T) {
	for _, mode := range modes {
		t.Run(string(mode), func(t *testing.T) {
			f := newFixture(t, mode)

			res, err := f.move(t, true, "10")
			require.NoError(t, err)
			assert.True(t, dec("10").Equal(res.NewBalance))
			assert.Empty(t, res.Alert, "las entradas no generan alerta")
			assert.Equal(t, entity.TransactionTypeIN, res.Transaction.Type)

			res, err = f.move(t, false, "7")
			require.NoError(t, err)
			assert.True(t, dec("3").Equal(res.NewBalance))
			assert.True(t, dec("3").Equal(res.Transaction.BalanceAfter))
			assert.Equal(t, "⚠️ Alert: Leche stock is low! Remaining: 3 lt", res.Alert)

			// Salida mayor al saldo: rechazada sin escribir nada
			_, err = f.move(t, false, "4")
			var stockErr *domain.InsufficientStockError
			require.True(t, errors.As(err, &stockErr), "se esperaba InsufficientStockError, fue %v", err)
			assert.True(t, dec("3").Equal(stockErr.Current))
			assert.True(t, dec("4").Equal(stockErr.Requested))
			assert.Equal(t, 2, f.txCount(t), "la salida rechazada no deja movimiento")

			check, err := f.ledger.VerifyBalance(context.Background(), f.item.ID)
			require.NoError(t, err)
			assert.True(t, dec("3").Equal(check.CurrentStock))
			assert.True(t, dec("10").Equal(check.Balance.TotalIn))
			assert.True(t, dec("7").Equal(check.Balance.TotalOut))
			assert.True(t, check.Consistent)
		})
	}
}

func TestLedger_SalidaSobreElMinimoSinAlerta(t *testing.T) {
	f := newFixture(t, domaininv.StockModeCounter)
	_, err := f.move(t, true, "20")
	require.NoError(t, err)

	res, err := f.move(t, false, "14.999")
	require.NoError(t, err)
	assert.True(t, dec("5.001").Equal(res.NewBalance))
	assert.Empty(t, res.Alert)
}

func TestLedger_CantidadInvalidaNoEscribe(t *testing.T) {
	for _, qty := range []string{"0", "-2", "1.2345", "100000000000"} {
		f := newFixture(t, domaininv.StockModeCounter)
		_, err := f.move(t, true, qty)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %s", qty)
		_, err = f.move(t, false, qty)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %s", qty)
		assert.Equal(t, 0, f.txCount(t))
	}
}

func TestLedger_EntradaQueDesbordaElSaldoNoEscribe(t *testing.T) {
	for _, mode := range []domaininv.StockMode{domaininv.StockModeCounter, domaininv.StockModeDerived} {
		t.Run(string(mode), func(t *testing.T) {
			f := newFixture(t, mode)
			_, err := f.move(t, true, "99999999999")
			require.NoError(t, err)

			_, err = f.move(t, true, "1")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, 1, f.txCount(t))
			item, err := f.store.Items().GetByID(context.Background(), f.item.ID)
			require.NoError(t, err)
			assert.True(t, dec("99999999999").Equal(item.CurrentStock))
		})
	}
}

func TestLedger_ItemInexistenteOInactivo(t *testing.T) {
	f := newFixture(t, domaininv.StockModeCounter)
	ctx := context.Background()

	_, err := f.ledger.AddStock(ctx, inventory.MovementInput{ItemID: uuid.NewString(), Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.ledger.AddStock(ctx, inventory.MovementInput{ItemID: "no-es-uuid", Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, f.store.Items().SoftDelete(ctx, f.item.ID))
	_, err = f.move(t, true, "1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "un ítem inactivo no acepta movimientos")
}

func TestLedger_Usuario(t *testing.T) {
	f := newFixture(t, domaininv.StockModeCounter)
	ctx := context.Background()

	_, err := f.ledger.AddStock(ctx, inventory.MovementInput{ItemID: f.item.ID, Quantity: dec("1"), UserID: uuid.NewString()})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = f.ledger.AddStock(ctx, inventory.MovementInput{ItemID: f.item.ID, Quantity: dec("1"), UserID: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, f.txCount(t))

	user := &entity.User{ID: uuid.NewString(), Username: "chef", Role: entity.RoleStaff, IsActive: true}
	require.NoError(t, f.store.Users().Create(ctx, user))
	res, err := f.ledger.AddStock(ctx, inventory.MovementInput{
		ItemID: f.item.ID, Quantity: dec("1"), UserID: user.ID, Remarks: "  compra semanal ",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, res.Transaction.UserID)
	assert.Equal(t, "compra semanal", res.Transaction.Remarks)
	assert.Equal(t, f.item.CategoryID, res.Transaction.CategoryID, "la categoría se copia al movimiento")
}

func TestLedger_UsaElReloj(t *testing.T) {
	f := newFixture(t, domaininv.StockModeCounter)
	fixed := time.Date(2024, time.May, 2, 9, 30, 0, 0, time.UTC)
	f.ledger.WithClock(func() time.Time { return fixed })

	res, err := f.move(t, true, "1")
	require.NoError(t, err)
	assert.Equal(t, fixed, res.Transaction.CreatedAt)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Diez unidades y veinte salidas de una unidad en paralelo: exactamente diez
// pasan, el saldo termina en 0 y nunca es negativo.
func TestLedger_SalidasConcurrentesNoSobregiran(t *testing.T) {
	for _, mode := range modes {
		t.Run(string(mode), func(t *testing.T) {
			f := newFixture(t, mode)
			_, err := f.move(t, true, "10")
			require.NoError(t, err)

			var (
				wg           sync.WaitGroup
				mu           sync.Mutex
				ok, rejected int
			)
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := f.ledger.UseStock(context.Background(), inventory.MovementInput{ItemID: f.item.ID, Quantity: dec("1")})
					mu.Lock()
					defer mu.Unlock()
					if err == nil {
						ok++
					} else if errors.Is(err, domain.ErrInsufficientStock) {
						rejected++
					}
				}()
			}
			wg.Wait()

			assert.Equal(t, 10, ok)
			assert.Equal(t, 10, rejected)
			assert.Equal(t, 11, f.txCount(t))

			check, err := f.ledger.VerifyBalance(context.Background(), f.item.ID)
			require.NoError(t, err)
			assert.True(t, check.CurrentStock.IsZero(), "saldo final %s", check.CurrentStock)
			assert.True(t, check.Consistent)
		})
	}
}

func TestLedger_EntradasYSalidasConcurrentesCuadran(t *testing.T) {
	f := newFixture(t, domaininv.StockModeCounter)
	_, err := f.move(t, true, "100")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = f.ledger.AddStock(context.Background(), inventory.MovementInput{ItemID: f.item.ID, Quantity: dec("1.5")})
		}()
		go func() {
			defer wg.Done()
			_, _ = f.ledger.UseStock(context.Background(), inventory.MovementInput{ItemID: f.item.ID, Quantity: dec("2")})
		}()
	}
	wg.Wait()

	check, err := f.ledger.VerifyBalance(context.Background(), f.item.ID)
	require.NoError(t, err)
	assert.True(t, dec("87.5").Equal(check.CurrentStock), "100 + 25×1.5 − 25×2 = 87.5, fue %s", check.CurrentStock)
	assert.True(t, check.Consistent)
}

func TestLedger_ContextoCanceladoNoEscribe(t *testing.T) {
	f := newFixture(t, domaininv.StockModeCounter)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.ledger.AddStock(ctx, inventory.MovementInput{ItemID: f.item.ID, Quantity: dec("1")})
	require.Error(t, err)
	assert.Equal(t, 0, f.txCount(t))
}

// ──────────────────────────────────────────────────────────────────────────────
// Saldo derivado
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_ComputeBalance(t *testing.T) {
	f := newFixture(t, domaininv.StockModeDerived)
	_, err := f.move(t, true, "4.5")
	require.NoError(t, err)
	_, err = f.move(t, false, "1.25")
	require.NoError(t, err)

	b, err := f.ledger.ComputeBalance(context.Background(), f.item.ID)
	require.NoError(t, err)
	assert.True(t, dec("4.5").Equal(b.TotalIn))
	assert.True(t, dec("1.25").Equal(b.TotalOut))
	assert.True(t, dec("3.25").Equal(b.Remaining))

	_, err = f.ledger.ComputeBalance(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_ModoDerivadoNoTocaElContador(t *testing.T) {
	f := newFixture(t, domaininv.StockModeDerived)
	_, err := f.move(t, true, "8")
	require.NoError(t, err)

	item, err := f.store.Items().GetByID(context.Background(), f.item.ID)
	require.NoError(t, err)
	assert.True(t, dec("8").Equal(item.CurrentStock), "la lectura calcula el saldo desde el historial")
	assert.Equal(t, domaininv.StockModeDerived, f.ledger.Mode())
}
