package inventory_test

import (
	"errors"
	"testing"

	"github.com/jhoicas/Inventario-hotel-api/internal/domain"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Cantidades
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateQuantity(t *testing.T) {
	cases := []struct {
		name string
		qty  string
		ok   bool
	}{
		{"positiva entera", "10", true},
		{"tres decimales", "0.125", true},
		{"cero", "0", false},
		{"negativa", "-1", false},
		{"cuatro decimales", "1.0001", false},
		{"máximo de NUMERIC(14,3)", "99999999999.999", true},
		{"excede NUMERIC(14,3)", "100000000000", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := inventory.ValidateQuantity(dec(tc.qty))
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}
}

func TestApplyIn_SumaAlSaldo(t *testing.T) {
	got, err := inventory.ApplyIn(dec("2.5"), dec("0.75"))
	require.NoError(t, err)
	assert.True(t, dec("3.25").Equal(got), "2.5 + 0.75 debe ser 3.25, fue %s", got)

	got, err = inventory.ApplyIn(dec("99999999999"), dec("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el saldo no cabe en NUMERIC(14,3)")
	assert.True(t, dec("99999999999").Equal(got), "el saldo no cambia si la entrada se rechaza")
}

func TestApplyOut_NuncaDejaSaldoNegativo(t *testing.T) {
	got, err := inventory.ApplyOut(dec("3"), dec("3"))
	require.NoError(t, err)
	assert.True(t, got.IsZero(), "sacar todo el stock deja 0")

	got, err = inventory.ApplyOut(dec("3"), dec("3.001"))
	require.Error(t, err)
	assert.True(t, dec("3").Equal(got), "el saldo no cambia si la salida se rechaza")

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.True(t, dec("3").Equal(stockErr.Current))
	assert.True(t, dec("3.001").Equal(stockErr.Requested))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Saldo derivado y alerta
// ──────────────────────────────────────────────────────────────────────────────

func TestSumTransactions(t *testing.T) {
	txs := []*entity.StockTransaction{
		{Type: entity.TransactionTypeIN, Quantity: dec("10")},
		{Type: entity.TransactionTypeOUT, Quantity: dec("7")},
		{Type: entity.TransactionTypeIN, Quantity: dec("0.5")},
	}
	b := inventory.SumTransactions(txs)
	assert.True(t, dec("10.5").Equal(b.TotalIn))
	assert.True(t, dec("7").Equal(b.TotalOut))
	assert.True(t, dec("3.5").Equal(b.Remaining))

	empty := inventory.SumTransactions(nil)
	assert.True(t, empty.TotalIn.IsZero())
	assert.True(t, empty.Remaining.IsZero())
}

func TestLowStockAlert_UmbralInclusivo(t *testing.T) {
	item := &entity.Item{Name: "Leche", Unit: "lt", MinStockLevel: dec("5")}

	assert.Empty(t, inventory.LowStockAlert(item, dec("5.001")))
	assert.Equal(t, "⚠️ Alert: Leche stock is low! Remaining: 5 lt", inventory.LowStockAlert(item, dec("5")))
	assert.Contains(t, inventory.LowStockAlert(item, dec("3")), "Remaining: 3 lt")
}

func TestParseStockMode(t *testing.T) {
	m, err := inventory.ParseStockMode("")
	require.NoError(t, err)
	assert.Equal(t, inventory.StockModeCounter, m)

	m, err = inventory.ParseStockMode("derived")
	require.NoError(t, err)
	assert.Equal(t, inventory.StockModeDerived, m)

	_, err = inventory.ParseStockMode("otro")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
