package main

import (
	"context"
	"testing"

	"github.com/jhoicas/Inventario-hotel-api/internal/application/dto"
	"github.com/jhoicas/Inventario-hotel-api/internal/application/inventory"
	"github.com/jhoicas/Inventario-hotel-api/internal/application/usecase"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-hotel-api/internal/domain/inventory"
	"github.com/jhoicas/Inventario-hotel-api/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-hotel-api/pkg/config"
	"github.com/jhoicas/Inventario-hotel-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedMemoryAdmin_PermiteMovimientosConUsuario(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore(domaininv.StockModeCounter)
	users := usecase.NewUserUseCase(s.Users())
	seedCfg := config.SeedConfig{AdminUsername: "admin", AdminPassword: "clave-segura"}

	require.NoError(t, seedMemoryAdmin(ctx, users, seedCfg, logger.Nop()))
	require.NoError(t, seedMemoryAdmin(ctx, users, seedCfg, logger.Nop()), "un segundo arranque no duplica")

	admin, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)

	minStock := decimal.NewFromInt(1)
	cat, err := usecase.NewCategoryUseCase(s.Categories(), s.Items(), usecase.DeletePolicyBlock).
		Create(ctx, dto.CreateCategoryRequest{Name: "Cocina"})
	require.NoError(t, err)
	item, err := usecase.NewItemUseCase(s.Items(), s.Categories(), s.Transactions()).
		Create(ctx, dto.CreateItemRequest{Name: "Harina", Unit: "kg", MinStockLevel: &minStock, CategoryID: cat.ID})
	require.NoError(t, err)

	ledger := inventory.NewLedgerUseCase(s.TxRunner(), s.Items(), s.Transactions(), s.Users(), domaininv.StockModeCounter, nil)
	res, err := ledger.AddStock(ctx, inventory.MovementInput{ItemID: item.ID, UserID: admin.ID, Quantity: decimal.NewFromInt(3)})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, res.Transaction.UserID)
}

func TestSeedMemoryAdmin_SinPasswordNoCreaUsuario(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore(domaininv.StockModeCounter)
	users := usecase.NewUserUseCase(s.Users())

	require.NoError(t, seedMemoryAdmin(ctx, users, config.SeedConfig{AdminUsername: "admin"}, logger.Nop()))
	got, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Nil(t, got)
}
