package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-hotel-api/internal/application/dto"
)

// AddStockFromRequest adapta el body HTTP de POST /add al caso de uso AddStock.
func (uc *LedgerUseCase) AddStockFromRequest(ctx context.Context, in dto.StockMovementRequest) (*MovementResult, error) {
	return uc.AddStock(ctx, toMovementInput(in))
}

// UseStockFromRequest adapta el body HTTP de POST /use al caso de uso UseStock.
func (uc *LedgerUseCase) UseStockFromRequest(ctx context.Context, in dto.StockMovementRequest) (*MovementResult, error) {
	return uc.UseStock(ctx, toMovementInput(in))
}

func toMovementInput(in dto.StockMovementRequest) MovementInput {
	return MovementInput{
		ItemID:   in.ItemID,
		UserID:   in.UserID,
		Quantity: in.Quantity,
		Remarks:  in.Remarks,
	}
}

// ToBalanceResponse convierte el control cruzado al DTO de salida.
func ToBalanceResponse(b *BalanceCheck) dto.BalanceResponse {
	return dto.BalanceResponse{
		ItemID:       b.ItemID,
		ItemName:     b.ItemName,
		CurrentStock: b.CurrentStock,
		TotalIn:      b.Balance.TotalIn,
		TotalOut:     b.Balance.TotalOut,
		Remaining:    b.Balance.Remaining,
		Consistent:   b.Consistent,
	}
}
