package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-hotel-api/internal/domain/inventory"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/repository"
	"github.com/jhoicas/Inventario-hotel-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// LedgerUseCase registra entradas y salidas de stock de forma transaccional:
// bloqueo de la fila del ítem (SELECT FOR UPDATE), cálculo del nuevo saldo, escritura del
// contador y alta del movimiento, con Commit/Rollback como una sola unidad.
type LedgerUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	txRepo   repository.StockTransactionRepository
	userRepo repository.UserRepository
	mode     domaininv.StockMode
	log      *logger.Logger
	now      func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	txRepo repository.StockTransactionRepository,
	userRepo repository.UserRepository,
	mode domaininv.StockMode,
	log *logger.Logger,
) *LedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		txRepo:   txRepo,
		userRepo: userRepo,
		mode:     mode,
		log:      log,
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *LedgerUseCase) WithClock(now func() time.Time) *LedgerUseCase {
	uc.now = now
	return uc
}

// Mode devuelve el modo de stock con el que opera el libro.
func (uc *LedgerUseCase) Mode() domaininv.StockMode { return uc.mode }

// MovementInput entrada para registrar una entrada o salida.
type MovementInput struct {
	ItemID   string
	UserID   string // opcional
	Quantity decimal.Decimal
	Remarks  string
}

// MovementResult resultado de un movimiento confirmado.
type MovementResult struct {
	Transaction *entity.StockTransaction
	ItemName    string
	Unit        string
	NewBalance  decimal.Decimal
	Alert       string // vacío si no hay stock bajo (solo salidas)
}

// BalanceCheck contraste entre el saldo corriente del ítem y la suma de su historial.
type BalanceCheck struct {
	ItemID       string
	ItemName     string
	CurrentStock decimal.Decimal
	Balance      domaininv.Balance
	Consistent   bool
}

// AddStock registra una entrada (IN) y devuelve el nuevo saldo.
func (uc *LedgerUseCase) AddStock(ctx context.Context, input MovementInput) (*MovementResult, error) {
	return uc.register(ctx, entity.TransactionTypeIN, input)
}

// UseStock registra una salida (OUT). Falla con *domain.InsufficientStockError si la cantidad
// supera el saldo; el chequeo ocurre con la fila bloqueada, dentro de la misma transacción.
// Si el saldo resultante queda en o bajo el mínimo devuelve Alert.
func (uc *LedgerUseCase) UseStock(ctx context.Context, input MovementInput) (*MovementResult, error) {
	return uc.register(ctx, entity.TransactionTypeOUT, input)
}

func (uc *LedgerUseCase) register(ctx context.Context, txType string, input MovementInput) (*MovementResult, error) {
	if _, err := uuid.Parse(input.ItemID); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if err := domaininv.ValidateQuantity(input.Quantity); err != nil {
		return nil, err
	}
	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID != "" {
		if _, err := uuid.Parse(input.UserID); err != nil {
			return nil, domain.ErrInvalidInput
		}
		user, err := uc.userRepo.GetByID(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.ErrUserNotFound
		}
	}

	var result *MovementResult
	err := uc.txRunner.Run(ctx, func(
		ctx context.Context,
		itemRepo repository.ItemRepository,
		txRepo repository.StockTransactionRepository,
	) error {
		// Bloquea la fila del ítem hasta Commit/Rollback
		item, err := itemRepo.GetForUpdate(ctx, input.ItemID)
		if err != nil {
			return err
		}
		if item == nil || !item.IsActive {
			return domain.ErrNotFound
		}
		current, err := uc.balanceInTx(ctx, item, txRepo)
		if err != nil {
			return err
		}

		var newBalance decimal.Decimal
		if txType == entity.TransactionTypeIN {
			newBalance, err = domaininv.ApplyIn(current, input.Quantity)
		} else {
			newBalance, err = domaininv.ApplyOut(current, input.Quantity)
		}
		if err != nil {
			return err
		}

		if uc.mode == domaininv.StockModeCounter {
			if err := itemRepo.UpdateStock(ctx, item.ID, newBalance); err != nil {
				return err
			}
		}
		mov := &entity.StockTransaction{
			ID:           uuid.New().String(),
			ItemID:       item.ID,
			CategoryID:   item.CategoryID,
			UserID:       input.UserID,
			Type:         txType,
			Quantity:     input.Quantity,
			BalanceAfter: newBalance,
			Remarks:      strings.TrimSpace(input.Remarks),
			CreatedAt:    uc.now(),
		}
		if err := txRepo.Create(ctx, mov); err != nil {
			return err
		}
		result = &MovementResult{
			Transaction: mov,
			ItemName:    item.Name,
			Unit:        item.Unit,
			NewBalance:  newBalance,
		}
		if txType == entity.TransactionTypeOUT {
			result.Alert = domaininv.LowStockAlert(item, newBalance)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("item_id", result.Transaction.ItemID).
		Str("type", txType).
		Str("quantity", input.Quantity.String()).
		Str("balance_after", result.NewBalance.String()).
		Msg("movimiento de stock registrado")
	if result.Alert != "" {
		uc.log.Warn().
			Str("item_id", result.Transaction.ItemID).
			Str("item", result.ItemName).
			Str("balance", result.NewBalance.String()).
			Msg("stock bajo")
	}
	return result, nil
}

// balanceInTx saldo vigente del ítem bloqueado: el contador en modo counter, la suma del
// historial en modo derived (leída después de tomar el bloqueo).
func (uc *LedgerUseCase) balanceInTx(ctx context.Context, item *entity.Item, txRepo repository.StockTransactionRepository) (decimal.Decimal, error) {
	if uc.mode == domaininv.StockModeDerived {
		b, err := txRepo.SumByItem(ctx, item.ID)
		if err != nil {
			return decimal.Zero, err
		}
		return b.Remaining, nil
	}
	return item.CurrentStock, nil
}

// ComputeBalance suma todo el historial del ítem: Σ IN, Σ OUT y restante.
func (uc *LedgerUseCase) ComputeBalance(ctx context.Context, itemID string) (domaininv.Balance, error) {
	if _, err := uuid.Parse(itemID); err != nil {
		return domaininv.Balance{}, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return domaininv.Balance{}, err
	}
	if item == nil {
		return domaininv.Balance{}, domain.ErrNotFound
	}
	return uc.txRepo.SumByItem(ctx, itemID)
}

// VerifyBalance compara el saldo corriente del ítem con la suma de su historial.
func (uc *LedgerUseCase) VerifyBalance(ctx context.Context, itemID string) (*BalanceCheck, error) {
	if _, err := uuid.Parse(itemID); err != nil {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	b, err := uc.txRepo.SumByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	check := &BalanceCheck{
		ItemID:       item.ID,
		ItemName:     item.Name,
		CurrentStock: item.CurrentStock,
		Balance:      b,
		Consistent:   item.CurrentStock.Equal(b.Remaining),
	}
	if !check.Consistent {
		uc.log.Error().
			Str("item_id", item.ID).
			Str("current_stock", item.CurrentStock.String()).
			Str("remaining", b.Remaining.String()).
			Msg("saldo inconsistente con el historial")
	}
	return check, nil
}
