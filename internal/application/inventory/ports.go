package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-hotel-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una unidad atómica, pasando repositorios atados a ella.
// Si fn devuelve error todo se revierte: nunca queda saldo actualizado sin movimiento ni al revés.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ctx context.Context,
		itemRepo repository.ItemRepository,
		txRepo repository.StockTransactionRepository,
	) error) error
}
