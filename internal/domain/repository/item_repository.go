package repository

import (
	"context"

	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Columnas admitidas para ordenar el listado de ítems.
const (
	ItemSortCreatedAt     = "createdAt"
	ItemSortName          = "name"
	ItemSortCurrentStock  = "currentStock"
	ItemSortMinStockLevel = "minStockLevel"
	ItemSortUnit          = "unit"
)

// ItemFilter filtros del listado de ítems.
type ItemFilter struct {
	Search     string
	CategoryID string
	LowStock   bool // currentStock <= minStockLevel
	SortBy     string
	SortAsc    bool
	Limit      int
	Offset     int
}

// ItemRepository define el puerto de persistencia para Item (DIP).
// CurrentStock de los ítems devueltos respeta el modo de stock configurado en la implementación.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetForUpdate obtiene el ítem y bloquea su fila hasta el fin de la transacción.
	// CurrentStock es siempre el valor de la columna (contador).
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	// UpdateStock escribe el saldo corriente (solo modo contador).
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error
	List(ctx context.Context, filter ItemFilter) ([]*entity.Item, int, error)
	// ListActive devuelve todos los ítems activos con el nombre de su categoría.
	ListActive(ctx context.Context) ([]*entity.Item, error)
	ListLowStock(ctx context.Context) ([]*entity.Item, error)
	CountActive(ctx context.Context) (int, error)
	CountByCategory(ctx context.Context, categoryID string, onlyActive bool) (int, error)
	SoftDelete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
