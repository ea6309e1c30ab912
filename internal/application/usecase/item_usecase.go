package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-hotel-api/internal/application/dto"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/inventory"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var itemSortColumns = map[string]bool{
	repository.ItemSortCreatedAt:     true,
	repository.ItemSortName:          true,
	repository.ItemSortCurrentStock:  true,
	repository.ItemSortMinStockLevel: true,
	repository.ItemSortUnit:          true,
}

// ItemUseCase casos de uso CRUD para ítems. CurrentStock se maneja vía movimientos.
type ItemUseCase struct {
	repo         repository.ItemRepository
	categoryRepo repository.CategoryRepository
	txRepo       repository.StockTransactionRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	repo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	txRepo repository.StockTransactionRepository,
) *ItemUseCase {
	return &ItemUseCase{repo: repo, categoryRepo: categoryRepo, txRepo: txRepo}
}

// Create crea un nuevo ítem con stock 0. La categoría debe existir y estar activa.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	if name == "" || unit == "" || in.MinStockLevel == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := validateMinStock(*in.MinStockLevel); err != nil {
		return nil, err
	}
	category, err := uc.activeCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.Item{
		ID:            uuid.New().String(),
		Name:          name,
		CategoryID:    category.ID,
		CategoryName:  category.Name,
		Unit:          unit,
		MinStockLevel: *in.MinStockLevel,
		CurrentStock:  decimal.Zero,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un ítem por ID.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista ítems activos con búsqueda, filtro por categoría, filtro de stock bajo y orden.
// sortBy desconocido ordena por createdAt; sortOrder distinto de "asc" es descendente.
func (uc *ItemUseCase) List(ctx context.Context, q dto.ItemListQuery) (*dto.ItemListResponse, error) {
	q.Normalize()
	filter := repository.ItemFilter{
		Search:   strings.TrimSpace(q.Search),
		LowStock: q.MinStockLevel == "low",
		SortBy:   q.SortBy,
		SortAsc:  strings.EqualFold(q.SortOrder, "asc"),
		Limit:    q.Limit,
		Offset:   q.Offset(),
	}
	if !itemSortColumns[filter.SortBy] {
		filter.SortBy = repository.ItemSortCreatedAt
	}
	if q.Category != "" {
		if _, err := uuid.Parse(q.Category); err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.CategoryID = q.Category
	}
	list, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items:       items,
		CurrentPage: q.Page,
		TotalPages:  dto.TotalPages(total, q.Limit),
		TotalItems:  total,
	}, nil
}

// Update actualiza un ítem. No permite modificar CurrentStock (se maneja vía movimientos).
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		category, err := uc.activeCategory(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		item.CategoryID = category.ID
		item.CategoryName = category.Name
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = name
	}
	if in.Unit != nil {
		unit := strings.TrimSpace(*in.Unit)
		if unit == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Unit = unit
	}
	if in.MinStockLevel != nil {
		if err := validateMinStock(*in.MinStockLevel); err != nil {
			return nil, err
		}
		item.MinStockLevel = *in.MinStockLevel
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete borra un ítem. Por defecto es lógico; el físico se rechaza si el ítem tiene
// movimientos, porque el libro es de solo inserción.
func (uc *ItemUseCase) Delete(ctx context.Context, id string, hard bool) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	if !hard {
		return uc.repo.SoftDelete(ctx, id)
	}
	n, err := uc.txRepo.CountByItem(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrItemHasTransactions
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ItemUseCase) get(ctx context.Context, id string) (*entity.Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (uc *ItemUseCase) activeCategory(ctx context.Context, id string) (*entity.Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil || !category.IsActive {
		return nil, domain.ErrNotFound
	}
	return category, nil
}

func validateMinStock(v decimal.Decimal) error {
	if v.LessThan(decimal.Zero) || v.GreaterThan(inventory.MaxQuantity) || !v.Equal(v.Round(inventory.QuantityScale)) {
		return domain.ErrInvalidInput
	}
	return nil
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:            i.ID,
		Name:          i.Name,
		CategoryID:    i.CategoryID,
		Category:      i.CategoryName,
		Unit:          i.Unit,
		MinStockLevel: i.MinStockLevel,
		CurrentStock:  i.CurrentStock,
		IsActive:      i.IsActive,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}
