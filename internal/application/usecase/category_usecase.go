package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-hotel-api/internal/application/dto"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-hotel-api/internal/domain/repository"
)

// DeletePolicy política al borrar una categoría con ítems asignados.
type DeletePolicy string

const (
	// DeletePolicyBlock rechaza el borrado mientras haya ítems activos en la categoría.
	DeletePolicyBlock DeletePolicy = "block"
	// DeletePolicyAllow permite el borrado lógico aunque tenga ítems.
	DeletePolicyAllow DeletePolicy = "allow"
)

// ParseDeletePolicy interpreta la política configurada; vacío equivale a block.
func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch DeletePolicy(s) {
	case "", DeletePolicyBlock:
		return DeletePolicyBlock, nil
	case DeletePolicyAllow:
		return DeletePolicyAllow, nil
	}
	return "", fmt.Errorf("política de borrado desconocida %q: %w", s, domain.ErrInvalidInput)
}

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	itemRepo repository.ItemRepository
	policy   DeletePolicy
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, itemRepo repository.ItemRepository, policy DeletePolicy) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, itemRepo: itemRepo, policy: policy}
}

// Create crea una nueva categoría activa. Nombre duplicado devuelve domain.ErrDuplicate.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List lista categorías activas con paginación y búsqueda por nombre.
func (uc *CategoryUseCase) List(ctx context.Context, q dto.CategoryListQuery) (*dto.CategoryListResponse, error) {
	q.Normalize()
	list, total, err := uc.repo.List(ctx, repository.CategoryFilter{
		Search: strings.TrimSpace(q.Search),
		Limit:  q.Limit,
		Offset: q.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{
		Categories:      out,
		CurrentPage:     q.Page,
		TotalPages:      dto.TotalPages(total, q.Limit),
		TotalCategories: total,
	}, nil
}

// Update actualiza nombre y/o descripción.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		category.Name = name
	}
	if in.Description != nil {
		category.Description = strings.TrimSpace(*in.Description)
	}
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete borra una categoría. Por defecto es borrado lógico (IsActive=false) sujeto a la política;
// el borrado físico (hard) siempre se rechaza si algún ítem, activo o no, la referencia.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string, hard bool) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	if hard {
		n, err := uc.itemRepo.CountByCategory(ctx, id, false)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrCategoryInUse
		}
		return uc.repo.Delete(ctx, id)
	}
	if uc.policy == DeletePolicyBlock {
		n, err := uc.itemRepo.CountByCategory(ctx, id, true)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrCategoryInUse
		}
	}
	return uc.repo.SoftDelete(ctx, id)
}

func (uc *CategoryUseCase) get(ctx context.Context, id string) (*entity.Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return category, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
