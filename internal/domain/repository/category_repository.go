package repository

import (
	"context"

	"github.com/jhoicas/Inventario-hotel-api/internal/domain/entity"
)

// CategoryFilter filtros del listado de categorías.
type CategoryFilter struct {
	Search string // subcadena, sin distinguir mayúsculas
	Limit  int
	Offset int
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// List devuelve solo categorías activas y el total que cumple el filtro.
	List(ctx context.Context, filter CategoryFilter) ([]*entity.Category, int, error)
	CountActive(ctx context.Context) (int, error)
	SoftDelete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
