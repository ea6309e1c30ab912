package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un ítem. El stock inicia en 0 y solo cambia vía movimientos.
type CreateItemRequest struct {
	Name          string           `json:"name" validate:"required,min=1,max=200"`
	Unit          string           `json:"unit" validate:"required,min=1,max=30"`
	MinStockLevel *decimal.Decimal `json:"minStockLevel" validate:"required"`
	CategoryID    string           `json:"categoryId" validate:"required"`
}

// UpdateItemRequest entrada parcial (sin CurrentStock).
type UpdateItemRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Unit          *string          `json:"unit" validate:"omitempty,min=1,max=30"`
	MinStockLevel *decimal.Decimal `json:"minStockLevel"`
	CategoryID    *string          `json:"categoryId" validate:"omitempty,min=1"`
}

// ItemListQuery parámetros de GET /item.
// MinStockLevel="low" filtra los ítems con currentStock <= minStockLevel.
type ItemListQuery struct {
	PageRequest
	Search        string `query:"search"`
	Category      string `query:"category"`
	MinStockLevel string `query:"minStockLevel"`
	SortBy        string `query:"sortBy"`
	SortOrder     string `query:"sortOrder"`
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CategoryID    string          `json:"categoryId"`
	Category      string          `json:"category,omitempty"`
	Unit          string          `json:"unit"`
	MinStockLevel decimal.Decimal `json:"minStockLevel"`
	CurrentStock  decimal.Decimal `json:"currentStock"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ItemListResponse lista paginada de ítems.
type ItemListResponse struct {
	Items       []ItemResponse `json:"items"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	TotalItems  int            `json:"totalItems"`
}
