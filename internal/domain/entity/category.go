package entity

import "time"

// Category agrupa ítems del inventario (ej. "Lácteos", "Limpieza", "Amenities").
// IsActive=false equivale a borrado lógico: no aparece en los listados.
type Category struct {
	ID          string
	Name        string // único
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
