package dto

import "github.com/shopspring/decimal"

func init() {
	// Cantidades y saldos viajan como números JSON (10.5), no como strings ("10.5").
	decimal.MarshalJSONWithoutQuotes = true
}

// Valores por defecto de paginación.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest paginación por número de página (page empieza en 1).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Normalize aplica valores por defecto y topes.
func (p *PageRequest) Normalize() {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Offset registros a saltar para la página actual.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages ceil(total / limit).
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// InsufficientStockResponse error 400 de salida rechazada, con el saldo y lo solicitado.
type InsufficientStockResponse struct {
	Code         string          `json:"code"`
	Message      string          `json:"message"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	Requested    decimal.Decimal `json:"requested"`
}
