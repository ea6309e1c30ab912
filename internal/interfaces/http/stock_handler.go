package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-hotel-api/internal/application/dto"
	"github.com/jhoicas/Inventario-hotel-api/internal/application/inventory"
)

// StockHandler maneja las entradas y salidas de stock.
type StockHandler struct {
	ledger *inventory.LedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *inventory.LedgerUseCase) *StockHandler {
	return &StockHandler{ledger: ledger}
}

// Add godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "itemId, quantity > 0, remarks, userId"
// @Success      200   {object}  dto.AddStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /add [post]
func (h *StockHandler) Add(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	res, err := h.ledger.AddStockFromRequest(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AddStockResponse{Message: "stock agregado", CurrentStock: res.NewBalance})
}

// Use godoc
// @Summary      Registrar salida (consumo) de stock
// @Description  Rechaza la salida si la cantidad supera el stock. alert no es null cuando el
// @Description  saldo resultante queda en o bajo el mínimo.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "itemId, quantity > 0, remarks, userId"
// @Success      200   {object}  dto.UseStockResponse
// @Failure      400   {object}  dto.InsufficientStockResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /use [post]
func (h *StockHandler) Use(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	res, err := h.ledger.UseStockFromRequest(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.UseStockResponse{Message: "stock usado", CurrentStock: res.NewBalance}
	if res.Alert != "" {
		alert := res.Alert
		out.Alert = &alert
	}
	return c.JSON(out)
}
