package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-hotel-api/internal/application/analytics"
	"github.com/jhoicas/Inventario-hotel-api/internal/application/dto"
)

// ReportHandler expone los reportes de consumo, resumen e inventario.
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Inventory godoc
// @Summary      Reporte de inventario: stock actual y totales del historial por ítem
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.InventoryReportRowDTO
// @Router       /report [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	rows, err := h.uc.InventoryReport(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rows)
}

// InventoryPDF godoc
// @Summary      Reporte de inventario en PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /report/pdf [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	doc, filename, err := h.uc.InventoryReportPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(doc)
}

// DailyUsage godoc
// @Summary      Consumo por ítem de un día
// @Tags         reports
// @Produce      json
// @Param        date  query  string  true  "Fecha YYYY-MM-DD"
// @Success      200   {object}  dto.UsageReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /daily-usages [get]
func (h *ReportHandler) DailyUsage(c *fiber.Ctx) error {
	date := c.Query("date")
	report, err := h.uc.DailyUsage(c.UserContext(), date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.UsageReportResponse{Message: "consumo del " + date, Report: report})
}

// MonthlyUsage godoc
// @Summary      Consumo por ítem de un mes
// @Tags         reports
// @Produce      json
// @Param        year   query  int  true  "Año"
// @Param        month  query  int  true  "Mes 1-12"
// @Success      200    {object}  dto.UsageReportResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /monthly-usage [get]
func (h *ReportHandler) MonthlyUsage(c *fiber.Ctx) error {
	year := c.QueryInt("year", 0)
	month := c.QueryInt("month", 0)
	report, err := h.uc.MonthlyUsage(c.UserContext(), year, month)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.UsageReportResponse{
		Message: fmt.Sprintf("consumo de %04d-%02d", year, month),
		Report:  report,
	})
}

// Summary godoc
// @Summary      Resumen de movimientos agrupado por ítem y categoría
// @Tags         reports
// @Produce      json
// @Param        type  query  string  false  "daily | weekly | monthly"  default(daily)
// @Success      200   {object}  dto.SummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.WindowedSummary(c.UserContext(), c.Query("type"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
