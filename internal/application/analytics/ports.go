package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-hotel-api/internal/application/dto"
)

// InventoryPDFGenerator abstrae la generación del PDF del reporte de inventario.
// La implementación concreta vive en infrastructure/pdf (Maroto).
type InventoryPDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, title string, generatedAt time.Time, rows []dto.InventoryReportRowDTO) ([]byte, error)
}
