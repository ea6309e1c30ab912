package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Inventario-hotel-api/internal/application/dto"
	"github.com/jhoicas/Inventario-hotel-api/internal/infrastructure/pdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInventoryPDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("Hotel Las Palmas")
	rows := []dto.InventoryReportRowDTO{
		{
			ItemName: "Leche", Category: "Lácteos", Unit: "lt",
			CurrentStock: decimal.NewFromInt(3), MinStock: decimal.NewFromInt(5),
			TotalIn: decimal.NewFromInt(10), TotalOut: decimal.NewFromInt(7), Remaining: decimal.NewFromInt(3),
			Status: dto.StockStatusLow, Consistent: true,
		},
		{
			ItemName: "Jabón", Unit: "unidad",
			CurrentStock: decimal.NewFromInt(40), MinStock: decimal.NewFromInt(10),
			TotalIn: decimal.NewFromInt(40), TotalOut: decimal.Zero, Remaining: decimal.NewFromInt(39),
			Status: dto.StockStatusGood, Consistent: false,
		},
	}

	doc, err := g.GenerateInventoryPDF(context.Background(), "Reporte de inventario", time.Now(), rows)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")), "el documento debe ser un PDF")
}

func TestGenerateInventoryPDF_SinFilas(t *testing.T) {
	doc, err := pdf.NewMarotoPDFGenerator("").GenerateInventoryPDF(context.Background(), "Vacío", time.Now(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}
