package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// catalogRow línea del CSV de catálogo.
type catalogRow struct {
	Line          int
	Category      string
	Item          string
	Unit          string
	MinStockLevel decimal.Decimal
}

// parseCatalog lee categoria;item;unidad;stockMinimo. Omite líneas vacías y la cabecera.
// El stock mínimo acepta coma decimal ("2,5").
func parseCatalog(r io.Reader) ([]catalogRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []catalogRow
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if line == 1 && isHeader(rec) {
			continue
		}
		if len(rec) < 4 {
			return nil, fmt.Errorf("línea %d: se esperaban 4 columnas, hay %d", line, len(rec))
		}
		minStock, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[3]), ",", "."))
		if err != nil {
			return nil, fmt.Errorf("línea %d: stock mínimo %q: %w", line, rec[3], err)
		}
		rows = append(rows, catalogRow{
			Line:          line,
			Category:      strings.TrimSpace(rec[0]),
			Item:          strings.TrimSpace(rec[1]),
			Unit:          strings.TrimSpace(rec[2]),
			MinStockLevel: minStock,
		})
	}
	return rows, nil
}

func isHeader(rec []string) bool {
	first := strings.ToLower(strings.TrimSpace(rec[0]))
	return first == "category" || first == "categoria" || first == "categoría"
}
