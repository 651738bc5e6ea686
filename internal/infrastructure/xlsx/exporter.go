// Package xlsx exporta la tabla de partidas a una planilla Excel.
package xlsx

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-implantes/internal/domain/entity"
	"github.com/jhoicas/stock-implantes/internal/domain/stock"
	"github.com/jhoicas/stock-implantes/internal/infrastructure/csvstore"
)

// SheetName nombre de la hoja con el detalle por partida.
const SheetName = "Stock"

// Exporter implementa inventory.ReportExporter con excelize.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// Export escribe la planilla: cabecera, una fila por partida y depósito, y al final
// el total de sistema de cada depósito.
func (e *Exporter) Export(_ context.Context, table entity.Table, w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetName); err != nil {
		return fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	header := make([]interface{}, len(csvstore.Header))
	for i, h := range csvstore.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: cabecera: %w", err)
	}

	row := 2
	for _, r := range table.Rows {
		excelRow := []interface{}{
			r.LotID,
			r.ArticleCode,
			r.Description,
			r.Warehouse,
			cellValue(r.SystemQuantity),
			cellValue(r.PhysicalQuantity),
		}
		if err := setRow(f, row, excelRow); err != nil {
			return err
		}
		row++
	}

	row++ // fila en blanco antes de los totales
	for _, wh := range entity.Warehouses {
		total, _ := stock.TotalQuantity(table, wh).Float64()
		if err := setRow(f, row, []interface{}{"Total " + wh, nil, nil, wh, total}); err != nil {
			return err
		}
		row++
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: escribir: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsx: celda fila %d: %w", row, err)
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("xlsx: fila %d: %w", row, err)
	}
	return nil
}

// cellValue escribe números como números y el texto no numérico tal cual.
func cellValue(q entity.Quantity) interface{} {
	if !q.Numeric {
		return q.Raw
	}
	v, _ := q.Value.Float64()
	return v
}
