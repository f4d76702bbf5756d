// Package export writes bill lists to spreadsheet files.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Aurelio-One/p9/internal/domain/bill"
)

var headers = []string{"Type", "Nom", "Date", "Montant", "TVA", "Pct", "Statut", "Commentaire", "Justificatif"}

// Exporter writes a formatted bill list to an .xlsx file.
type Exporter struct {
	logger *zap.Logger
}

// NewExporter creates a new Exporter.
func NewExporter(logger *zap.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// ExportBills writes the bills to outputPath, one row per bill in the
// given order.
func (e *Exporter) ExportBills(bills []bill.DisplayBill, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build header cell name: %w", err)
		}
		e.setCell(f, sheet, cell, header)
	}

	for row, b := range bills {
		values := []interface{}{
			b.Type, b.Name, b.Date, b.Amount, b.VAT, b.Pct,
			b.Status, b.Commentary, b.FileName,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("failed to build cell name: %w", err)
			}
			e.setCell(f, sheet, cell, value)
		}
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save spreadsheet: %w", err)
	}

	e.logger.Info("Bill list exported",
		zap.String("output_path", outputPath),
		zap.Int("count", len(bills)))
	return nil
}

func (e *Exporter) setCell(f *excelize.File, sheet, cell string, value interface{}) {
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		e.logger.Warn("Failed to set cell value",
			zap.String("sheet", sheet),
			zap.String("cell", cell),
			zap.Error(err))
	}
}
