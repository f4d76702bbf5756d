package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Aurelio-One/p9/internal/domain/bill"
)

func TestExporter_ExportBills(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "bills.xlsx")
	exporter := NewExporter(zap.NewNop())

	bills := []bill.DisplayBill{
		{Bill: bill.Bill{
			Type: "Transports", Name: "Vol Paris Londres", Date: "4 Avr. 04",
			Amount: 400, VAT: "80", Pct: 20, Status: "En attente",
			Commentary: "séminaire billed", FileName: "preview-facture.jpg",
		}},
		{Bill: bill.Bill{
			Type: "Hôtel et logement", Name: "encore", Date: "2 Jui. 22",
			Amount: 364, VAT: "70", Pct: 20, Status: "Accepté",
			FileName: "hello.png",
		}},
	}

	require.NoError(t, exporter.ExportBills(bills, outputPath))

	f, err := excelize.OpenFile(outputPath)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)

	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Type", header)

	name, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Vol Paris Londres", name)

	status, err := f.GetCellValue(sheet, "G3")
	require.NoError(t, err)
	assert.Equal(t, "Accepté", status)

	date, err := f.GetCellValue(sheet, "C3")
	require.NoError(t, err)
	assert.Equal(t, "2 Jui. 22", date)
}

func TestExporter_ExportBills_Empty(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.xlsx")
	exporter := NewExporter(zap.NewNop())

	require.NoError(t, exporter.ExportBills(nil, outputPath))

	f, err := excelize.OpenFile(outputPath)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}
