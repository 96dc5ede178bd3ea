package xlsx

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vsinha/prodseq/pkg/domain/services"
	"github.com/vsinha/prodseq/pkg/infrastructure/repositories/tabular"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		index, err := f.NewSheet(sheet)
		require.NoError(t, err)
		f.SetActiveSheet(index)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoader_LoadCatalog(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		{"cell_name", "part_numbers", "pieces_per_container", "family", "visual_id"},
		{"CELL_A", "P1,P2", 24, "FAM_1", "Rosa"},
	})

	table, err := NewLoader("").LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, table.Parts, 2)
	assert.EqualValues(t, 24, table.Parts[0].PiecesPerContainer)
	assert.Equal(t, "Rosa", table.Parts[1].Color.String())
}

func TestLoader_LoadDemand_SerialDateHeaders(t *testing.T) {
	path := writeWorkbook(t, "Demand", [][]any{
		{"Part No", "Demand Type", "Inv FG", "Past Due", 45726, "3/11/2025", "Fecha De Actualizacion"},
		{"P1", "Customer Releases", 100, 20, 50, 40, "3/9/2025"},
	})

	table, err := NewLoader("Demand").LoadDemand(path, tabular.DemandOptions{RefreshColumn: "Fecha De Actualizacion"})
	require.NoError(t, err)

	assert.Equal(t, []string{"3/10/2025", "3/11/2025"}, table.Schema.DateKeys)
	require.Len(t, table.Records, 1)

	record := table.Records[0]
	assert.EqualValues(t, 100, record.OnHand)
	assert.EqualValues(t, 20, record.PastDue)
	assert.Equal(t, "50", record.Cells["3/10/2025"])
}

func TestLoader_UnknownSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{{"cell_name"}})

	_, err := NewLoader("Missing").LoadCatalog(path)
	require.Error(t, err)
}

func TestLoader_MissingColumns(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{{"Part No", "Inv FG"}})

	_, err := NewLoader("").LoadDemand(path, tabular.DemandOptions{})
	assert.ErrorIs(t, err, services.ErrMissingColumns)
}

func TestNormalizeHeader(t *testing.T) {
	header := normalizeHeader([]string{"Part No", "45726", "12", "3/12/2025"}, "2006-01-02")
	assert.Equal(t, []string{"Part No", "2025-03-10", "12", "3/12/2025"}, header)

	want := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	got, err := excelize.ExcelDateToTime(45726, false)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}
