package tabular

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/prodseq/pkg/domain/entities"
	"github.com/vsinha/prodseq/pkg/domain/services"
)

func TestParseCatalog(t *testing.T) {
	rows := [][]string{
		{"cell_name", "part_numbers", "pieces_per_container", "family", "visual_id", "description", "rate_per_hour"},
		{"CELL_A", "P1, P2", "24", "FAM_1", "Verde", "Brackets", "1,200"},
		{"CELL_A", "P3", "$48", "FAM_2", "Morado", "", "abc"},
		{"", "P4", "10", "FAM_1", "", "", ""},
		{"CELL_B", "", "10", "FAM_1", "", "", ""},
		{"CELL_B", "P2,P5", "6", "FAM_1"},
	}

	table, err := ParseCatalog(rows)
	require.NoError(t, err)
	require.Len(t, table.Parts, 4)

	p1 := table.Parts[0]
	assert.Equal(t, entities.PartNumber("P1"), p1.PartNumber)
	assert.Equal(t, "CELL_A", p1.Cell)
	assert.Equal(t, entities.Quantity(24), p1.PiecesPerContainer)
	assert.Equal(t, entities.Green, p1.Color)
	assert.Equal(t, "Brackets", p1.Description)
	assert.True(t, p1.RatePerHour.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, 0, p1.CatalogOrder)

	p2 := table.Parts[1]
	assert.Equal(t, entities.PartNumber("P2"), p2.PartNumber)
	assert.Equal(t, 1, p2.CatalogOrder)

	p3 := table.Parts[2]
	assert.Equal(t, entities.Quantity(48), p3.PiecesPerContainer)
	assert.Equal(t, entities.White, p3.Color)
	assert.True(t, p3.RatePerHour.IsZero())

	p5 := table.Parts[3]
	assert.Equal(t, entities.PartNumber("P5"), p5.PartNumber)
	assert.Equal(t, "CELL_B", p5.Cell)
	assert.Equal(t, 3, p5.CatalogOrder)

	assert.Equal(t, []int{3}, table.SkippedRows)
	assert.Equal(t, []entities.PartNumber{"P2"}, table.DuplicateParts)
}

func TestParseCatalog_MissingColumns(t *testing.T) {
	_, err := ParseCatalog([][]string{{"cell_name", "part_numbers"}})
	require.Error(t, err)

	var missing *services.MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "catalog", missing.Table)
	assert.Equal(t, []string{ColPiecesPerBox, ColFamily}, missing.Columns)

	_, err = ParseCatalog(nil)
	assert.True(t, errors.Is(err, services.ErrMissingColumns))
}

func TestParseDemand(t *testing.T) {
	rows := [][]string{
		{"Part No", "Demand Type", "Inv FG", "Past Due", "3/10/2025", "3/11/2025", "Fecha De Actualizacion", "Notes"},
		{"P1", "Customer Releases", "1,000", "$20", "50", "40", "3/9/2025 10:05", "x"},
		{"P1", "Forecast", "0", "0", "999", "999", "", ""},
		{"", "Customer Releases", "5", "0", "1", "1", "", ""},
		{"P2", "Customer Releases", "", "bad", "7"},
	}

	table, err := ParseDemand(rows, DemandOptions{RefreshColumn: "Fecha De Actualizacion"})
	require.NoError(t, err)

	assert.Equal(t, []string{"3/10/2025", "3/11/2025"}, table.Schema.DateKeys)
	assert.Equal(t, entities.DefaultDateLayout, table.Schema.DateLayout)
	require.Len(t, table.Records, 3)

	first := table.Records[0]
	assert.Equal(t, entities.PartNumber("P1"), first.PartNumber)
	assert.Equal(t, entities.CustomerReleases, first.DemandType)
	assert.Equal(t, entities.Quantity(1000), first.OnHand)
	assert.Equal(t, entities.Quantity(20), first.PastDue)
	assert.Equal(t, map[string]string{"3/10/2025": "50", "3/11/2025": "40"}, first.Cells)

	assert.Equal(t, "Forecast", table.Records[1].DemandType)

	short := table.Records[2]
	assert.Equal(t, entities.Quantity(0), short.OnHand)
	assert.Equal(t, entities.Quantity(0), short.PastDue)
	assert.Equal(t, map[string]string{"3/10/2025": "7"}, short.Cells)
}

func TestParseDemand_InvalidDateKeys(t *testing.T) {
	rows := [][]string{
		{"Part No", "Demand Type", "Inv FG", "Past Due", "Qty/Box", "3/10/2025"},
		{"P1", "Customer Releases", "10", "0", "24", "50"},
	}

	table, err := ParseDemand(rows, DemandOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Qty/Box", "3/10/2025"}, table.Schema.DateKeys)
	assert.Equal(t, []string{"Qty/Box"}, table.InvalidDateKeys)
	require.Len(t, table.Records, 1)

	table, err = ParseDemand(rows[:1], DemandOptions{DateLayout: "1/2/2006"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Qty/Box"}, table.InvalidDateKeys)
}

func TestParseDemand_MissingColumns(t *testing.T) {
	_, err := ParseDemand([][]string{{"Part No", "Inv FG", "3/10/2025"}}, DemandOptions{})
	require.Error(t, err)

	var missing *services.MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{ColDemandType, ColPastDue}, missing.Columns)
}

func TestParseDemand_DuplicateDateColumns(t *testing.T) {
	_, err := ParseDemand([][]string{{"Part No", "Demand Type", "Inv FG", "Past Due", "3/10/2025", " 3/10/2025"}}, DemandOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate date column")
}

func TestDateColumns(t *testing.T) {
	keys, positions := DateColumns([]string{"Part No", "1/2/2025", "FECHA DE ACTUALIZACION/", "n/a"}, "fecha de actualizacion/")
	assert.Equal(t, []string{"1/2/2025", "n/a"}, keys)
	assert.Equal(t, []int{1, 3}, positions)
}
