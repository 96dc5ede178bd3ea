// Package tabular turns header-plus-rows tables, as read from CSV or Excel,
// into catalog parts and demand records.
package tabular

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/prodseq/pkg/domain/entities"
	"github.com/vsinha/prodseq/pkg/domain/services"
)

// Catalog columns
const (
	ColCellName     = "cell_name"
	ColPartNumbers  = "part_numbers"
	ColPiecesPerBox = "pieces_per_container"
	ColFamily       = "family"
	ColVisualID     = "visual_id"
	ColDescription  = "description"
	ColRatePerHour  = "rate_per_hour"
)

// Demand columns
const (
	ColPartNo     = "Part No"
	ColDemandType = "Demand Type"
	ColInvFG      = "Inv FG"
	ColPastDue    = "Past Due"
)

// RequiredCatalogColumns must be present in every catalog table
var RequiredCatalogColumns = []string{ColCellName, ColPartNumbers, ColPiecesPerBox, ColFamily}

// RequiredDemandColumns must be present in every demand table
var RequiredDemandColumns = []string{ColPartNo, ColDemandType, ColInvFG, ColPastDue}

// CatalogTable is a parsed catalog
type CatalogTable struct {
	Parts []*entities.Part
	// SkippedRows lists 1-based data rows dropped for lacking a cell or family
	SkippedRows []int
	// DuplicateParts lists part numbers repeated after their first catalog row
	DuplicateParts []entities.PartNumber
}

// DemandOptions controls how the demand header is interpreted
type DemandOptions struct {
	DateLayout    string
	RefreshColumn string
}

// DemandTable is a parsed demand table with its date schema
type DemandTable struct {
	Records []*entities.DemandRecord
	Schema  *entities.DemandSchema
	// InvalidDateKeys lists date columns that do not parse with the schema
	// layout. Any one of them makes every part with a demand row unusable.
	InvalidDateKeys []string
}

// ParseCatalog parses catalog rows. rows[0] is the header. A part_numbers cell
// may list several comma-separated identifiers sharing the row's attributes.
func ParseCatalog(rows [][]string) (*CatalogTable, error) {
	if len(rows) == 0 {
		return nil, &services.MissingColumnsError{Table: "catalog", Columns: RequiredCatalogColumns}
	}

	validator := services.NewSchemaValidator()
	header := rows[0]
	if err := validator.ValidateHeader("catalog", header, RequiredCatalogColumns); err != nil {
		return nil, err
	}
	index := validator.ColumnIndex(header)

	table := &CatalogTable{}
	seen := make(map[entities.PartNumber]bool)
	order := 0

	for i, row := range rows[1:] {
		cell := strings.TrimSpace(field(row, index, ColCellName))
		family := strings.TrimSpace(field(row, index, ColFamily))
		numbers := splitPartNumbers(field(row, index, ColPartNumbers))
		if len(numbers) == 0 {
			continue
		}
		if cell == "" || family == "" {
			table.SkippedRows = append(table.SkippedRows, i+1)
			continue
		}

		pieces := services.NormalizeQuantity(field(row, index, ColPiecesPerBox))
		color := entities.ParseColorCategory(field(row, index, ColVisualID))
		description := strings.TrimSpace(field(row, index, ColDescription))
		rate := parseRate(field(row, index, ColRatePerHour))

		for _, number := range numbers {
			if seen[number] {
				table.DuplicateParts = append(table.DuplicateParts, number)
				continue
			}
			seen[number] = true

			part, err := entities.NewPart(number, cell, family, pieces)
			if err != nil {
				return nil, fmt.Errorf("catalog row %d: %w", i+2, err)
			}
			part.Color = color
			part.Description = description
			part.RatePerHour = rate
			part.CatalogOrder = order
			order++

			table.Parts = append(table.Parts, part)
		}
	}

	return table, nil
}

// ParseDemand parses demand rows. rows[0] is the header. Columns whose name
// contains "/" are date columns, except the refresh timestamp column.
func ParseDemand(rows [][]string, opts DemandOptions) (*DemandTable, error) {
	if len(rows) == 0 {
		return nil, &services.MissingColumnsError{Table: "demand", Columns: RequiredDemandColumns}
	}

	validator := services.NewSchemaValidator()
	header := rows[0]
	if err := validator.ValidateHeader("demand", header, RequiredDemandColumns); err != nil {
		return nil, err
	}
	index := validator.ColumnIndex(header)

	dateKeys, positions := DateColumns(header, opts.RefreshColumn)
	schema, err := entities.NewDemandSchema(dateKeys, opts.DateLayout)
	if err != nil {
		return nil, fmt.Errorf("demand header: %w", err)
	}

	table := &DemandTable{Schema: schema}
	for _, key := range schema.DateKeys {
		if _, err := time.Parse(schema.DateLayout, key); err != nil {
			table.InvalidDateKeys = append(table.InvalidDateKeys, key)
		}
	}
	for _, row := range rows[1:] {
		partNumber := strings.TrimSpace(field(row, index, ColPartNo))
		if partNumber == "" {
			continue
		}

		cells := make(map[string]string, len(dateKeys))
		for k, key := range dateKeys {
			if pos := positions[k]; pos < len(row) {
				cells[key] = row[pos]
			}
		}

		table.Records = append(table.Records, &entities.DemandRecord{
			PartNumber: entities.PartNumber(partNumber),
			DemandType: strings.TrimSpace(field(row, index, ColDemandType)),
			OnHand:     services.NormalizeQuantity(field(row, index, ColInvFG)),
			PastDue:    services.NormalizeQuantity(field(row, index, ColPastDue)),
			Cells:      cells,
		})
	}

	return table, nil
}

// DateColumns returns the date column names of a demand header and their positions
func DateColumns(header []string, refreshColumn string) ([]string, []int) {
	refresh := strings.ToLower(strings.TrimSpace(refreshColumn))
	var keys []string
	var positions []int
	for i, col := range header {
		name := strings.TrimSpace(col)
		if !strings.Contains(name, "/") {
			continue
		}
		if refresh != "" && strings.ToLower(name) == refresh {
			continue
		}
		keys = append(keys, name)
		positions = append(positions, i)
	}
	return keys, positions
}

func field(row []string, index map[string]int, column string) string {
	pos, ok := index[strings.ToLower(column)]
	if !ok || pos >= len(row) {
		return ""
	}
	return row[pos]
}

func splitPartNumbers(raw string) []entities.PartNumber {
	var numbers []entities.PartNumber
	for _, piece := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(piece); trimmed != "" {
			numbers = append(numbers, entities.PartNumber(trimmed))
		}
	}
	return numbers
}

func parseRate(raw string) decimal.Decimal {
	cleaned := strings.NewReplacer(",", "", "$", "").Replace(strings.TrimSpace(raw))
	rate, err := decimal.NewFromString(cleaned)
	if err != nil || rate.IsNegative() {
		return decimal.Zero
	}
	return rate
}
