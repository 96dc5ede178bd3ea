// Package xlsx loads catalog and demand tables from Excel workbooks.
package xlsx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/prodseq/pkg/domain/entities"
	"github.com/vsinha/prodseq/pkg/infrastructure/repositories/tabular"
)

// Header cells holding an Excel date serial inside this range are rendered as dates
const (
	minDateSerial = 20000 // 1954-10-03
	maxDateSerial = 80000 // 2119-01-10
)

// Loader reads tables from .xlsx workbooks
type Loader struct {
	sheet string
}

// NewLoader creates a loader reading the named sheet, or the active sheet when sheet is empty
func NewLoader(sheet string) *Loader {
	return &Loader{sheet: sheet}
}

// LoadCatalog loads the part catalog from a workbook
func (l *Loader) LoadCatalog(filename string) (*tabular.CatalogTable, error) {
	rows, err := l.readRows(filename, entities.DefaultDateLayout)
	if err != nil {
		return nil, err
	}

	table, err := tabular.ParseCatalog(rows)
	if err != nil {
		return nil, fmt.Errorf("catalog workbook %s: %w", filename, err)
	}
	return table, nil
}

// LoadDemand loads the demand table from a workbook. Date headers stored as
// Excel serials are rewritten in opts.DateLayout before parsing.
func (l *Loader) LoadDemand(filename string, opts tabular.DemandOptions) (*tabular.DemandTable, error) {
	layout := opts.DateLayout
	if layout == "" {
		layout = entities.DefaultDateLayout
	}

	rows, err := l.readRows(filename, layout)
	if err != nil {
		return nil, err
	}

	table, err := tabular.ParseDemand(rows, opts)
	if err != nil {
		return nil, fmt.Errorf("demand workbook %s: %w", filename, err)
	}
	return table, nil
}

func (l *Loader) readRows(filename, layout string) ([][]string, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", filename, err)
	}
	defer f.Close()

	sheet := l.sheet
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, filename, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("sheet %q of %s must have a header row", sheet, filename)
	}

	rows[0] = normalizeHeader(rows[0], layout)
	return rows, nil
}

func normalizeHeader(header []string, layout string) []string {
	out := make([]string, len(header))
	for i, col := range header {
		out[i] = col
		serial, err := strconv.ParseFloat(strings.TrimSpace(col), 64)
		if err != nil || serial < minDateSerial || serial > maxDateSerial {
			continue
		}
		date, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			continue
		}
		out[i] = date.Format(layout)
	}
	return out
}
