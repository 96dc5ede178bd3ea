package csv

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/vsinha/prodseq/pkg/infrastructure/repositories/tabular"
)

// Loader handles loading catalog and demand tables from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadCatalog loads the part catalog from a CSV file
func (l *Loader) LoadCatalog(filename string) (*tabular.CatalogTable, error) {
	records, err := readAll(filename, "catalog")
	if err != nil {
		return nil, err
	}

	table, err := tabular.ParseCatalog(records)
	if err != nil {
		return nil, fmt.Errorf("catalog CSV %s: %w", filename, err)
	}
	return table, nil
}

// LoadDemand loads the demand table from a CSV file
func (l *Loader) LoadDemand(filename string, opts tabular.DemandOptions) (*tabular.DemandTable, error) {
	records, err := readAll(filename, "demand")
	if err != nil {
		return nil, err
	}

	table, err := tabular.ParseDemand(records, opts)
	if err != nil {
		return nil, fmt.Errorf("demand CSV %s: %w", filename, err)
	}
	return table, nil
}

func readAll(filename, table string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", table, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Exported sheets often carry ragged trailing rows
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", table, err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("%s CSV must have a header row", table)
	}

	return records, nil
}
