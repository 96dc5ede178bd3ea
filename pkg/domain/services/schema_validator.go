package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vsinha/prodseq/pkg/domain/entities"
)

// ErrMissingColumns is matched by every MissingColumnsError
var ErrMissingColumns = errors.New("required columns missing")

// MissingColumnsError reports a table whose header lacks required columns.
// It is fatal: nothing downstream is meaningful without those columns.
type MissingColumnsError struct {
	Table   string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s table is missing required columns: %s", e.Table, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}

// SchemaValidator checks the structure of catalog and demand inputs
type SchemaValidator struct{}

// NewSchemaValidator creates a new schema validator
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{}
}

// ValidationResult contains the results of a data validation pass
type ValidationResult struct {
	DuplicateParts []entities.PartNumber
	UncoveredParts []entities.PartNumber // catalog parts without in-scope demand
	UnknownParts   []entities.PartNumber // demand rows without a catalog entry
	Errors         []string
}

// ValidateHeader returns a *MissingColumnsError naming every required column absent
// from header. Column names are compared trimmed and case-insensitively.
func (v *SchemaValidator) ValidateHeader(table string, header, required []string) error {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[normalizeColumn(col)] = true
	}

	var missing []string
	for _, col := range required {
		if !present[normalizeColumn(col)] {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		return &MissingColumnsError{Table: table, Columns: missing}
	}
	return nil
}

// ColumnIndex maps normalized column names to their position in header.
// The first occurrence of a repeated column wins.
func (v *SchemaValidator) ColumnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, col := range header {
		key := normalizeColumn(col)
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}
	return index
}

// ValidatePartNumberUniqueness validates that part numbers are unique across the catalog
func (v *SchemaValidator) ValidatePartNumberUniqueness(parts []*entities.Part) *ValidationResult {
	result := &ValidationResult{
		Errors: make([]string, 0),
	}

	seen := make(map[entities.PartNumber]bool)
	for _, part := range parts {
		if seen[part.PartNumber] {
			result.DuplicateParts = append(result.DuplicateParts, part.PartNumber)
		} else {
			seen[part.PartNumber] = true
		}
	}

	if len(result.DuplicateParts) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Duplicate part numbers found: %v", result.DuplicateParts))
	}

	return result
}

// ValidateDemandCoverage cross-checks the catalog against in-scope demand rows.
// Neither direction is an error for sequencing; the result is informational.
func (v *SchemaValidator) ValidateDemandCoverage(
	parts []*entities.Part,
	records []*entities.DemandRecord,
	demandType string,
) *ValidationResult {
	result := &ValidationResult{
		Errors: make([]string, 0),
	}

	catalog := make(map[entities.PartNumber]bool, len(parts))
	for _, part := range parts {
		catalog[part.PartNumber] = true
	}

	demanded := make(map[entities.PartNumber]bool, len(records))
	for _, record := range records {
		if !record.InScope(demandType) {
			continue
		}
		if !demanded[record.PartNumber] && !catalog[record.PartNumber] {
			result.UnknownParts = append(result.UnknownParts, record.PartNumber)
		}
		demanded[record.PartNumber] = true
	}

	for _, part := range parts {
		if !demanded[part.PartNumber] {
			result.UncoveredParts = append(result.UncoveredParts, part.PartNumber)
		}
	}

	return result
}

func normalizeColumn(col string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
}
