package memory

import (
	"fmt"

	"github.com/vsinha/prodseq/pkg/domain/entities"
	"github.com/vsinha/prodseq/pkg/domain/repositories"
)

// DemandRepository provides in-memory demand storage for one demand type
type DemandRepository struct {
	demandType string
	records    map[entities.PartNumber]entities.DemandRecord
	schema     *entities.DemandSchema
	ignored    int
}

// NewDemandRepository creates a repository that keeps only rows of demandType
func NewDemandRepository(demandType string) *DemandRepository {
	if demandType == "" {
		demandType = entities.CustomerReleases
	}
	return &DemandRepository{
		demandType: demandType,
		records:    make(map[entities.PartNumber]entities.DemandRecord),
	}
}

// Verify interface compliance
var _ repositories.DemandRepository = (*DemandRepository)(nil)

// LoadDemand replaces the stored demand. Rows of other demand types are
// ignored, and only the first in-scope row of a part is kept.
func (r *DemandRepository) LoadDemand(records []*entities.DemandRecord, schema *entities.DemandSchema) error {
	if schema == nil {
		return fmt.Errorf("demand schema cannot be nil")
	}

	loaded := make(map[entities.PartNumber]entities.DemandRecord, len(records))
	ignored := 0
	for _, record := range records {
		if !record.InScope(r.demandType) {
			continue
		}
		if _, exists := loaded[record.PartNumber]; exists {
			ignored++
			continue
		}
		loaded[record.PartNumber] = *record
	}

	r.records = loaded
	r.schema = schema
	r.ignored = ignored
	return nil
}

// GetDemandRecord returns the in-scope demand row of a part
func (r *DemandRepository) GetDemandRecord(partNumber entities.PartNumber) (*entities.DemandRecord, bool) {
	record, exists := r.records[partNumber]
	if !exists {
		return nil, false
	}
	return &record, true
}

// GetSchema returns the date schema of the loaded table
func (r *DemandRepository) GetSchema() *entities.DemandSchema {
	return r.schema
}

// Count returns the number of parts with in-scope demand
func (r *DemandRepository) Count() int {
	return len(r.records)
}

// IgnoredDuplicates returns how many repeated in-scope rows were dropped on load
func (r *DemandRepository) IgnoredDuplicates() int {
	return r.ignored
}
