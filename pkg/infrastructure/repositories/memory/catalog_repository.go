package memory

import (
	"fmt"
	"sort"

	"github.com/vsinha/prodseq/pkg/domain/entities"
	"github.com/vsinha/prodseq/pkg/domain/repositories"
	"github.com/vsinha/prodseq/pkg/domain/services"
)

// CatalogRepository provides in-memory part catalog storage
type CatalogRepository struct {
	parts    []entities.Part
	partsMap map[entities.PartNumber]int
}

// NewCatalogRepository creates a new in-memory catalog repository
func NewCatalogRepository(expectedParts int) *CatalogRepository {
	return &CatalogRepository{
		parts:    make([]entities.Part, 0, expectedParts),
		partsMap: make(map[entities.PartNumber]int, expectedParts),
	}
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// LoadParts loads parts into the repository. Duplicate part numbers, either
// within parts or against parts already stored, reject the whole batch.
func (r *CatalogRepository) LoadParts(parts []*entities.Part) error {
	batch := make([]*entities.Part, 0, len(r.parts)+len(parts))
	for i := range r.parts {
		batch = append(batch, &r.parts[i])
	}
	batch = append(batch, parts...)

	validation := services.NewSchemaValidator().ValidatePartNumberUniqueness(batch)
	if len(validation.Errors) > 0 {
		return fmt.Errorf("%s", validation.Errors[0])
	}

	for _, part := range parts {
		r.AddPart(*part)
	}
	return nil
}

// AddPart adds a part to the repository, keeping catalog order
func (r *CatalogRepository) AddPart(part entities.Part) {
	r.partsMap[part.PartNumber] = len(r.parts)
	r.parts = append(r.parts, part)
}

// GetPart returns catalog data for a part number
func (r *CatalogRepository) GetPart(partNumber entities.PartNumber) (*entities.Part, error) {
	index, exists := r.partsMap[partNumber]
	if !exists {
		return nil, fmt.Errorf("part not found: %s", partNumber)
	}
	return &r.parts[index], nil
}

// GetAllParts returns all parts in catalog order
func (r *CatalogRepository) GetAllParts() ([]*entities.Part, error) {
	parts := make([]*entities.Part, 0, len(r.parts))
	for i := range r.parts {
		parts = append(parts, &r.parts[i])
	}
	return parts, nil
}

// GetPartsForSelection returns the parts of a cell and family in catalog order
func (r *CatalogRepository) GetPartsForSelection(cell, family string) ([]*entities.Part, error) {
	var parts []*entities.Part
	for i := range r.parts {
		if r.parts[i].InSelection(cell, family) {
			parts = append(parts, &r.parts[i])
		}
	}
	return parts, nil
}

// Cells returns the distinct cell names, sorted
func (r *CatalogRepository) Cells() []string {
	return r.distinct(func(p *entities.Part) string { return p.Cell })
}

// Families returns the distinct family names, sorted
func (r *CatalogRepository) Families() []string {
	return r.distinct(func(p *entities.Part) string { return p.Family })
}

func (r *CatalogRepository) distinct(field func(*entities.Part) string) []string {
	seen := make(map[string]bool)
	var values []string
	for i := range r.parts {
		value := field(&r.parts[i])
		if !seen[value] {
			seen[value] = true
			values = append(values, value)
		}
	}
	sort.Strings(values)
	return values
}
