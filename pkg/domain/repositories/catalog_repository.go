package repositories

import "github.com/vsinha/prodseq/pkg/domain/entities"

// CatalogRepository provides access to part catalog data
type CatalogRepository interface {
	GetPart(partNumber entities.PartNumber) (*entities.Part, error)
	GetAllParts() ([]*entities.Part, error)
	GetPartsForSelection(cell, family string) ([]*entities.Part, error)
	LoadParts(parts []*entities.Part) error
	Cells() []string
	Families() []string
}
