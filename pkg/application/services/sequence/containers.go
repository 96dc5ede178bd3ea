package sequence

import (
	"github.com/vsinha/prodseq/pkg/domain/entities"
	"github.com/vsinha/prodseq/pkg/domain/repositories"
)

// ContainerCalculator converts piece deficits into standard containers
type ContainerCalculator struct {
	catalog repositories.CatalogRepository
}

// NewContainerCalculator creates a calculator backed by the part catalog
func NewContainerCalculator(catalog repositories.CatalogRepository) *ContainerCalculator {
	return &ContainerCalculator{catalog: catalog}
}

// Containers returns ceil(deficit / capacity). An unknown part or a
// non-positive capacity yields 0.
func (c *ContainerCalculator) Containers(deficit entities.Quantity, partNumber entities.PartNumber) int64 {
	part, err := c.catalog.GetPart(partNumber)
	if err != nil || part == nil {
		return 0
	}
	return ContainersFor(deficit, part.PiecesPerContainer)
}

// Apply fills in the container count of every requirement
func (c *ContainerCalculator) Apply(reqs []entities.ProductionRequirement) {
	for i := range reqs {
		reqs[i].Containers = c.Containers(reqs[i].Deficit, reqs[i].PartNumber)
	}
}

// ContainersFor rounds a deficit up to whole containers of the given capacity
func ContainersFor(deficit, capacity entities.Quantity) int64 {
	if capacity <= 0 || deficit <= 0 {
		return 0
	}
	return int64((deficit + capacity - 1) / capacity)
}
