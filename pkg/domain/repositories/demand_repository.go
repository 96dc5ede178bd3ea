package repositories

import "github.com/vsinha/prodseq/pkg/domain/entities"

// DemandRepository provides access to demand data
type DemandRepository interface {
	GetDemandRecord(partNumber entities.PartNumber) (*entities.DemandRecord, bool)
	GetSchema() *entities.DemandSchema
	LoadDemand(records []*entities.DemandRecord, schema *entities.DemandSchema) error
}
