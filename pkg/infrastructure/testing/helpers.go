package testing

import (
	"strconv"
	"time"

	"github.com/vsinha/prodseq/pkg/domain/entities"
	"github.com/vsinha/prodseq/pkg/infrastructure/repositories/memory"
)

// Day returns midnight UTC of the given date
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// mustCreatePart is a helper for tests - panics on validation error
func mustCreatePart(partNumber, cell, family string, pieces entities.Quantity) *entities.Part {
	part, err := entities.NewPart(entities.PartNumber(partNumber), cell, family, pieces)
	if err != nil {
		panic(err)
	}
	return part
}

// ScenarioBuilder assembles a catalog and a demand calendar for sequencing tests.
// The demand calendar has one date column per day starting at Start.
type ScenarioBuilder struct {
	Start time.Time
	Days  int

	parts   []*entities.Part
	records []*entities.DemandRecord
}

// NewScenario creates a builder with a calendar of 'days' consecutive dates from start
func NewScenario(start time.Time, days int) *ScenarioBuilder {
	return &ScenarioBuilder{Start: start, Days: days}
}

// Part adds a catalog part
func (b *ScenarioBuilder) Part(partNumber, cell, family string, pieces entities.Quantity) *ScenarioBuilder {
	part := mustCreatePart(partNumber, cell, family, pieces)
	part.CatalogOrder = len(b.parts)
	b.parts = append(b.parts, part)
	return b
}

// Demand adds a Customer Releases row. demand[i] is the quantity due on Start+i days.
func (b *ScenarioBuilder) Demand(partNumber string, onHand, pastDue entities.Quantity, demand ...int64) *ScenarioBuilder {
	return b.DemandOfType(partNumber, entities.CustomerReleases, onHand, pastDue, demand...)
}

// DemandOfType adds a demand row of an arbitrary demand type
func (b *ScenarioBuilder) DemandOfType(
	partNumber, demandType string,
	onHand, pastDue entities.Quantity,
	demand ...int64,
) *ScenarioBuilder {
	cells := make(map[string]string, len(demand))
	for i, qty := range demand {
		if i >= b.Days {
			break
		}
		cells[b.DateKey(i)] = formatQuantity(qty)
	}
	b.records = append(b.records, &entities.DemandRecord{
		PartNumber: entities.PartNumber(partNumber),
		DemandType: demandType,
		OnHand:     onHand,
		PastDue:    pastDue,
		Cells:      cells,
	})
	return b
}

// DateKey returns the demand column key of day offset i
func (b *ScenarioBuilder) DateKey(i int) string {
	return b.Start.AddDate(0, 0, i).Format(entities.DefaultDateLayout)
}

// Schema returns the demand schema of the calendar
func (b *ScenarioBuilder) Schema() *entities.DemandSchema {
	keys := make([]string, b.Days)
	for i := range keys {
		keys[i] = b.DateKey(i)
	}
	schema, err := entities.NewDemandSchema(keys, entities.DefaultDateLayout)
	if err != nil {
		panic(err)
	}
	return schema
}

// Build loads the scenario into in-memory repositories
func (b *ScenarioBuilder) Build() (*memory.CatalogRepository, *memory.DemandRepository) {
	catalog := memory.NewCatalogRepository(len(b.parts))
	if err := catalog.LoadParts(b.parts); err != nil {
		panic(err)
	}

	demand := memory.NewDemandRepository(entities.CustomerReleases)
	if err := demand.LoadDemand(b.records, b.Schema()); err != nil {
		panic(err)
	}

	return catalog, demand
}

// BuildSameDayScenario creates five parts in one cell and family. P1 and P2 run
// short on the first calendar day; the other three stay covered.
func BuildSameDayScenario(start time.Time) (*memory.CatalogRepository, *memory.DemandRepository) {
	return NewScenario(start, 14).
		Part("P1", "CELL_A", "FAM_1", 10).
		Part("P2", "CELL_A", "FAM_1", 10).
		Part("P3", "CELL_A", "FAM_1", 10).
		Part("P4", "CELL_A", "FAM_1", 10).
		Part("P5", "CELL_A", "FAM_1", 10).
		Demand("P1", 0, 0, 30).
		Demand("P2", 0, 0, 75).
		Demand("P3", 500, 0, 10, 10, 10).
		Demand("P4", 100, 0).
		Demand("P5", 50, 10, 0, 40).
		Build()
}

func formatQuantity(q int64) string {
	if q == 0 {
		return ""
	}
	return strconv.FormatInt(q, 10)
}
