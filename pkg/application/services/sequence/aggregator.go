package sequence

import (
	"sort"

	"github.com/vsinha/prodseq/pkg/domain/entities"
)

// AggregateShortages merges shortage events into production requirements.
//
// Events are sorted by date first and only then grouped, so a part's group
// covers a contiguous run in the date-ordered stream. Another part's event
// falling between two of its dates splits it into separate requirements.
// Events sharing a date keep their input order.
func AggregateShortages(events []entities.ShortageEvent) []entities.ProductionRequirement {
	if len(events) == 0 {
		return nil
	}

	sorted := make([]entities.ShortageEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var requirements []entities.ProductionRequirement
	current := entities.ProductionRequirement{
		PartNumber:   sorted[0].PartNumber,
		Deficit:      sorted[0].Shortfall,
		EarliestDate: sorted[0].Date,
	}

	for _, event := range sorted[1:] {
		if event.PartNumber == current.PartNumber {
			current.Deficit += event.Shortfall
			continue
		}
		requirements = append(requirements, current)
		current = entities.ProductionRequirement{
			PartNumber:   event.PartNumber,
			Deficit:      event.Shortfall,
			EarliestDate: event.Date,
		}
	}

	return append(requirements, current)
}
