package sequence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/prodseq/pkg/domain/entities"
	testhelpers "github.com/vsinha/prodseq/pkg/infrastructure/testing"
)

func shortage(pn string, day int, qty entities.Quantity) entities.ShortageEvent {
	return entities.ShortageEvent{
		PartNumber: entities.PartNumber(pn),
		Date:       testhelpers.Day(2025, time.March, day),
		Shortfall:  qty,
	}
}

func TestAggregateShortages_InterleavingSplitsGroups(t *testing.T) {
	reqs := AggregateShortages([]entities.ShortageEvent{
		shortage("A", 10, 5),
		shortage("A", 12, 7),
		shortage("B", 11, 3),
	})

	require.Len(t, reqs, 3)
	assert.Equal(t, entities.PartNumber("A"), reqs[0].PartNumber)
	assert.Equal(t, entities.Quantity(5), reqs[0].Deficit)
	assert.Equal(t, entities.PartNumber("B"), reqs[1].PartNumber)
	assert.Equal(t, entities.PartNumber("A"), reqs[2].PartNumber)
	assert.Equal(t, entities.Quantity(7), reqs[2].Deficit)
	assert.Equal(t, 12, reqs[2].EarliestDate.Day())
}

func TestAggregateShortages_ContiguousRunMerges(t *testing.T) {
	reqs := AggregateShortages([]entities.ShortageEvent{
		shortage("B", 13, 4),
		shortage("A", 11, 6),
		shortage("A", 10, 5),
	})

	require.Len(t, reqs, 2)
	assert.Equal(t, entities.PartNumber("A"), reqs[0].PartNumber)
	assert.Equal(t, entities.Quantity(11), reqs[0].Deficit)
	assert.Equal(t, 10, reqs[0].EarliestDate.Day())
	assert.Equal(t, entities.PartNumber("B"), reqs[1].PartNumber)
	assert.Equal(t, entities.Quantity(4), reqs[1].Deficit)
}

func TestAggregateShortages_SameDateKeepsInputOrder(t *testing.T) {
	reqs := AggregateShortages([]entities.ShortageEvent{
		shortage("A", 10, 1),
		shortage("B", 10, 2),
		shortage("A", 10, 3),
	})

	require.Len(t, reqs, 3)
	assert.Equal(t, []entities.PartNumber{"A", "B", "A"}, partNumbers(reqs))
}

func TestAggregateShortages_Empty(t *testing.T) {
	assert.Nil(t, AggregateShortages(nil))
}

func TestAggregateShortages_DoesNotMutateInput(t *testing.T) {
	events := []entities.ShortageEvent{shortage("B", 12, 1), shortage("A", 10, 1)}
	AggregateShortages(events)
	assert.Equal(t, entities.PartNumber("B"), events[0].PartNumber)
}
