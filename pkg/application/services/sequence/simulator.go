package sequence

import (
	"fmt"
	"sort"
	"time"

	"github.com/vsinha/prodseq/pkg/domain/entities"
	domainservices "github.com/vsinha/prodseq/pkg/domain/services"
)

// DateKeyError reports a demand column key that does not match the schema layout
type DateKeyError struct {
	PartNumber entities.PartNumber
	Key        string
	Layout     string
	Err        error
}

func (e *DateKeyError) Error() string {
	return fmt.Sprintf("part %s: date column %q does not match layout %q: %v", e.PartNumber, e.Key, e.Layout, e.Err)
}

func (e *DateKeyError) Unwrap() error {
	return e.Err
}

// Simulator walks a part's demand calendar against its starting balance
type Simulator struct {
	// LookAheadDays limits the calendar days simulated from the first schedule date.
	// Zero or negative simulates the whole schedule.
	LookAheadDays int
}

// NewSimulator creates a simulator with the given look-ahead window
func NewSimulator(lookAheadDays int) *Simulator {
	return &Simulator{LookAheadDays: lookAheadDays}
}

// Buckets parses the record's date cells into date-ordered demand buckets.
// Any key that does not parse with the schema layout fails the whole record.
func (s *Simulator) Buckets(record *entities.DemandRecord, schema *entities.DemandSchema) ([]entities.DemandBucket, error) {
	buckets := make([]entities.DemandBucket, 0, len(schema.DateKeys))
	for _, key := range schema.DateKeys {
		date, err := time.Parse(schema.DateLayout, key)
		if err != nil {
			return nil, &DateKeyError{
				PartNumber: record.PartNumber,
				Key:        key,
				Layout:     schema.DateLayout,
				Err:        err,
			}
		}
		buckets = append(buckets, entities.DemandBucket{
			Date:     date,
			Quantity: domainservices.NormalizeQuantity(record.Cells[key]),
		})
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Date.Before(buckets[j].Date)
	})
	return buckets, nil
}

// Simulate emits one shortage event per date on which the running balance is
// negative. Each event carries only that date's incremental shortfall.
func (s *Simulator) Simulate(record *entities.DemandRecord, schema *entities.DemandSchema) ([]entities.ShortageEvent, error) {
	buckets, err := s.Buckets(record, schema)
	if err != nil {
		return nil, err
	}
	if len(buckets) == 0 {
		return nil, nil
	}

	var horizonEnd time.Time
	if s.LookAheadDays > 0 {
		horizonEnd = entities.CalendarDay(buckets[0].Date).AddDate(0, 0, s.LookAheadDays)
	}

	balance := record.OnHand - record.PastDue
	var events []entities.ShortageEvent

	for _, bucket := range buckets {
		if !horizonEnd.IsZero() && !bucket.Date.Before(horizonEnd) {
			break
		}
		if bucket.Quantity <= 0 {
			continue
		}

		balance -= bucket.Quantity
		if balance >= 0 {
			continue
		}

		shortfall := bucket.Quantity
		if -balance < shortfall {
			shortfall = -balance
		}
		events = append(events, entities.ShortageEvent{
			PartNumber: record.PartNumber,
			Date:       bucket.Date,
			Shortfall:  shortfall,
			OnHand:     record.OnHand,
			PastDue:    record.PastDue,
		})
	}

	return events, nil
}
